package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/league-system/broadcast"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWebSocketServer(t *testing.T, hub *broadcast.Hub) string {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/ws/channels/{channel}", NewWebSocketHandler(hub, nil, discardLogger()).ServeWs)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestServeWs_joinsRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := broadcast.NewHub(discardLogger())
	go hub.Run(ctx)

	conn, _, err := websocket.DefaultDialer.Dial(newWebSocketServer(t, hub)+"/ws/channels/%23fixtures", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.RoomSize("#fixtures") == 1 }, time.Second, 10*time.Millisecond)
}

func TestServeWs_hubStoppedClosesConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := broadcast.NewHub(discardLogger())
	go hub.Run(ctx)
	cancel()

	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	conn, _, err := websocket.DefaultDialer.Dial(newWebSocketServer(t, hub)+"/ws/channels/results", nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	var netErr net.Error
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "server should close the connection instead of leaving it open")
	}
	assert.Zero(t, hub.RoomSize("results"))
}
