package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Dosada05/league-system/broadcast"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *broadcast.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler accepts any origin when allowedOrigins is empty.
func NewWebSocketHandler(hub *broadcast.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin] || allowed["*"]
			},
		},
	}
}

// ServeWs подписывает клиента на канал доставки.
// Клиент подключается к /ws/channels/{channel}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	channel, err := url.PathUnescape(chi.URLParam(r, "channel"))
	if err != nil || channel == "" {
		http.Error(w, "Missing channel", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже отправил HTTP-ошибку клиенту
		h.logger.Warn("websocket upgrade failed", slog.String("channel", channel), slog.Any("error", err))
		return
	}
	h.logger.Debug("websocket connection upgraded", slog.String("channel", channel))

	client := &broadcast.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: channel,
	}
	select {
	case client.Hub.Register <- client:
	case <-client.Hub.Done():
		h.logger.Debug("websocket hub stopped, dropping connection", slog.String("channel", channel))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
