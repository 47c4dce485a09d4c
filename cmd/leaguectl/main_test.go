package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", "  YES \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"no newline", "y", true},
		{"eof", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := promptConfirm(context.Background(), strings.NewReader(tt.input), &out, "Replace? ", time.Second)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Replace? ", out.String())
		})
	}
}

func TestPromptConfirmTimeout(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	got, err := promptConfirm(context.Background(), r, io.Discard, "Replace? ", 20*time.Millisecond)
	assert.ErrorIs(t, err, errPromptTimeout)
	assert.False(t, got)
}

func TestPromptConfirmCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := promptConfirm(ctx, r, io.Discard, "Replace? ", time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs("ID", []string{"3", "1001"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1001}, ids)

	_, err = parseIDs("ID", []string{"3", "abc"})
	assert.ErrorContains(t, err, `"abc"`)

	_, err = parseID("COMP_ID", "0")
	assert.Error(t, err)
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{
		{"migrate"},
		{"hash-password"},
		{"team", "add"},
		{"player", "assign"},
		{"comp", "enter"},
		{"fixtures", "generate"},
		{"report"},
		{"h2h"},
		{"next"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestHashPasswordCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"hash-password", "correct horse battery"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "$2a$"))
}

func TestPlayerAddStartingHandicapFlag(t *testing.T) {
	cmd, _, err := newRootCmd().Find([]string{"player", "add"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags([]string{"--handicap", "20", "--team", "Red Lions"}))

	got, err := cmd.Flags().GetInt("handicap")
	require.NoError(t, err)
	assert.Equal(t, 20, got)
}
