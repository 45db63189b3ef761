package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlog(slog.New(handler))

	logger.Debug("debug msg", "k", "v")
	logger.Info("info msg", "users", 3)
	logger.Warn("warn msg")
	logger.Error("error msg")

	out := buf.String()
	require.Contains(t, out, "debug msg")
	require.Contains(t, out, "k=v")
	require.Contains(t, out, "info msg")
	require.Contains(t, out, "users=3")
	require.Contains(t, out, "warn msg")
	require.Contains(t, out, "error msg")
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()

	// Must not panic and must not write anywhere observable.
	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("dropped")
	logger.Error("dropped")
}
