package setup

import (
	"io"
	"log/slog"

	"github.com/zoonderkins/claude-confirm/config"
)

// NewLogger creates the diagnostic logger. w must not be stdout while
// serving, since stdout carries the MCP transport.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
}
