// Package logger provides structured logging setup for the reminder bot.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/operations777/Reminder-bot/internal/config"
)

// New creates a *slog.Logger from the given Logging config.
// Output is JSON to stdout with a "service" attribute on every record.
// The returned Closer flushes buffered records; callers must invoke it
// on shutdown. In synchronous mode it is a no-op.
func New(cfg config.Logging) (*slog.Logger, Closer) {
	level := parseLevel(cfg.Level)

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	// The service attr must sit on the inner handler: the buffer's
	// drain goroutine encodes through the handler it was built with,
	// not through later With clones.
	handler = handler.WithAttrs([]slog.Attr{slog.String("service", cfg.Service)})

	closer := Closer(nopCloser{})
	if cfg.Buffered {
		bh := NewBufferedHandler(handler, defaultBufferSize)
		handler = bh
		closer = bh
	}

	return slog.New(handler), closer
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
