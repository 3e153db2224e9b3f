package app

import (
	"io"
	"log/slog"
)

// newLogger creates the launcher's logger. It writes to outW, which is the
// launcher's stderr so stdout stays with the entry module. It does not set
// the global logger.
func newLogger(level slog.Level, format string, outW io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
