package app

import (
	"io"
	"log/slog"
)

// newLogger creates an isolated slog.Logger writing to outW. It does not set
// the global logger. Unknown levels fall back to info; NewConfig rejects
// them before this point. Debug logs carry their source location.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug}
	var handler slog.Handler = slog.NewTextHandler(outW, handlerOpts)
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	}
	return slog.New(handler)
}
