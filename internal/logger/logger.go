package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/flowershop/internal/config"
)

// Module provides the process logger.
var Module = fx.Provide(New)

// New creates a JSON slog.Logger writing to stdout at the configured level.
func New(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg.LogLevel)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler).With(slog.String("service", "flowershop"))
}

// parseLevel falls back to Info for unknown names.
func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
