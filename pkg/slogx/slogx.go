package slogx

import (
	"log/slog"
	"os"
	"strings"
)

// Config selects the handler and the base attributes every record carries.
type Config struct {
	Service string
	Version string
	Env     string
	Level   string // debug, info, warn, error
	Format  string // json (default) or text
}

// New builds the process logger and installs it as the slog default. Source
// locations are only attached in dev to keep production records small.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     levelFor(cfg.Level),
		AddSource: cfg.Env == "dev",
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.Service),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)
	slog.SetDefault(logger)
	return logger
}

// levelFor maps a config string to a slog.Level, defaulting to info.
func levelFor(s string) slog.Level {
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
