// Package logger builds the zerolog loggers used by the registry, including the
// adapter that routes GORM's SQL logging through zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"patient-registry/internal/config"
)

// New returns the application logger. Console output is used for the
// "console" format, JSON lines otherwise.
func New(cfg config.LoggingConfig, env string) zerolog.Logger {
	return NewWithWriter(cfg, env, os.Stderr)
}

func NewWithWriter(cfg config.LoggingConfig, env string, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "patient-registry").
		Str("env", env).
		Logger()
}
