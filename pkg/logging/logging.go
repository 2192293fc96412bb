// Package logging sets up the application-wide zerolog logger.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger. LOG_FORMAT=json switches to plain JSON output,
// anything else gets the human-readable console writer. LOG_LEVEL follows
// zerolog level names and defaults to info.
func New(service string) zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			level = parsed
		}
	}

	var logger zerolog.Logger
	if os.Getenv("LOG_FORMAT") == "json" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger.Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()
}
