// In file: internal/logging/logging.go

// Package logging configures the process-wide zerolog logger.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates the gateway's logger. In release mode it writes plain JSON; in
// development it uses the console writer.
func New(level, mode string) zerolog.Logger {
	base := zerolog.New(os.Stdout)
	if mode != "release" {
		base = base.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
	return base.With().
		Timestamp().
		Str("service", "mcp-gateway").
		Logger().
		Level(parseLevel(level))
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
