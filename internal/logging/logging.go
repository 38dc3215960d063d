package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup initializes the process logger. format can be "text" (human-friendly
// console) or "json" (structured). The default level is info;
// SURVEYLOAD_LOG_LEVEL overrides it, e.g. "debug" to see per-batch column
// detection detail.
func Setup(format string) zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("SURVEYLOAD_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	var logger zerolog.Logger
	if format == "text" {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
