package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const defaultLevel = zerolog.InfoLevel

// New creates the process logger. Unknown or empty levels fall back to info.
func New(level string) *zerolog.Logger {
	return NewWithWriter(level, os.Stdout)
}

func NewWithWriter(level string, out io.Writer) *zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = defaultLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	log := zerolog.New(out).
		Level(parsed).
		With().
		Timestamp().
		Str("service", "travel-site").
		Logger()

	return &log
}
