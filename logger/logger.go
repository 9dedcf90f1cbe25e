package logger

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

// LogLevelEnv holds a zerolog level, numeric (-1..7) or by name.
const LogLevelEnv = "PRD_LOG_LEVEL"

// GetLogLevel reads LogLevelEnv through getenv, defaulting to info.
func GetLogLevel(getenv func(string) string) zerolog.Level {
	raw := strings.TrimSpace(getenv(LogLevelEnv))
	if raw == "" {
		return zerolog.InfoLevel
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return zerolog.Level(n)
	}
	if level, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
		return level
	}
	return zerolog.InfoLevel
}

// New returns a console logger on w tagged with a fresh run_id.
// verbose lowers the level to debug.
func New(w io.Writer, verbose bool, getenv func(string) string) zerolog.Logger {
	level := GetLogLevel(getenv)
	if verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Str("run_id", ksuid.New().String()).
		Logger()
}
