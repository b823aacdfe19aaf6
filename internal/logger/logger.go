// Package logger provides the slog-based logging service shared by the
// agent packages.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// ValidLogLevels are the accepted values for the log level setting.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats are the accepted values for the log format setting.
var ValidLogFormats = []string{"text", "json"}

// Service holds the logger and its dynamic level controller.
type Service struct {
	*slog.Logger
	level *slog.LevelVar
}

// SetLevel dynamically changes the logging level.
func (s *Service) SetLevel(level string) {
	s.level.Set(parseLevel(level))
}

// New creates a new logging service writing to the given writer.
func New(level, format string, writer io.Writer) *Service {
	levelVar := &slog.LevelVar{}
	levelVar.Set(parseLevel(level))

	opts := &slog.HandlerOptions{Level: levelVar}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	return &Service{
		Logger: slog.New(handler),
		level:  levelVar,
	}
}

// Discard returns a service that drops all records. Used as the default when
// no logger was injected.
func Discard() *Service {
	levelVar := &slog.LevelVar{}
	return &Service{
		Logger: slog.New(slog.DiscardHandler),
		level:  levelVar,
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
