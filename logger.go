// FILE: lixenwraith/emaconfig/logger.go
package emaconfig

import (
	"context"
	"log/slog"
)

// SlogLogger adapts a *slog.Logger to LoggerClient.
type SlogLogger struct {
	Logger *slog.Logger
}

// NewSlogLogger wraps logger, or the default slog logger when nil.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{Logger: logger.With("component", "emaconfig")}
}

// Log implements LoggerClient.
func (l *SlogLogger) Log(source string, severity Severity, message string) {
	l.Logger.Log(context.Background(), severityLevel(severity), message,
		"source", source,
		"severity", severity.String(),
	)
}

func severityLevel(s Severity) slog.Level {
	switch s {
	case SeverityVerbose:
		return slog.LevelDebug
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
