package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"astrometers/internal/config"
)

// Logger provides structured logging for the application
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates a new logger instance configured from cfg: "console"
// gets the teacher's human-readable development writer, anything else
// (notably "json") gets zerolog's default structured writer for production.
func NewLogger(cfg config.LoggingConfig) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var base zerolog.Logger
	if cfg.Format == "json" {
		base = zerolog.New(os.Stdout)
	} else {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
			FormatLevel: func(i interface{}) string {
				switch i {
				case "info":
					return "📘 INFO"
				case "warn":
					return "⚠️  WARN"
				case "error":
					return "❌ ERROR"
				case "debug":
					return "🔍 DEBUG"
				default:
					return "📝 " + i.(string)
				}
			},
			FormatCaller: func(i interface{}) string {
				return "📍 " + i.(string)
			},
		}
		base = zerolog.New(output)
	}

	logger := base.With().
		Timestamp().
		Caller().
		Str("service", "astrometers").
		Logger()

	return &Logger{logger: logger}
}

// Info logs an info message
func (l *Logger) Info() *zerolog.Event {
	return l.logger.Info()
}

// Warn logs a warning message
func (l *Logger) Warn() *zerolog.Event {
	return l.logger.Warn()
}

// Error logs an error message
func (l *Logger) Error() *zerolog.Event {
	return l.logger.Error()
}

// Debug logs a debug message
func (l *Logger) Debug() *zerolog.Event {
	return l.logger.Debug()
}

// With creates a new logger with additional fields
func (l *Logger) With() zerolog.Context {
	return l.logger.With()
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger() *zerolog.Event {
	return l.logger.Info().Str("type", "request")
}

// CalculationLogger logs astrological calculation details
func (l *Logger) CalculationLogger() *zerolog.Event {
	return l.logger.Info().Str("type", "calculation")
}

// EngineLogger logs scoring-engine evaluation details: one line per
// POST /api/v1/readings call, tagged so it can be filtered independently
// of raw chart-construction calculation logs.
func (l *Logger) EngineLogger() *zerolog.Event {
	return l.logger.Info().Str("type", "engine_eval")
}
