package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config represents logger configuration
type Config struct {
	Level       string // debug, info, warn, error, fatal
	Environment string // development, production, test
	LogFile     string // optional file path for logs
}

// Init configures the global zerolog logger.
// Development gets console output; everything else is JSON on stdout plus the optional file.
func Init(cfg Config) error {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{os.Stdout}
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
		}
		writers = append(writers, file)
	}

	switch cfg.Environment {
	case "development", "dev":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}).With().Timestamp().Caller().Logger()
	case "test":
		log.Logger = zerolog.Nop()
	default:
		log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
			With().
			Timestamp().
			Caller().
			Logger()
	}

	return nil
}

type contextKey string

// ContextKey is the key used to store logger in context
const ContextKey contextKey = "logger"

// FromContext returns the logger from context or the global logger
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &log.Logger
	}
	if l, ok := ctx.Value(ContextKey).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &log.Logger
}

// WithContext returns a context with the logger attached
func WithContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ContextKey, l)
}

// With returns a context whose logger carries the given key/value pairs.
func With(ctx context.Context, fields ...interface{}) context.Context {
	lc := FromContext(ctx).With()
	for i := 0; i < len(fields)-1; i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		lc = lc.Interface(key, fields[i+1])
	}
	l := lc.Logger()
	return WithContext(ctx, &l)
}

func emit(event *zerolog.Event, msg string, fields []interface{}) {
	for i := 0; i < len(fields)-1; i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		event.Interface(key, fields[i+1])
	}
	event.Msg(msg)
}

// LogError logs an error with key/value fields
func LogError(ctx context.Context, err error, msg string, fields ...interface{}) {
	emit(FromContext(ctx).Error().Err(err), msg, fields)
}

// LogWarn logs a warning with key/value fields
func LogWarn(ctx context.Context, msg string, fields ...interface{}) {
	emit(FromContext(ctx).Warn(), msg, fields)
}

// LogInfo logs an info message with key/value fields
func LogInfo(ctx context.Context, msg string, fields ...interface{}) {
	emit(FromContext(ctx).Info(), msg, fields)
}

// LogDebug logs a debug message with key/value fields
func LogDebug(ctx context.Context, msg string, fields ...interface{}) {
	emit(FromContext(ctx).Debug(), msg, fields)
}
