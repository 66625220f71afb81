package logger

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// LogLevel log level
type LogLevel int

const (
	// Silent silent log level
	Silent LogLevel = iota + 1
	// Error error log level
	Error
	// Warn warn log level
	Warn
	// Info info log level
	Info
)

// Config logger config
type Config struct {
	SlowThreshold time.Duration
	LogLevel      LogLevel
}

// Interface logger interface. Info, Warn and Error take alternating key value pairs.
type Interface interface {
	LogMode(LogLevel) Interface
	Info(ctx context.Context, msg string, kv ...interface{})
	Warn(ctx context.Context, msg string, kv ...interface{})
	Error(ctx context.Context, msg string, kv ...interface{})
	Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error)
}

var (
	// Discard logger will print nothing
	Discard Interface = discard{}
	// Default default logger, zap writing json to stderr
	Default = NewZapLoggerWithConfig(Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      Warn,
	})
)

// New returns a logger of format, one of zap, zerolog or logrus
func New(format string, config Config) (Interface, error) {
	switch strings.ToLower(format) {
	case "", "zap":
		return NewZapLoggerWithConfig(config), nil
	case "zerolog":
		return NewZerologLoggerWithConfig(config), nil
	case "logrus":
		return NewLogrusLoggerWithConfig(config), nil
	}
	return nil, fmt.Errorf("unsupported log format %q", format)
}

// ParseLevel parses silent, error, warn or info
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "silent":
		return Silent, nil
	case "error":
		return Error, nil
	case "warn", "warning":
		return Warn, nil
	case "", "info":
		return Info, nil
	}
	return 0, fmt.Errorf("unknown log level %q", level)
}

// pairs folds kv into key value pairs, a trailing value is keyed "extra"
func pairs(kv []interface{}, fn func(key string, value interface{})) {
	for i := 0; i < len(kv); i += 2 {
		if i+1 == len(kv) {
			fn("extra", kv[i])
			return
		}
		fn(fmt.Sprint(kv[i]), kv[i+1])
	}
}

func duration(elapsed time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6)
}

type discard struct{}

func (d discard) LogMode(LogLevel) Interface {
	return d
}

func (discard) Info(context.Context, string, ...interface{}) {}

func (discard) Warn(context.Context, string, ...interface{}) {}

func (discard) Error(context.Context, string, ...interface{}) {}

func (discard) Trace(context.Context, time.Time, func() (string, int64), error) {}
