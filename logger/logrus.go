package logger

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tameorm/tame/utils"
)

// LogrusLogger implements Interface using logrus
type LogrusLogger struct {
	Logger        *logrus.Logger
	LogLevel      LogLevel
	SlowThreshold time.Duration
}

// NewLogrusLogger creates a new logger using logrus
func NewLogrusLogger(logger *logrus.Logger, config Config) Interface {
	return &LogrusLogger{
		Logger:        logger,
		LogLevel:      config.LogLevel,
		SlowThreshold: config.SlowThreshold,
	}
}

// NewLogrusLoggerWithConfig creates a new logrus logger writing text to stderr
func NewLogrusLoggerWithConfig(config Config) Interface {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(LogrusLevel(config.LogLevel))
	return NewLogrusLogger(logger, config)
}

// LogMode sets the log level
func (l *LogrusLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *LogrusLogger) entry(ctx context.Context, kv []interface{}) *logrus.Entry {
	fields := logrus.Fields{"file": utils.FileWithLineNum()}
	pairs(kv, func(key string, value interface{}) {
		if err, ok := value.(error); ok {
			fields[key] = err.Error()
			return
		}
		fields[key] = value
	})
	if ctx == nil {
		ctx = context.Background()
	}
	return l.Logger.WithContext(ctx).WithFields(fields)
}

// Info logs info messages
func (l *LogrusLogger) Info(ctx context.Context, msg string, kv ...interface{}) {
	if l.LogLevel >= Info {
		l.entry(ctx, kv).Info(msg)
	}
}

// Warn logs warning messages
func (l *LogrusLogger) Warn(ctx context.Context, msg string, kv ...interface{}) {
	if l.LogLevel >= Warn {
		l.entry(ctx, kv).Warn(msg)
	}
}

// Error logs error messages
func (l *LogrusLogger) Error(ctx context.Context, msg string, kv ...interface{}) {
	if l.LogLevel >= Error {
		l.entry(ctx, kv).Error(msg)
	}
}

// Trace logs statements sent to a connection
func (l *LogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	kv := []interface{}{"duration", duration(elapsed), "sql", sql}
	if rows != -1 {
		kv = append(kv, "rows", rows)
	}

	switch {
	case err != nil && l.LogLevel >= Error:
		l.entry(ctx, append(kv, "error", err)).Error("SQL executed")

	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= Warn:
		l.entry(ctx, append(kv, "slow_threshold", l.SlowThreshold.String())).Warn("SLOW SQL executed")

	case l.LogLevel >= Info:
		l.entry(ctx, kv).Info("SQL executed")
	}
}

// LogrusLevel converts LogLevel to logrus.Level
func LogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case Silent:
		return logrus.PanicLevel
	case Error:
		return logrus.ErrorLevel
	case Warn:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
