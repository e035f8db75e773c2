// Package log wraps zap the way the teacher's kernel package wraps
// Go's standard logger: a small set of package-level functions
// (Debug/Info/Warn/Error) backed by one process-wide logger, plus a
// Touch-style override hook so callers (tests, cmd/pbcoreshell) can
// redirect output. Level and destination are read from the
// environment the way yaroher-protoc-gen-go-plain's logger package
// reads LOG_LEVEL/LOG_FILE, renamed to this module's own variables.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLevel = "PBCORE_LOG_LEVEL"
	EnvFile  = "PBCORE_LOG_FILE"
)

var base = zap.New(newCore()).Named("pbcore")

func newCore() zapcore.Core {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	return zapcore.NewCore(enc, zapcore.AddSync(openSink()), parseLevel())
}

func parseLevel() zapcore.Level {
	v := os.Getenv(EnvLevel)
	if v == "" {
		return zapcore.InfoLevel
	}
	lvl, err := zapcore.ParseLevel(v)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func openSink() *os.File {
	path := os.Getenv(EnvFile)
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return os.Stderr
	}
	return f
}

// Touch replaces the process-wide logger outright, for tests and
// embedders that want their own zap.Logger (a different encoder, an
// in-memory sink, and so on) instead of the env-configured default.
func Touch(l *zap.Logger) {
	base = l
}

func Debug(msg string, fields ...zap.Field) { base.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { base.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { base.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { base.Error(msg, fields...) }

// Sync flushes any buffered log entries, matching the teacher's
// pattern of giving the process a single shutdown-time hook.
func Sync() error { return base.Sync() }
