package logging

import (
	"errors"
	"os"
	"strings"
	"syscall"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Option func(*options)

type options struct {
	level      string
	file       string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
}

func defaultOptions() *options {
	return &options{
		level:      "info",
		maxSizeMB:  100,
		maxBackups: 5,
		maxAgeDays: 30,
		compress:   true,
	}
}

func WithLevel(level string) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithFile adds a rotated log file next to stdout. Empty keeps stdout only.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

func WithRotation(maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(o *options) {
		o.maxSizeMB = maxSizeMB
		o.maxBackups = maxBackups
		o.maxAgeDays = maxAgeDays
	}
}

// New builds a JSON logger writing to stdout and, when configured, to a
// lumberjack rotated file.
func New(opts ...Option) (*zap.Logger, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	level, err := zapcore.ParseLevel(strings.TrimSpace(o.level))
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
	if o.file != "" {
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   o.file,
			MaxSize:    o.maxSizeMB,
			MaxBackups: o.maxBackups,
			MaxAge:     o.maxAgeDays,
			Compress:   o.compress,
		})
		cores = append(cores, zapcore.NewCore(encoder, writer, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// Init replaces the global zap logger. On a bad option it keeps the current
// logger and reports the problem through it.
func Init(opts ...Option) {
	logger, err := New(opts...)
	if err != nil {
		zap.L().Error("Init logger failed, keeping previous logger", zap.Error(err))
		return
	}
	zap.ReplaceGlobals(logger)
}

// Sync flushes logger, ignoring the errors stdout and stderr return on
// terminals and pipes.
func Sync(logger *zap.Logger) {
	if err := logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		_, _ = os.Stderr.WriteString("sync logger failed: " + err.Error() + "\n")
	}
}
