// Package logger provides the process-wide structured logger.
package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// Options control how the logger is built. LOG_LEVEL and JSON_LOG in the
// environment take precedence.
type Options struct {
	Level string
	JSON  bool
}

var (
	once    sync.Once
	logger  *zap.SugaredLogger
	options = Options{Level: "info"}
)

// Configure sets the options used by the first call to Get. It has no
// effect once the logger exists.
func Configure(opts Options) {
	options = opts
}

// Get initializes a zap.SugaredLogger instance if it has not been initialized
// already and returns the same instance for subsequent calls.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		logger = New(os.Stderr, options)
	})

	return logger
}

// New builds a logger writing to w. Logs go to stderr in normal use so that
// reports on stdout stay machine readable.
func New(w zapcore.WriteSyncer, opts Options) *zap.SugaredLogger {
	level := zap.InfoLevel
	levelName := opts.Level
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		levelName = env
	}
	if levelName != "" {
		parsed, err := zapcore.ParseLevel(levelName)
		if err != nil {
			log.Println(fmt.Errorf("invalid level, defaulting to INFO: %w", err))
		} else {
			level = parsed
		}
	}

	productionCfg := zap.NewProductionEncoderConfig()
	productionCfg.TimeKey = "timestamp"
	productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	encoder := zapcore.NewConsoleEncoder(developmentCfg)
	if opts.JSON || os.Getenv("JSON_LOG") != "" {
		encoder = zapcore.NewJSONEncoder(productionCfg)
	}

	core := zapcore.NewCore(encoder, w, zap.NewAtomicLevelAt(level))
	return zap.New(core).Sugar()
}

// FromCtx returns the Logger associated with the ctx. If no logger
// is associated, the default logger is returned.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger)
	if !ok {
		l = Get()
	}

	if len(with) == 0 {
		return l
	}
	return l.With(with...)
}

// WithCtx returns a copy of ctx with the Logger attached.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		if lp == l {
			// Do not store same logger.
			return ctx
		}
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
