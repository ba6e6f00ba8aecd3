// Package logger centralizes construction of the zap loggers used across
// every Ignite subsystem. Components never build their own zap.Logger; they
// receive a *zap.SugaredLogger from here so that encoding, level, and field
// conventions stay consistent between the engine, the service dispatcher,
// and the server.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Env selects which zap configuration preset to build from.
type Env string

const (
	// Production emits JSON logs at info level and above, suitable for
	// ingestion by log aggregation systems.
	Production Env = "production"

	// Development emits human-readable, colorized console logs at debug
	// level and above, suitable for local iteration.
	Development Env = "development"
)

// currentEnv is resolved once from IGNITE_ENV so that every call to New
// within a process picks up the same encoding without threading an Env
// value through every constructor.
var currentEnv = resolveEnv()

func resolveEnv() Env {
	if os.Getenv("IGNITE_ENV") == string(Production) {
		return Production
	}
	return Development
}

// New builds a *zap.SugaredLogger scoped to the given service name. The
// service name is attached as a "service" field on every log line so that
// logs from the engine, the server, and the client can be told apart when
// aggregated.
func New(service string) *zap.SugaredLogger {
	var cfg zap.Config
	if currentEnv == Production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logging is not optional infrastructure here; if it cannot be
		// constructed, fall back to a no-op logger rather than panicking
		// the caller during its own initialization.
		logger = zap.NewNop()
	}

	return logger.Sugar().With("service", service)
}

// NewNop returns a logger that discards everything, for use in tests that
// don't want log noise but still need to satisfy a *zap.SugaredLogger field.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
