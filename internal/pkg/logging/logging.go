// Package logging builds the process logger: the log/slog API on top of a zap core.
package logging

import (
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New returns a slog logger backed by zap. "production" (or "prod") selects
// JSON output with ISO8601 timestamps, anything else a colored console encoder.
// The returned sync function flushes buffered entries and should be deferred.
func New(env string) (*slog.Logger, func() error, error) {
	config := Config(env)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(zapslog.NewHandler(zapLogger.Core(), zapslog.WithCaller(true)))
	return logger, zapLogger.Sync, nil
}

// Config returns the zap configuration used for env.
func Config(env string) zap.Config {
	var config zap.Config

	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config
}

// NewNop returns a logger that discards everything. Tests use it.
func NewNop() *slog.Logger {
	return slog.New(zapslog.NewHandler(zapcore.NewNopCore()))
}
