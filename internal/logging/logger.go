// Package logging builds the process logger from the config log section.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"echokit/internal/config"
)

// New constructs a zap logger for the given log configuration.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = cfg.Format
	if cfg.Format == "console" {
		zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	switch cfg.Output {
	case "", "stderr":
		zapCfg.OutputPaths = []string{"stderr"}
	case "stdout":
		zapCfg.OutputPaths = []string{"stdout"}
	default:
		zapCfg.OutputPaths = []string{cfg.Output}
	}
	zapCfg.ErrorOutputPaths = zapCfg.OutputPaths

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
