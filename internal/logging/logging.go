package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects where and how verbosely to log.
type Config struct {
	// File receives the log output. Empty returns a no-op logger; the TUI
	// owns stdout and stderr while running.
	File  string
	Level string
	Debug bool
}

// New builds a zap logger. Debug mode uses the development encoder.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var zcfg zap.Config
	if cfg.Debug {
		zcfg = zap.NewDevelopmentConfig()
		level = zap.DebugLevel
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.File}
	zcfg.ErrorOutputPaths = []string{cfg.File}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("cyberguard"), nil
}
