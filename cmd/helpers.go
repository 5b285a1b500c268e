package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/lightpack/internal/config"
	"github.com/ziadkadry99/lightpack/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `lightpack init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the logger for cfg, raised to debug by --verbose.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	if verbose {
		level = logging.LevelDebug
	}
	return logging.New(level)
}
