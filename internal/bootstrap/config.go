package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/scout/internal/config"
	"github.com/jonesrussell/scout/internal/logger"
)

// LoadConfig loads and validates the configuration at path. An empty path
// falls back to CONFIG_PATH and then config.yml.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.GetConfigPath(config.DefaultPath)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger builds the process logger from the logging section.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", "scout")), nil
}
