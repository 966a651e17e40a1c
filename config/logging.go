package config

import "github.com/kilianp07/flexicity/infra/logger"

// LoggingConfig controls the minimum log level.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level" koanf:"level"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c LoggingConfig) Validate() error {
	_, err := logger.ParseLevel(c.Level)
	return err
}
