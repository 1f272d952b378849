package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PanelPath string // .hcl panel files

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PanelPath == "" {
		return nil, errors.New("PanelPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
