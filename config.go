package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds presenter settings loaded from librarian.yaml.
type Config struct {
	// LoanPeriodDays is the default loan length used when the borrow
	// prompt leaves the due date blank.
	LoanPeriodDays int `yaml:"loan_period_days"`
	// Catalog is an optional SQLite catalog to seed the library from.
	Catalog string `yaml:"catalog"`
}

func defaultConfig() Config {
	return Config{LoanPeriodDays: 14}
}

// loadConfig reads path if it exists; a missing file yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.LoanPeriodDays <= 0 {
		cfg.LoanPeriodDays = defaultConfig().LoanPeriodDays
	}
	return cfg, nil
}
