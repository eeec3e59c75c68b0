package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/legisdoc"
	"github.com/goccy/go-yaml"
)

// loadConfig returns the defaults overlaid with the YAML file at path, if
// one was given. An empty path checks LEGISDOC_CONFIG before falling back
// to defaults alone.
func loadConfig(path string) (legisdoc.Config, error) {
	cfg := legisdoc.DefaultConfig()

	if path == "" {
		path = os.Getenv("LEGISDOC_CONFIG")
	}
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return cfg, nil
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
