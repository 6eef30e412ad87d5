package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// viewerConfig is the optional yaml configuration for the viewer window.
type viewerConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
}

func defaultConfig() viewerConfig {
	return viewerConfig{
		Title:  "Lectern",
		Width:  1280,
		Height: 720,
	}
}

// loadConfig reads the yaml config at path over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (viewerConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("parse %s: window size must be positive, got %dx%d", path, cfg.Width, cfg.Height)
	}
	return cfg, nil
}
