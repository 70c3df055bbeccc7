package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML configuration file into a Config.
// Missing optional fields keep their zero values; callers should start
// from NewConfig and merge.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if cfg.Analyzers == nil {
		cfg.Analyzers = make(map[string]AnalyzerConfig)
	}

	return cfg, nil
}

// Merge overlays non-zero fields of overlay onto base and returns base.
func Merge(base, overlay *Config) *Config {
	if overlay == nil {
		return base
	}
	if overlay.SeverityDefault != "" {
		base.SeverityDefault = overlay.SeverityDefault
	}
	if overlay.UndoDepth > 0 {
		base.UndoDepth = overlay.UndoDepth
	}
	if len(overlay.Ignore) > 0 {
		base.Ignore = append(base.Ignore, overlay.Ignore...)
	}
	for name, ac := range overlay.Analyzers {
		base.Analyzers[name] = ac
	}
	if overlay.Format != "" {
		base.Format = overlay.Format
	}
	if overlay.Jobs > 0 {
		base.Jobs = overlay.Jobs
	}
	if overlay.IndexPath != "" {
		base.IndexPath = overlay.IndexPath
	}
	return base
}
