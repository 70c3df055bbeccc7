// Package configloader provides configuration loading and resolution:
// upward project-config discovery, user-level config, environment
// variable overrides, and CLI-flag merging.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/kmpcheck/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (KMPCHECK_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.kmpcheck.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/kmpcheck/config.yaml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Paths: &ConfigPaths{},
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths

	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	// Load and merge in order (lowest to highest precedence)

	if !opts.IgnoreUserConfig && paths.User != "" {
		userCfg, err := config.LoadFile(paths.User)
		if err != nil {
			return nil, fmt.Errorf("load user config: %w", err)
		}
		cfg = config.Merge(cfg, userCfg)
		result.LoadedFrom = append(result.LoadedFrom, paths.User)
	}

	if !opts.IgnoreProjectConfig && paths.Project != "" {
		projectCfg, err := config.LoadFile(paths.Project)
		if err != nil {
			return nil, fmt.Errorf("load project config: %w", err)
		}
		cfg = config.Merge(cfg, projectCfg)
		result.LoadedFrom = append(result.LoadedFrom, paths.Project)
	}

	if opts.ExplicitPath != "" {
		explicitCfg, err := config.LoadFile(opts.ExplicitPath)
		if err != nil {
			return nil, fmt.Errorf("load explicit config: %w", err)
		}
		cfg = config.Merge(cfg, explicitCfg)
		result.LoadedFrom = append(result.LoadedFrom, opts.ExplicitPath)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = config.Merge(cfg, opts.CLIConfig)
	}

	if err := validate(cfg, result); err != nil {
		return nil, err
	}

	result.Config = cfg
	return result, nil
}

// validate checks the merged configuration and collects warnings for
// recoverable issues.
func validate(cfg *config.Config, result *LoadResult) error {
	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		return fmt.Errorf("invalid severity_default: %q", cfg.SeverityDefault)
	}

	for name, ac := range cfg.Analyzers {
		if ac.Severity == nil {
			continue
		}
		if !config.Severity(*ac.Severity).IsValid() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("analyzer %q has invalid severity %q; using default", name, *ac.Severity))
		}
	}

	if cfg.UndoDepth < 0 {
		return fmt.Errorf("undo_depth must be non-negative, got %d", cfg.UndoDepth)
	}

	return nil
}
