package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the solver configuration.
// Search order: customPath -> ~/.freecell/config.yaml -> ./configs/freecell.yaml -> embedded default
// Values missing from a file keep their defaults.
func Load(customPath string) (SolverConfig, error) {
	cfg := DefaultSolverConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return normalize(cfg)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return normalize(cfg)
			}
			cfg = DefaultSolverConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "freecell.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return normalize(cfg)
		}
		cfg = DefaultSolverConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSolverYAML, &cfg); err != nil {
		return DefaultSolverConfig(), nil // Fallback to hardcoded if embed fails
	}
	return normalize(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".freecell", filename)
}

// normalize applies the effort preset and rejects values the solver cannot
// use.
func normalize(cfg SolverConfig) (SolverConfig, error) {
	preset, err := ParseEffort(string(cfg.Search.Effort))
	if err != nil {
		return cfg, err
	}
	ApplyEffortPreset(&cfg, preset)

	if cfg.Search.MaxIterations <= 0 {
		return cfg, fmt.Errorf("config: max_iterations must be positive, got %d", cfg.Search.MaxIterations)
	}
	if cfg.Search.ProgressInterval < 0 {
		return cfg, fmt.Errorf("config: progress_interval must not be negative, got %d", cfg.Search.ProgressInterval)
	}
	if cfg.Search.FreeCells < 0 {
		return cfg, fmt.Errorf("config: free_cells must not be negative, got %d", cfg.Search.FreeCells)
	}
	if cfg.Output.RenderEvery <= 0 {
		cfg.Output.RenderEvery = DefaultSolverConfig().Output.RenderEvery
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = ColorAuto
	}
	if !cfg.Output.Color.Valid() {
		return cfg, fmt.Errorf("config: unknown color mode %q", cfg.Output.Color)
	}
	return cfg, nil
}
