package config

import (
	_ "embed"
)

//go:embed defaults/freecell.yaml
var defaultSolverYAML []byte

// DefaultSolverConfig returns the default solver configuration.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Search: SearchConfig{
			MaxIterations:    50000,
			ProgressInterval: 450,
			FreeCells:        4,
		},
		Output: OutputConfig{
			RenderEvery: 10,
			Color:       ColorAuto,
		},
		Storage: StorageConfig{
			DBPath: "~/.freecell/runs.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSolverYAML
}
