// Package config provides YAML-based configuration loading for the solver
// and its command-line front end.
package config

// SolverConfig contains all configuration for a solve run.
type SolverConfig struct {
	Search  SearchConfig  `yaml:"search"`
	Output  OutputConfig  `yaml:"output"`
	Storage StorageConfig `yaml:"storage"`
}

// SearchConfig defines the search limits.
type SearchConfig struct {
	Effort           EffortPreset `yaml:"effort"`            // Named preset; overrides max_iterations when set
	MaxIterations    int          `yaml:"max_iterations"`    // Iteration cap before giving up
	ProgressInterval int          `yaml:"progress_interval"` // Iterations between progress lines, 0 disables
	FreeCells        int          `yaml:"free_cells"`        // Free cells used when none is given on the command line
}

// OutputConfig defines how solutions are printed.
type OutputConfig struct {
	RenderEvery int       `yaml:"render_every"` // Re-draw the board after this many moves
	Color       ColorMode `yaml:"color"`
}

// StorageConfig defines where finished runs are recorded.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ColorMode selects whether board output is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Valid reports whether m is a known color mode.
func (m ColorMode) Valid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}
