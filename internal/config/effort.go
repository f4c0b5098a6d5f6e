package config

import "fmt"

// EffortPreset represents a named search effort.
type EffortPreset string

const (
	EffortQuick    EffortPreset = "quick"
	EffortNormal   EffortPreset = "normal"
	EffortThorough EffortPreset = "thorough"
)

// IterationsForPreset returns the iteration cap for an effort preset.
func IterationsForPreset(preset EffortPreset) int {
	switch preset {
	case EffortQuick:
		return 5000
	case EffortThorough:
		return 250000
	default:
		return 50000
	}
}

// ParseEffort validates a preset name. An empty name is accepted and means
// no preset.
func ParseEffort(s string) (EffortPreset, error) {
	switch p := EffortPreset(s); p {
	case "", EffortQuick, EffortNormal, EffortThorough:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown effort %q (expected quick, normal or thorough)", s)
	}
}

// ApplyEffortPreset sets the iteration cap from a preset. An empty preset
// leaves the config unchanged.
func ApplyEffortPreset(cfg *SolverConfig, preset EffortPreset) {
	if preset == "" {
		return
	}
	cfg.Search.Effort = preset
	cfg.Search.MaxIterations = IterationsForPreset(preset)
}
