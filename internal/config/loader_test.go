package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the user and local search paths at empty directories.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != DefaultSolverConfig() {
		t.Errorf("embedded config %+v differs from defaults %+v", cfg, DefaultSolverConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "search:\n  max_iterations: 1200\noutput:\n  color: never\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.MaxIterations != 1200 {
		t.Errorf("MaxIterations = %d, expected 1200", cfg.Search.MaxIterations)
	}
	if cfg.Output.Color != ColorNever {
		t.Errorf("Color = %q, expected never", cfg.Output.Color)
	}
	// Unset values keep their defaults
	if cfg.Search.FreeCells != 4 || cfg.Search.ProgressInterval != 450 {
		t.Errorf("defaults not kept: %+v", cfg.Search)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "freecell.yaml"), "search:\n  free_cells: 2\n")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.FreeCells != 2 {
		t.Errorf("local config not used, FreeCells = %d", cfg.Search.FreeCells)
	}

	writeFile(t, filepath.Join(home, ".freecell", "config.yaml"), "search:\n  free_cells: 6\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.FreeCells != 6 {
		t.Errorf("user config should win over local, FreeCells = %d", cfg.Search.FreeCells)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	bad := map[string]string{
		"iterations.yaml": "search:\n  max_iterations: 0\n",
		"cells.yaml":      "search:\n  free_cells: -1\n",
		"color.yaml":      "output:\n  color: rainbow\n",
		"effort.yaml":     "search:\n  effort: heroic\n",
		"syntax.yaml":     "search: [",
	}
	for name, content := range bad {
		path := filepath.Join(dir, name)
		writeFile(t, path, content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestEffortPreset(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "effort.yaml")
	writeFile(t, path, "search:\n  effort: quick\n  max_iterations: 99\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.MaxIterations != IterationsForPreset(EffortQuick) {
		t.Errorf("effort should override max_iterations, got %d", cfg.Search.MaxIterations)
	}

	ApplyEffortPreset(&cfg, "")
	if cfg.Search.MaxIterations != IterationsForPreset(EffortQuick) {
		t.Error("empty preset should leave config unchanged")
	}

	ApplyEffortPreset(&cfg, EffortThorough)
	if cfg.Search.Effort != EffortThorough || cfg.Search.MaxIterations != 250000 {
		t.Errorf("thorough not applied: %+v", cfg.Search)
	}
}

func TestParseEffort(t *testing.T) {
	for _, s := range []string{"", "quick", "normal", "thorough"} {
		if _, err := ParseEffort(s); err != nil {
			t.Errorf("ParseEffort(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseEffort("max"); err == nil {
		t.Error("ParseEffort(max) should fail")
	}
}
