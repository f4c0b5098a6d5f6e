// freecell solves FreeCell deals with a greedy search that backtracks out of
// dead ends, and keeps a history of its runs for later replay.
//
// Usage:
//
//	freecell [free-cells]      - Solve a shuffled deal (default: 4 free cells)
//	freecell history           - List recorded runs
//	freecell replay <run-id>   - Step through a recorded solution
//	freecell deals <dir>       - List deal files in a directory
//	freecell stats             - Show solve rates per free-cell count
//	freecell serve             - Start SSH server for remote replays
//
// Global flags:
//
//	--config <path> - Solver config YAML
//	--db <path>     - Set database path (default: ~/.freecell/runs.db)
//	--verbose       - Log search details
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/freecell/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "freecell [free-cells]",
	Short: "FreeCell - Solve FreeCell deals in your terminal",
	Long: `FreeCell deals a shuffled deck and searches for a solution, moving
greedily toward the foundations and backing out of dead ends.

The optional argument sets the number of free cells (default: 4).

Available commands:
  history  - List recorded runs
  replay   - Step through a recorded solution
  deals    - List deal files in a directory
  stats    - Show solve rates per free-cell count
  serve    - Start SSH server for remote replays

Examples:
  freecell
  freecell 3 --seed 42
  freecell --deal ./deals/endgame.yaml
  freecell history
  freecell replay 12`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSolve,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to solver config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (default from config: ~/.freecell/runs.db)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log search details")

	// Add subcommands
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(dealsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates the command line logger.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the solver config and applies the global flags.
func loadConfig() config.SolverConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg
}

// stdoutIsTerminal reports whether output goes to a terminal.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalSize returns the terminal size, or 80x24 when it is unknown.
func terminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// useColor decides whether boards are printed with color.
func useColor(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return stdoutIsTerminal()
	}
}
