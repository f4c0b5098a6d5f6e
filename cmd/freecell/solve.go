package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/freecell/internal/cards"
	"github.com/vovakirdan/freecell/internal/config"
	"github.com/vovakirdan/freecell/internal/core"
	"github.com/vovakirdan/freecell/internal/deals"
	"github.com/vovakirdan/freecell/internal/freecell"
	"github.com/vovakirdan/freecell/internal/platform/tui"
	"github.com/vovakirdan/freecell/internal/solver"
	"github.com/vovakirdan/freecell/internal/storage"
)

var (
	flagSeed          int64
	flagDeal          string
	flagMaxIterations int
	flagEffort        string
	flagColor         string
	flagNoSave        bool
)

func init() {
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Shuffle seed (default: random based on time)")
	rootCmd.Flags().StringVar(&flagDeal, "deal", "", "Solve the deal in this YAML file instead of a shuffled one")
	rootCmd.Flags().IntVar(&flagMaxIterations, "max-iterations", 0, "Iteration cap before giving up (overrides config)")
	rootCmd.Flags().StringVar(&flagEffort, "effort", "", "Effort preset: quick, normal, thorough")
	rootCmd.Flags().StringVar(&flagColor, "color", "", "Board colors: auto, always, never")
	rootCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
}

// dealSource describes where the starting board came from.
type dealSource struct {
	ID   string
	Seed *int64
}

func runSolve(cmd *cobra.Command, args []string) {
	logger := newLogger("freecell")
	cfg := loadConfig()

	if err := applySolveFlags(cmd, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cells := cfg.Search.FreeCells
	switch {
	case len(args) == 1:
		cells = parseFreeCells(args[0], cells, os.Stderr)
	case flagDeal == "":
		logger.Warn("no free-cell count given, using default", "free_cells", cells)
	}

	start, src, err := chooseDeal(cmd, cells, len(args) == 1, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	solveAndReport(cfg, start, src, logger, !flagNoSave)
}

// solveAndReport runs the solver on start, prints the outcome and records
// the run when save is set.
func solveAndReport(cfg config.SolverConfig, start *freecell.Position, src dealSource, logger *log.Logger, save bool) {
	logger.Info("solving",
		"deal", dealName(src),
		"free_cells", start.NumFreeCells(),
		"max_iterations", cfg.Search.MaxIterations,
	)

	s := solver.New(start, solver.Config{
		MaxIterations:    cfg.Search.MaxIterations,
		ProgressInterval: cfg.Search.ProgressInterval,
	}, logger)
	res := s.Run()

	printResult(os.Stdout, start, res, cfg.Output.RenderEvery, tui.Renderer(useColor(cfg.Output.Color)))
	logger.Info("search finished",
		"solved", res.Solved,
		"iterations", res.Iterations,
		"backtracks", res.Backtracks,
	)

	if !save {
		return
	}

	// A run that cannot be recorded is still a finished run
	id, err := saveRun(cfg.Storage.DBPath, src, start, res)
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Info("run recorded", "id", id)
}

// applySolveFlags overrides config values with the flags given on the
// command line.
func applySolveFlags(cmd *cobra.Command, cfg *config.SolverConfig) error {
	flags := cmd.Flags()

	if flags.Changed("effort") {
		preset, err := config.ParseEffort(flagEffort)
		if err != nil {
			return err
		}
		config.ApplyEffortPreset(cfg, preset)
	}

	if flags.Changed("max-iterations") {
		if flagMaxIterations <= 0 {
			return fmt.Errorf("--max-iterations must be positive, got %d", flagMaxIterations)
		}
		cfg.Search.MaxIterations = flagMaxIterations
	}

	if flags.Changed("color") {
		mode := config.ColorMode(flagColor)
		if !mode.Valid() {
			return fmt.Errorf("unknown color mode %q (use auto, always or never)", flagColor)
		}
		cfg.Output.Color = mode
	}

	return nil
}

// parseFreeCells reads the free-cell argument. Anything but a whole number
// falls back to the default with a warning written to w.
func parseFreeCells(arg string, fallback int, w io.Writer) int {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || !isDigits(arg) {
		fmt.Fprintln(w, "Number of free cells must be non-negative whole number!")
		fmt.Fprintf(w, "Defaulting to %d free cells!\n", fallback)
		return fallback
	}
	return n
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// chooseDeal builds the starting board from --deal, or shuffles a deck
// with --seed (or the clock) and deals it with the given free cells.
func chooseDeal(cmd *cobra.Command, cells int, cellsGiven bool, logger *log.Logger) (*freecell.Position, dealSource, error) {
	if flagDeal != "" {
		d, err := deals.NewLoader(filepath.Dir(flagDeal)).LoadFile(flagDeal)
		if err != nil {
			return nil, dealSource{}, err
		}
		if cellsGiven {
			logger.Warn("deal file sets its own free cells, ignoring argument", "free_cells", len(d.Layout.FreeCells))
		}
		return d.Position(), dealSource{ID: d.ID, Seed: d.Seed}, nil
	}

	seed := flagSeed
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}

	p, err := freecell.Deal(cards.ShuffledDeck(seed), cells)
	if err != nil {
		return nil, dealSource{}, err
	}
	return p, dealSource{Seed: &seed}, nil
}

func dealName(src dealSource) string {
	switch {
	case src.ID != "":
		return src.ID
	case src.Seed != nil:
		return fmt.Sprintf("seed %d", *src.Seed)
	default:
		return "-"
	}
}

// printResult prints the solution, or the give-up line when the search ran
// out of iterations.
func printResult(w io.Writer, start *freecell.Position, res solver.Result, renderEvery int, draw func(*core.Screen) string) {
	if !res.Solved {
		fmt.Fprintln(w, "Cannot solve this game. Goodbye!")
		return
	}
	fmt.Fprint(w, core.FormatSolution(start, res.Path, renderEvery, draw))
	fmt.Fprintln(w, "FINISHED!")
}

// runRecord builds the stored form of a finished run.
func runRecord(src dealSource, start *freecell.Position, res solver.Result) (storage.Run, error) {
	data, err := deals.Encode(deals.FromPosition(src.ID, start, src.Seed))
	if err != nil {
		return storage.Run{}, err
	}

	run := storage.Run{
		DealID:     src.ID,
		Seed:       src.Seed,
		FreeCells:  start.NumFreeCells(),
		Solved:     res.Solved,
		Iterations: res.Iterations,
		Backtracks: res.Backtracks,
		Deal:       string(data),
	}
	for _, m := range res.Path {
		run.Moves = append(run.Moves, m.String())
	}
	return run, nil
}

// saveRun records a finished run in the database at dbPath.
func saveRun(dbPath string, src dealSource, start *freecell.Position, res solver.Result) (int64, error) {
	run, err := runRecord(src, start, res)
	if err != nil {
		return 0, err
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.SaveRun(run)
}
