package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/freecell/internal/platform/tui"
	"github.com/vovakirdan/freecell/internal/storage"
)

var (
	flagHistoryLimit int
	flagInteractive  bool
	flagClear        bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long: `Display the most recent solver runs, newest first.

With --interactive, runs open in a browser where enter replays the
selected solution.

Examples:
  freecell history
  freecell history --limit 50
  freecell history -i
  freecell history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs and replay them")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	// Open run storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All runs deleted.")
		return
	}

	if flagInteractive {
		if !stdoutIsTerminal() {
			fmt.Fprintln(os.Stderr, "Error: --interactive needs a terminal")
			os.Exit(1)
		}
		width, height := terminalSize()
		if err := tui.RunSession(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	printHistory(os.Stdout, runs)
}

// printHistory writes runs as a plain table.
func printHistory(w io.Writer, runs []storage.Run) {
	fmt.Fprintln(w, "Recent Runs")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'freecell' to solve a deal and record the first run!")
		return
	}

	// Print header
	fmt.Fprintf(w, "  %-6s  %-16s  %-20s  %-5s  %-7s  %-5s  %s\n", "Run", "Date", "Deal", "Cells", "Result", "Moves", "Iterations")
	fmt.Fprintf(w, "  %-6s  %-16s  %-20s  %-5s  %-7s  %-5s  %s\n", "---", "----", "----", "-----", "------", "-----", "----------")

	// Print runs
	for _, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-6s  %-16s  %-20s  %-5d  %-7s  %-5d  %d\n",
			fmt.Sprintf("#%d", r.ID), dateStr, tui.DealLabel(r), r.FreeCells, tui.ResultLabel(r), r.MoveCount(), r.Iterations)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'freecell replay <run>' to step through a solution.")
}
