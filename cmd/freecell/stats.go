package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/freecell/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show solve rates per free-cell count",
	Long: `Summarize recorded runs grouped by the number of free cells:
how many were solved, the average search effort and the shortest win.

Examples:
  freecell stats
  freecell stats --db ./runs.db`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	stats, err := store.StatsByFreeCells()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	printStats(os.Stdout, stats)
}

// printStats writes one line per free-cell count, fewest cells first.
func printStats(w io.Writer, stats map[int]*storage.RunStats) {
	fmt.Fprintln(w, "Run Statistics")
	fmt.Fprintln(w)

	if len(stats) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return
	}

	fmt.Fprintf(w, "  %-5s  %-5s  %-6s  %-6s  %-10s  %-8s  %s\n", "Cells", "Runs", "Solved", "Rate", "Avg iters", "Shortest", "Last run")
	fmt.Fprintf(w, "  %-5s  %-5s  %-6s  %-6s  %-10s  %-8s  %s\n", "-----", "----", "------", "----", "---------", "--------", "--------")

	cells := lo.Keys(stats)
	slices.Sort(cells)
	for _, n := range cells {
		st := stats[n]
		shortest := "-"
		if st.ShortestWin > 0 {
			shortest = fmt.Sprintf("%d", st.ShortestWin)
		}
		fmt.Fprintf(w, "  %-5d  %-5d  %-6d  %-6s  %-10.0f  %-8s  %s\n",
			st.FreeCells, st.Runs, st.Solved,
			fmt.Sprintf("%.0f%%", st.SolveRate()*100),
			st.AvgIterations, shortest,
			st.LastRun.Format("2006-01-02 15:04"))
	}

	total := lo.SumBy(lo.Values(stats), func(st *storage.RunStats) int { return st.Runs })
	solved := lo.SumBy(lo.Values(stats), func(st *storage.RunStats) int { return st.Solved })
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d runs, %d solved\n", total, solved)
}
