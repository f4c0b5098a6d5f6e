package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/freecell/internal/deals"
)

var (
	flagSolveID    string
	flagDealNoSave bool
)

var dealsCmd = &cobra.Command{
	Use:   "deals <dir>",
	Short: "List deal files in a directory",
	Long: `Scan a directory for deal files (.yaml, .yml) and list them.
Files that fail to parse or validate are skipped.

With --solve, the deal with the given id is solved and recorded.

Examples:
  freecell deals ./deals
  freecell deals ./deals --solve endgame`,
	Args: cobra.ExactArgs(1),
	Run:  runDeals,
}

func init() {
	dealsCmd.Flags().StringVar(&flagSolveID, "solve", "", "Solve the deal with this id")
	dealsCmd.Flags().BoolVar(&flagDealNoSave, "no-save", false, "Do not record the run")
}

func runDeals(_ *cobra.Command, args []string) {
	loader := deals.NewLoader(args[0])

	if flagSolveID != "" {
		d, err := loader.LoadByID(flagSolveID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Run 'freecell deals %s' to see available deals.\n", args[0])
			os.Exit(1)
		}
		cfg := loadConfig()
		solveAndReport(cfg, d.Position(), dealSource{ID: d.ID, Seed: d.Seed}, newLogger("freecell"), !flagDealNoSave)
		return
	}

	all, err := loader.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printDeals(os.Stdout, all, args[0])
}

// printDeals writes the deals as a plain table.
func printDeals(w io.Writer, all []deals.Deal, dir string) {
	if len(all) == 0 {
		fmt.Fprintf(w, "No deals found in %s.\n", dir)
		return
	}

	fmt.Fprintln(w, "Available deals:")
	fmt.Fprintln(w)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, d := range all {
		maxIDLen = max(maxIDLen, len(d.ID))
	}

	// Print header
	fmt.Fprintf(w, "  %-*s  %-5s  %-5s  %s\n", maxIDLen, "ID", "Cells", "Cards", "Name")
	fmt.Fprintf(w, "  %-*s  %-5s  %-5s  %s\n", maxIDLen, "--", "-----", "-----", "----")

	// Print deals
	for _, d := range all {
		name := d.Name
		if d.Seed != nil && name == "" {
			name = fmt.Sprintf("(seed %d)", *d.Seed)
		}
		fmt.Fprintf(w, "  %-*s  %-5d  %-5d  %s\n", maxIDLen, d.ID, len(d.Layout.FreeCells), d.NumCards(), name)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run 'freecell deals %s --solve <id>' to solve a deal.\n", dir)
}
