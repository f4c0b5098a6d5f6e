package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/freecell/internal/core"
	"github.com/vovakirdan/freecell/internal/platform/tui"
	"github.com/vovakirdan/freecell/internal/storage"
)

var flagPlain bool

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Step through a recorded solution",
	Long: `Replay a recorded run move by move.

Controls:
  Left/Right - Previous/next move
  g/G        - Jump to deal/last move
  Space      - Play/pause
  Q/Ctrl+C   - Quit

With --plain, or when output is not a terminal, the solution is printed
the same way a solve prints it.

Examples:
  freecell replay 12
  freecell replay 12 --plain`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the solution instead of opening the viewer")
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run id %q\n", args[0])
		os.Exit(1)
	}

	cfg := loadConfig()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}

	run, err := store.RunByID(id)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Error: no run #%d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'freecell history' to see recorded runs.")
		os.Exit(1)
	}

	r, err := tui.ReplayFromRun(*run)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagPlain || !stdoutIsTerminal() {
		fmt.Println(r.Title)
		fmt.Println()
		if !run.Solved {
			fmt.Println("Cannot solve this game. Goodbye!")
			return
		}
		fmt.Print(core.FormatSolution(r.Deal, r.Moves, cfg.Output.RenderEvery, tui.Renderer(useColor(cfg.Output.Color))))
		fmt.Println("FINISHED!")
		return
	}

	width, height := terminalSize()
	if err := tui.RunReplay(r, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
		os.Exit(1)
	}
}
