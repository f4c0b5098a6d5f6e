package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/freecell/internal/deals"
	"github.com/vovakirdan/freecell/internal/freecell"
	"github.com/vovakirdan/freecell/internal/storage"
)

// ReplayFromRun rebuilds the deal and moves of a recorded run.
func ReplayFromRun(run storage.Run) (Replay, error) {
	deal, err := deals.Parse([]byte(run.Deal))
	if err != nil {
		return Replay{}, fmt.Errorf("run #%d: bad deal: %w", run.ID, err)
	}

	start := deal.Position()
	moves := make([]freecell.Move, 0, len(run.Moves))
	cur := start
	for i, s := range run.Moves {
		m, err := freecell.ParseMove(s)
		if err != nil {
			return Replay{}, fmt.Errorf("run #%d: move %d: %w", run.ID, i+1, err)
		}
		if !cur.IsLegal(m) {
			return Replay{}, fmt.Errorf("run #%d: move %d (%s) is not legal", run.ID, i+1, s)
		}
		cur = cur.Apply(m)
		moves = append(moves, m)
	}

	return Replay{
		Title: fmt.Sprintf("RUN #%d  %s  %d free cells  %s", run.ID, DealLabel(run), run.FreeCells, ResultLabel(run)),
		Deal:  start,
		Moves: moves,
	}, nil
}

// SessionModel manages the browse flow: run list -> replay -> run list.
// It is the top-level model for SSH sessions and the interactive history.
type SessionModel struct {
	store    *storage.Store
	width    int
	height   int
	runs     RunsModel
	replay   *ReplayModel
	err      error
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, width, height int) SessionModel {
	return SessionModel{
		store:  store,
		width:  width,
		height: height,
		runs:   NewRunsModel(store, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.runs.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		if m.replay != nil {
			newRuns, _ := m.runs.Update(msg)
			if runsModel, ok := newRuns.(RunsModel); ok {
				m.runs = runsModel
			}
		}
	}

	if m.replay != nil {
		return m.updateReplay(msg)
	}
	return m.updateRuns(msg)
}

// updateRuns handles updates while the run list is shown.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newRuns, cmd := m.runs.Update(msg)
	if runsModel, ok := newRuns.(RunsModel); ok {
		m.runs = runsModel
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.runs.Selected(); selected != nil {
		m.runs.ClearSelection()
		r, err := ReplayFromRun(*selected)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		replay := NewReplayModel(r, m.width, m.height)
		m.replay = &replay
		return m, m.replay.Init()
	}

	return m, cmd
}

// updateReplay handles updates while a replay is shown.
func (m SessionModel) updateReplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replay.Update(msg)
	if replayModel, ok := newModel.(ReplayModel); ok {
		m.replay = &replayModel
	}

	// Back to the list; the viewer's own quit command is dropped
	if m.replay.IsGoingBack() {
		m.replay = nil
		return m, nil
	}

	if m.replay.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.replay != nil {
		return m.replay.View()
	}

	view := m.runs.View()
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		view = errStyle.Render("Error: "+m.err.Error()) + "\n" + view
	}
	return view
}

// InReplay reports whether a replay is being shown.
func (m SessionModel) InReplay() bool {
	return m.replay != nil
}

// RunSession runs the run browser with replays until the user quits.
func RunSession(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewSessionModel(store, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
