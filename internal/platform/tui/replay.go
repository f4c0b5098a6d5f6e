package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/freecell/internal/core"
	"github.com/vovakirdan/freecell/internal/freecell"
)

// DefaultPlayInterval is the delay between moves while auto-playing.
const DefaultPlayInterval = 600 * time.Millisecond

// Replay is a solution to step through.
type Replay struct {
	Title string
	Deal  *freecell.Position
	Moves []freecell.Move
}

// ReplayKeyMap defines the key bindings for the replay viewer.
type ReplayKeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding
	Play  key.Binding
	Help  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Play, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.Play, k.Help, k.Back, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→/l", "next move"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/h", "prev move"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "deal"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last move"),
		),
		Play: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "play/pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayModel is the Bubble Tea model that steps through a solution.
type ReplayModel struct {
	title     string
	frames    []*freecell.Position // frames[i] is the board after i moves
	moves     []freecell.Move
	index     int
	playing   bool
	ticking   bool // A tick is in flight
	interval  time.Duration
	help      help.Model
	keys      ReplayKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewReplayModel creates a replay viewer positioned on the deal.
func NewReplayModel(r Replay, width, height int) ReplayModel {
	frames := make([]*freecell.Position, 0, len(r.Moves)+1)
	cur := r.Deal
	frames = append(frames, cur)
	for _, m := range r.Moves {
		cur = cur.Apply(m)
		frames = append(frames, cur)
	}

	h := help.New()
	h.Width = width

	return ReplayModel{
		title:    r.Title,
		frames:   frames,
		moves:    r.Moves,
		interval: DefaultPlayInterval,
		help:     h,
		keys:     DefaultReplayKeyMap(),
		width:    width,
		height:   height,
	}
}

// Init initializes the replay model.
func (m ReplayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay viewer.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.ticking = false
		if !m.playing {
			return m, nil
		}
		m.step(1)
		if m.AtEnd() {
			m.playing = false
			return m, nil
		}
		m.ticking = true
		return m, tickCmd(m.interval)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m ReplayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.goingBack = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.playing = false
		m.step(1)

	case key.Matches(msg, m.keys.Prev):
		m.playing = false
		m.step(-1)

	case key.Matches(msg, m.keys.First):
		m.playing = false
		m.index = 0

	case key.Matches(msg, m.keys.Last):
		m.playing = false
		m.index = len(m.frames) - 1

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Play):
		if m.playing {
			m.playing = false
			return m, nil
		}
		if m.AtEnd() {
			m.index = 0
		}
		m.playing = true
		if m.ticking {
			return m, nil
		}
		m.ticking = true
		return m, tickCmd(m.interval)
	}

	return m, nil
}

// step moves the cursor by delta frames, staying within the replay.
func (m *ReplayModel) step(delta int) {
	m.index = max(0, min(len(m.frames)-1, m.index+delta))
}

// Index returns how many moves have been applied to the shown board.
func (m ReplayModel) Index() int {
	return m.index
}

// Current returns the board being shown.
func (m ReplayModel) Current() *freecell.Position {
	return m.frames[m.index]
}

// AtEnd reports whether the last move is shown.
func (m ReplayModel) AtEnd() bool {
	return m.index == len(m.frames)-1
}

// Playing reports whether the replay advances on its own.
func (m ReplayModel) Playing() bool {
	return m.playing
}

// status describes the shown frame.
func (m ReplayModel) status() string {
	if m.index == 0 {
		return fmt.Sprintf("Deal  (%d moves)", len(m.moves))
	}
	return fmt.Sprintf("Move %d/%d  %s", m.index, len(m.moves), m.moves[m.index-1])
}

// View renders the replay viewer.
func (m ReplayModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := m.title
	if title == "" {
		title = "REPLAY"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(RenderScreen(core.BoardScreen(m.Current())))
	b.WriteString("\n\n")

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	status := m.status()
	if m.playing {
		status += "  ▶"
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back.
func (m ReplayModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayModel) IsQuitting() bool {
	return m.quitting
}

// RunReplay runs the replay viewer until the user leaves it.
func RunReplay(r Replay, width, height int) error {
	p := tea.NewProgram(
		NewReplayModel(r, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
