// Package solver implements the greedy FreeCell search: hill climbing on the
// position heuristic with a forbidden-path memory, a per-position revisit
// budget and a stack of committed moves that is replayed from the deal when
// the search backs up.
package solver

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/vovakirdan/freecell/internal/freecell"
)

// State is the outcome of a single search iteration.
type State int

const (
	// Exploring means the iteration did not commit a move: it recorded a
	// dead end or backed up.
	Exploring State = iota
	// Committed means a move was pushed and the current position advanced.
	Committed
	// Solved means a winning position was found.
	Solved
	// Exhausted means the iteration cap was reached without a solution.
	Exhausted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Exploring:
		return "exploring"
	case Committed:
		return "committed"
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Config controls the search limits.
type Config struct {
	MaxIterations    int // Iteration cap; reaching it ends the search unsolved
	ProgressInterval int // Log a progress line every N iterations (0 disables)
}

// DefaultConfig returns the standard search limits.
func DefaultConfig() Config {
	return Config{
		MaxIterations:    50000,
		ProgressInterval: 450,
	}
}

// Result summarizes a finished search.
type Result struct {
	Solved     bool
	Path       []freecell.Move     // Winning moves; nil when unsolved
	Final      *freecell.Position  // Goal position, or the last current position
	Iterations int
	Backtracks int
	Forbidden  int // Paths recorded as dead or looping
	Tracked    int // Positions in the revisit budget table
}

// candidate pairs a legal move with the position it leads to.
type candidate struct {
	move freecell.Move
	next *freecell.Position
}

// Solver runs the search for one deal. A Solver is not safe for concurrent
// use.
type Solver struct {
	cfg    Config
	logger *log.Logger

	deal      *freecell.Position
	current   *freecell.Position
	forbidden map[uint64]struct{}
	budget    map[string]int
	stack     []freecell.Move

	iterations int
	backtracks int
	state      State
	solution   *freecell.Position
}

// New creates a solver starting from deal. A nil logger discards output.
func New(deal *freecell.Position, cfg Config, logger *log.Logger) *Solver {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultConfig().MaxIterations
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Solver{
		cfg:       cfg,
		logger:    logger,
		deal:      deal,
		current:   deal,
		forbidden: make(map[uint64]struct{}),
		budget:    make(map[string]int),
		state:     Exploring,
	}
}

// Run steps the search until it is solved or exhausted.
func (s *Solver) Run() Result {
	s.logger.Debug("search started",
		"free_cells", s.deal.NumFreeCells(),
		"heuristic", s.deal.Heuristic(),
		"max_iterations", s.cfg.MaxIterations,
	)

	for {
		if st := s.Step(); st == Solved || st == Exhausted {
			break
		}
	}

	res := s.Result()
	s.logger.Debug("search finished",
		"solved", res.Solved,
		"iterations", res.Iterations,
		"backtracks", res.Backtracks,
		"forbidden", res.Forbidden,
	)
	return res
}

// Step performs one search iteration. Once the search is solved or
// exhausted, Step keeps returning that state without doing any work.
func (s *Solver) Step() State {
	if s.state == Solved || s.state == Exhausted {
		return s.state
	}

	s.state = s.iterate()
	s.iterations++

	if s.cfg.ProgressInterval > 0 && s.iterations%s.cfg.ProgressInterval == 0 {
		s.logger.Info("searching",
			"iteration", s.iterations,
			"depth", len(s.stack),
			"heuristic", s.current.Heuristic(),
			"forbidden", len(s.forbidden),
		)
	}

	if s.state != Solved && s.iterations >= s.cfg.MaxIterations {
		s.state = Exhausted
	}
	return s.state
}

// iterate evaluates the moves from the current position and either
// commits the best one, records a dead end, or backs up.
func (s *Solver) iterate() State {
	cands := s.candidates()
	if len(cands) == 0 {
		s.forbid(s.current, "no moves")
		s.backtrack()
		return Exploring
	}

	best := choose(cands)
	if best.next.IsGoal() {
		s.solution = best.next
		return Solved
	}

	moves := best.next.LegalMoves()
	if len(moves) == 0 {
		s.forbid(best.next, "dead end")
		return Exploring
	}

	id := best.next.Identity()
	left, seen := s.budget[id]
	if !seen {
		left = len(moves) + 1
	} else {
		left--
	}
	s.budget[id] = left

	if left <= 0 {
		s.forbid(best.next, "revisit budget spent")
		s.backtrack()
		return Exploring
	}

	s.stack = append(s.stack, best.move)
	s.current = best.next
	return Committed
}

// candidates applies every useful legal move from the current position and
// drops those whose path is already forbidden.
func (s *Solver) candidates() []candidate {
	moves := lo.Filter(s.current.LegalMoves(), func(m freecell.Move, _ int) bool {
		return !m.BetweenFreeCells()
	})

	cands := make([]candidate, 0, len(moves))
	for _, m := range moves {
		next := s.current.Apply(m)
		if s.isForbidden(next) {
			continue
		}
		cands = append(cands, candidate{move: m, next: next})
	}
	return cands
}

// choose picks the first foundation move if there is one, otherwise the
// candidate with the lowest heuristic. Ties go to the earliest candidate.
func choose(cands []candidate) candidate {
	if c, ok := lo.Find(cands, func(c candidate) bool { return c.move.ToFoundation() }); ok {
		return c
	}

	best := cands[0]
	for _, c := range cands[1:] {
		if c.next.Heuristic() < best.next.Heuristic() {
			best = c
		}
	}
	return best
}

// backtrack drops the last committed move and rebuilds the current
// position from the deal.
func (s *Solver) backtrack() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
	s.current = freecell.Replay(s.deal, s.stack, true)
	s.backtracks++
}

func (s *Solver) forbid(p *freecell.Position, reason string) {
	s.forbidden[p.PathKey()] = struct{}{}
	s.logger.Debug("path forbidden", "reason", reason, "depth", p.PathLen(), "iteration", s.iterations)
}

func (s *Solver) isForbidden(p *freecell.Position) bool {
	_, ok := s.forbidden[p.PathKey()]
	return ok
}

// Current returns the position the search is currently expanding.
func (s *Solver) Current() *freecell.Position {
	return s.current
}

// Depth returns the number of committed moves on the backtracking stack.
func (s *Solver) Depth() int {
	return len(s.stack)
}

// Result reports the state of the search so far.
func (s *Solver) Result() Result {
	res := Result{
		Solved:     s.solution != nil,
		Final:      s.current,
		Iterations: s.iterations,
		Backtracks: s.backtracks,
		Forbidden:  len(s.forbidden),
		Tracked:    len(s.budget),
	}
	if s.solution != nil {
		res.Path = s.solution.Path()
		res.Final = s.solution
	}
	return res
}
