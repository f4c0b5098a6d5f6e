// Package freecell models FreeCell positions: the foundations, free cells
// and tableau piles, the legal moves between them and the heuristic used
// to guide the solver. Positions are immutable; every move produces a new
// Position.
package freecell

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"

	"github.com/vovakirdan/freecell/internal/cards"
)

// NumPiles is the number of tableau piles in a standard deal.
const NumPiles = 8

// DefaultFreeCells is the free-cell count of a standard game.
const DefaultFreeCells = 4

// pileSizes is how a 52-card deck is split across the tableau.
var pileSizes = [NumPiles]int{7, 7, 7, 7, 6, 6, 6, 6}

// Layout describes the contents of a board. Piles are ordered bottom to
// top; a NoCard entry in FreeCells is an empty cell.
type Layout struct {
	Foundations [cards.NumSuits][]cards.Card
	FreeCells   []cards.Card
	Piles       [][]cards.Card
}

// Position is a snapshot of a game together with the path of moves that
// produced it. A Position is never modified after construction.
type Position struct {
	foundations [cards.NumSuits][]cards.Card
	freeCells   []cards.Card
	piles       [][]cards.Card
	path        []Move
	digest      xxhash.Digest
	heuristic   int
}

// NewPosition creates a position with an empty path from a layout.
// The layout is copied.
func NewPosition(l Layout) *Position {
	p := &Position{
		freeCells: slices.Clone(l.FreeCells),
		piles:     make([][]cards.Card, len(l.Piles)),
		digest:    *xxhash.New(),
	}
	if p.freeCells == nil {
		p.freeCells = []cards.Card{}
	}
	for i, pile := range l.Piles {
		p.piles[i] = slices.Clone(pile)
	}
	for s := range l.Foundations {
		p.foundations[s] = slices.Clone(l.Foundations[s])
	}
	p.heuristic = p.computeHeuristic()
	return p
}

// Deal lays out a full 52-card deck over eight piles (7,7,7,7,6,6,6,6) with
// the given number of empty free cells.
func Deal(deck []cards.Card, freeCells int) (*Position, error) {
	if len(deck) != cards.DeckSize {
		return nil, fmt.Errorf("freecell: deal needs %d cards, got %d", cards.DeckSize, len(deck))
	}
	if freeCells < 0 {
		return nil, fmt.Errorf("freecell: negative free cell count %d", freeCells)
	}

	layout := Layout{
		FreeCells: make([]cards.Card, freeCells),
		Piles:     make([][]cards.Card, NumPiles),
	}
	start := 0
	for i, size := range pileSizes {
		layout.Piles[i] = deck[start : start+size]
		start += size
	}
	return NewPosition(layout), nil
}

// Layout returns a copy of the board contents.
func (p *Position) Layout() Layout {
	l := Layout{
		FreeCells: p.FreeCells(),
		Piles:     p.Piles(),
	}
	for s := range p.foundations {
		l.Foundations[s] = slices.Clone(p.foundations[s])
	}
	return l
}

// Foundation returns a copy of the foundation for suit s, lowest rank first.
func (p *Position) Foundation(s cards.Suit) []cards.Card {
	return slices.Clone(p.foundations[s])
}

// FoundationTop returns the top card of the foundation for suit s, or
// NoCard if it is empty.
func (p *Position) FoundationTop(s cards.Suit) cards.Card {
	f := p.foundations[s]
	if len(f) == 0 {
		return cards.NoCard
	}
	return f[len(f)-1]
}

// FreeCells returns a copy of the free cells.
func (p *Position) FreeCells() []cards.Card {
	return slices.Clone(p.freeCells)
}

// NumFreeCells returns the number of free cells, occupied or not.
func (p *Position) NumFreeCells() int {
	return len(p.freeCells)
}

// Piles returns a copy of the tableau piles.
func (p *Position) Piles() [][]cards.Card {
	out := make([][]cards.Card, len(p.piles))
	for i, pile := range p.piles {
		out[i] = slices.Clone(pile)
	}
	return out
}

// PileTop returns the exposed card of pile i, or NoCard if it is empty.
func (p *Position) PileTop(i int) cards.Card {
	pile := p.piles[i]
	if len(pile) == 0 {
		return cards.NoCard
	}
	return pile[len(pile)-1]
}

// Path returns a copy of the moves applied since the deal.
func (p *Position) Path() []Move {
	return slices.Clone(p.path)
}

// PathLen returns the number of moves applied since the deal.
func (p *Position) PathLen() int {
	return len(p.path)
}

// PathKey returns a digest of the path, identical for positions reached by
// the same sequence of moves.
func (p *Position) PathKey() uint64 {
	d := p.digest
	return d.Sum64()
}

// Heuristic returns the cached distance-to-goal estimate. Lower is better.
func (p *Position) Heuristic() int {
	return p.heuristic
}

// IsGoal reports whether every card has reached the foundations.
func (p *Position) IsGoal() bool {
	if !lo.EveryBy(p.freeCells, cards.Card.IsNone) {
		return false
	}
	for _, pile := range p.piles {
		if len(pile) > 0 {
			return false
		}
	}
	for _, f := range p.foundations {
		if len(f) != int(cards.King) {
			return false
		}
	}
	return true
}

// IsDeadEnd reports whether no legal move exists.
func (p *Position) IsDeadEnd() bool {
	return len(p.LegalMoves()) == 0
}

// Identity returns a key describing the piles and foundations. Free cells
// are not part of the identity, so positions differing only in free-cell
// contents share a key.
func (p *Position) Identity() string {
	var sb strings.Builder
	sb.Grow(4 * (cards.DeckSize + len(p.piles) + cards.NumSuits))
	for _, pile := range p.piles {
		for _, c := range pile {
			sb.WriteString(c.Key())
		}
		sb.WriteByte(';')
	}
	for _, f := range p.foundations {
		for _, c := range f {
			sb.WriteString(c.Key())
		}
		sb.WriteByte(';')
	}
	return sb.String()
}

// Cards returns every card on the board.
func (p *Position) Cards() []cards.Card {
	var all []cards.Card
	for _, f := range p.foundations {
		all = append(all, f...)
	}
	for _, c := range p.freeCells {
		if !c.IsNone() {
			all = append(all, c)
		}
	}
	for _, pile := range p.piles {
		all = append(all, pile...)
	}
	return all
}

// Conserved reports whether the board holds exactly one of each of the 52
// cards.
func (p *Position) Conserved() bool {
	all := p.Cards()
	if len(all) != cards.DeckSize {
		return false
	}
	return len(lo.Uniq(all)) == cards.DeckSize
}

// Apply returns the position reached by playing m. The receiver is left
// untouched.
func (p *Position) Apply(m Move) *Position {
	next := p.clone()

	switch m.From.Kind {
	case KindPile:
		next.removeFromPile(m.From.Index, m.Card)
	case KindFreeCell:
		if m.From.Index >= 0 && m.From.Index < len(next.freeCells) {
			next.freeCells[m.From.Index] = cards.NoCard
		}
	}

	switch m.To.Kind {
	case KindPile:
		next.piles[m.To.Index] = append(next.piles[m.To.Index], m.Card)
	case KindFreeCell:
		next.freeCells[m.To.Index] = m.Card
	case KindFoundation:
		f := next.foundations[m.Card.Suit]
		if len(f) == 0 || f[len(f)-1] != m.Card {
			next.foundations[m.Card.Suit] = append(f, m.Card)
		}
	}

	next.path = append(slices.Clip(p.path), m)
	next.digest.WriteString(m.String())
	next.digest.WriteString("\n")
	next.heuristic = next.computeHeuristic()
	return next
}

// removeFromPile takes card out of pile i and closes the gap. A card that
// is no longer in the pile is ignored.
func (p *Position) removeFromPile(i int, card cards.Card) {
	if i < 0 || i >= len(p.piles) {
		return
	}
	idx := slices.Index(p.piles[i], card)
	if idx < 0 {
		return
	}
	p.piles[i] = slices.Delete(p.piles[i], idx, idx+1)
}

// clone copies the board so that the copy can be modified. The path and
// heuristic are left to the caller.
func (p *Position) clone() *Position {
	next := &Position{
		freeCells: slices.Clone(p.freeCells),
		piles:     make([][]cards.Card, len(p.piles)),
		digest:    p.digest,
	}
	for i, pile := range p.piles {
		next.piles[i] = slices.Clone(pile)
	}
	for s := range p.foundations {
		next.foundations[s] = slices.Clone(p.foundations[s])
	}
	return next
}

// Replay applies moves to deal in order. With collapse set, a move equal to
// the one right after it is skipped.
func Replay(deal *Position, moves []Move, collapse bool) *Position {
	cur := deal
	for i, m := range moves {
		if collapse && i < len(moves)-1 && m == moves[i+1] {
			continue
		}
		cur = cur.Apply(m)
	}
	return cur
}
