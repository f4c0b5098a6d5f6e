package freecell

import (
	"slices"

	"github.com/vovakirdan/freecell/internal/cards"
)

// LegalMoves lists the moves available from p. Exposed pile cards come
// first in pile order, then free-cell cards in cell order. For each card a
// foundation move, when possible, is the only move listed; otherwise its
// pile destinations are listed in pile order followed by every empty free
// cell. The order is stable and is what the solver uses to break ties.
func (p *Position) LegalMoves() []Move {
	var moves []Move
	for i, pile := range p.piles {
		if len(pile) == 0 {
			continue
		}
		moves = p.appendCardMoves(moves, Pile(i), pile[len(pile)-1])
	}
	for i, c := range p.freeCells {
		if c.IsNone() {
			continue
		}
		moves = p.appendCardMoves(moves, FreeCell(i), c)
	}
	return moves
}

func (p *Position) appendCardMoves(moves []Move, from Location, c cards.Card) []Move {
	if c.CanStackOnFoundation(p.FoundationTop(c.Suit)) {
		return append(moves, Move{From: from, To: Foundation(c.Suit), Card: c})
	}

	for i := range p.piles {
		if c.CanStackOnTableau(p.PileTop(i)) {
			moves = append(moves, Move{From: from, To: Pile(i), Card: c})
		}
	}

	for i, cell := range p.freeCells {
		if cell.IsNone() {
			moves = append(moves, Move{From: from, To: FreeCell(i), Card: c})
		}
	}
	return moves
}

// IsLegal reports whether m is one of the legal moves from p.
func (p *Position) IsLegal(m Move) bool {
	return slices.Contains(p.LegalMoves(), m)
}
