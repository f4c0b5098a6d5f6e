package freecell

import (
	"slices"

	"github.com/samber/lo"

	"github.com/vovakirdan/freecell/internal/cards"
)

// exposedScore is the contribution of a needed card that is already the
// exposed card of its pile (or not on the tableau at all). It is lower than
// zero so that a playable next card is preferred over a merely unblocked one.
const exposedScore = -1

// NextNeeded returns the next card the foundation for suit s needs, or false
// once the foundation is complete.
func (p *Position) NextNeeded(s cards.Suit) (cards.Card, bool) {
	top := p.FoundationTop(s)
	if top.IsNone() {
		return cards.New(cards.Ace, s), true
	}
	if top.Rank == cards.King {
		return cards.NoCard, false
	}
	return cards.New(top.Rank+1, s), true
}

// computeHeuristic sums, over the four suits, how many cards cover the next
// needed card. The sum is doubled when every free cell is occupied and at
// least one pile is empty.
func (p *Position) computeHeuristic() int {
	h := 0
	for _, s := range cards.AllSuits {
		next, ok := p.NextNeeded(s)
		if !ok {
			continue
		}
		if slices.Contains(p.freeCells, next) {
			continue
		}
		h += p.cardsAbove(next)
	}

	if p.freeCellsFull() && p.hasEmptyPile() {
		h *= 2
	}
	return h
}

// cardsAbove counts the cards on top of c in its pile, returning
// exposedScore when nothing covers it.
func (p *Position) cardsAbove(c cards.Card) int {
	for _, pile := range p.piles {
		idx := slices.Index(pile, c)
		if idx < 0 {
			continue
		}
		if above := len(pile) - 1 - idx; above > 0 {
			return above
		}
		return exposedScore
	}
	return exposedScore
}

func (p *Position) freeCellsFull() bool {
	return !lo.SomeBy(p.freeCells, cards.Card.IsNone)
}

func (p *Position) hasEmptyPile() bool {
	return lo.SomeBy(p.piles, func(pile []cards.Card) bool {
		return len(pile) == 0
	})
}
