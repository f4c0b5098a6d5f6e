package freecell

import (
	"testing"

	"github.com/vovakirdan/freecell/internal/cards"
)

// clubsOnly completes every foundation except clubs, so only the clubs term
// contributes to the heuristic.
func clubsOnly() [cards.NumSuits][]cards.Card {
	var f [cards.NumSuits][]cards.Card
	f[cards.Diamonds] = fullFoundation(cards.Diamonds)
	f[cards.Hearts] = fullFoundation(cards.Hearts)
	f[cards.Spades] = fullFoundation(cards.Spades)
	return f
}

func TestHeuristicExposedSentinel(t *testing.T) {
	p := NewPosition(Layout{
		Foundations: clubsOnly(),
		FreeCells:   make([]cards.Card, 1),
		Piles:       [][]cards.Card{pile("2C"), pile("AC")},
	})

	if got := p.Heuristic(); got != -1 {
		t.Errorf("exposed ace should score -1, got %d", got)
	}
}

func TestHeuristicCountsBlockers(t *testing.T) {
	p := NewPosition(Layout{
		Foundations: clubsOnly(),
		FreeCells:   make([]cards.Card, 1),
		Piles:       [][]cards.Card{pile("AC", "3C", "2C")},
	})

	if got := p.Heuristic(); got != 2 {
		t.Errorf("ace under two cards should score 2, got %d", got)
	}
}

func TestHeuristicFreeCellScoresZero(t *testing.T) {
	p := NewPosition(Layout{
		Foundations: clubsOnly(),
		FreeCells:   []cards.Card{c("AC"), cards.NoCard},
		Piles:       [][]cards.Card{pile("3C", "2C")},
	})

	if got := p.Heuristic(); got != 0 {
		t.Errorf("needed card in a free cell should score 0, got %d", got)
	}
}

func TestHeuristicDoublesWhenCellsFullAndPileEmpty(t *testing.T) {
	p := NewPosition(Layout{
		Foundations: clubsOnly(),
		FreeCells:   []cards.Card{c("3C")},
		Piles:       [][]cards.Card{pile("2C"), pile("AC"), {}},
	})
	if got := p.Heuristic(); got != -2 {
		t.Errorf("expected -1 doubled to -2, got %d", got)
	}

	blocked := NewPosition(Layout{
		Foundations: clubsOnly(),
		FreeCells:   []cards.Card{c("3C")},
		Piles:       [][]cards.Card{pile("AC", "2C"), {}},
	})
	if got := blocked.Heuristic(); got != 2 {
		t.Errorf("expected 1 doubled to 2, got %d", got)
	}

	// Free cell still open: no doubling
	open := NewPosition(Layout{
		Foundations: clubsOnly(),
		FreeCells:   []cards.Card{c("3C"), cards.NoCard},
		Piles:       [][]cards.Card{pile("AC", "2C"), {}},
	})
	if got := open.Heuristic(); got != 1 {
		t.Errorf("expected 1 without doubling, got %d", got)
	}

	// No empty pile: no doubling
	full := NewPosition(Layout{
		Foundations: clubsOnly(),
		FreeCells:   []cards.Card{c("3C")},
		Piles:       [][]cards.Card{pile("AC", "2C")},
	})
	if got := full.Heuristic(); got != 1 {
		t.Errorf("expected 1 without doubling, got %d", got)
	}
}

func TestHeuristicSumsSuits(t *testing.T) {
	var f [cards.NumSuits][]cards.Card
	f[cards.Spades] = fullFoundation(cards.Spades)
	f[cards.Hearts] = foundationTo(cards.Hearts, 4)

	p := NewPosition(Layout{
		Foundations: f,
		FreeCells:   []cards.Card{c("AD"), cards.NoCard},
		Piles: [][]cards.Card{
			pile("AC", "9D", "8S"), // clubs: 2 blockers
			pile("5H"),             // hearts: exposed, -1
		},
	})

	// clubs 2 + diamonds 0 (free cell) + hearts -1 + spades 0 (complete)
	if got := p.Heuristic(); got != 1 {
		t.Errorf("Heuristic() = %d, expected 1", got)
	}
}

func TestHeuristicRecomputedOnApply(t *testing.T) {
	p := NewPosition(Layout{
		Foundations: clubsOnly(),
		FreeCells:   make([]cards.Card, 1),
		Piles:       [][]cards.Card{pile("AC", "2C"), {}},
	})
	if p.Heuristic() != 1 {
		t.Fatalf("expected initial heuristic 1, got %d", p.Heuristic())
	}

	next := p.Apply(Move{From: Pile(0), To: FreeCell(0), Card: c("2C")})
	// Ace now exposed, cells full and a pile empty: -1 * 2
	if next.Heuristic() != -2 {
		t.Errorf("expected heuristic -2 after move, got %d", next.Heuristic())
	}
}

func TestNextNeeded(t *testing.T) {
	p := NewPosition(Layout{Foundations: clubsOnly()})

	if next, ok := p.NextNeeded(cards.Clubs); !ok || next != c("AC") {
		t.Errorf("NextNeeded(Clubs) = %v, %v; expected AC", next, ok)
	}
	if _, ok := p.NextNeeded(cards.Spades); ok {
		t.Error("complete foundation should need nothing")
	}
}
