package freecell

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/freecell/internal/cards"
)

// Kind identifies the type of a board location.
type Kind uint8

const (
	KindPile Kind = iota
	KindFreeCell
	KindFoundation
)

// String returns the location kind as used in move notation.
func (k Kind) String() string {
	switch k {
	case KindPile:
		return "pile"
	case KindFreeCell:
		return "freecell"
	case KindFoundation:
		return "foundation"
	default:
		return "unknown"
	}
}

// Location is a place a card can be taken from or moved to.
// Index is meaningful for piles and free cells, Suit for foundations.
type Location struct {
	Kind  Kind
	Index int
	Suit  cards.Suit
}

// Pile returns the location of the tableau pile at index i.
func Pile(i int) Location {
	return Location{Kind: KindPile, Index: i}
}

// FreeCell returns the location of the free cell at index i.
func FreeCell(i int) Location {
	return Location{Kind: KindFreeCell, Index: i}
}

// Foundation returns the location of the foundation for suit s.
func Foundation(s cards.Suit) Location {
	return Location{Kind: KindFoundation, Suit: s}
}

// String renders the location as "<kind> #<n>" with a 1-based index, or the
// suit letter for foundations.
func (l Location) String() string {
	if l.Kind == KindFoundation {
		return l.Kind.String() + " #" + l.Suit.Letter()
	}
	return l.Kind.String() + " #" + strconv.Itoa(l.Index+1)
}

// Move relocates a single card. Moves are comparable values; two moves are
// equal when they move the same card between the same locations.
type Move struct {
	From Location
	To   Location
	Card cards.Card
}

// ToFoundation reports whether the move advances a foundation.
func (m Move) ToFoundation() bool {
	return m.To.Kind == KindFoundation
}

// BetweenFreeCells reports whether the move only shuffles a card from one
// free cell to another.
func (m Move) BetweenFreeCells() bool {
	return m.From.Kind == KindFreeCell && m.To.Kind == KindFreeCell
}

// String renders the move, e.g. "AS from pile #1 to foundation #S".
func (m Move) String() string {
	return m.Card.String() + " from " + m.From.String() + " to " + m.To.String()
}

// ParseMove parses a move in the notation produced by Move.String.
func ParseMove(s string) (Move, error) {
	var cardStr, fromKind, fromIdx, toKind, toIdx string
	if _, err := fmt.Sscanf(s, "%s from %s #%s to %s #%s", &cardStr, &fromKind, &fromIdx, &toKind, &toIdx); err != nil {
		return Move{}, fmt.Errorf("freecell: malformed move %q: %w", s, err)
	}

	card, err := cards.Parse(cardStr)
	if err != nil {
		return Move{}, fmt.Errorf("freecell: malformed move %q: %w", s, err)
	}

	from, err := parseLocation(fromKind, fromIdx)
	if err != nil {
		return Move{}, fmt.Errorf("freecell: malformed move %q: %w", s, err)
	}
	if from.Kind == KindFoundation {
		return Move{}, fmt.Errorf("freecell: malformed move %q: cannot move from a foundation", s)
	}

	to, err := parseLocation(toKind, toIdx)
	if err != nil {
		return Move{}, fmt.Errorf("freecell: malformed move %q: %w", s, err)
	}

	return Move{From: from, To: to, Card: card}, nil
}

func parseLocation(kind, idx string) (Location, error) {
	switch kind {
	case "foundation":
		suit, ok := cards.ParseSuit(idx)
		if !ok {
			return Location{}, fmt.Errorf("invalid foundation %q", idx)
		}
		return Foundation(suit), nil
	case "pile", "freecell":
		n, err := strconv.Atoi(idx)
		if err != nil || n < 1 {
			return Location{}, fmt.Errorf("invalid %s index %q", kind, idx)
		}
		if kind == "pile" {
			return Pile(n - 1), nil
		}
		return FreeCell(n - 1), nil
	}
	return Location{}, fmt.Errorf("unknown location %q", kind)
}
