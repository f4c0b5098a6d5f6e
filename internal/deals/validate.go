package deals

import (
	"fmt"

	"github.com/vovakirdan/freecell/internal/cards"
	"github.com/vovakirdan/freecell/internal/freecell"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a layout for consistency.
// Checks:
//   - The board holds at least one card
//   - No card appears twice
//   - Foundations are built up from the ace in one suit
func Validate(l freecell.Layout) error {
	p := freecell.NewPosition(l)
	all := p.Cards()

	if len(all) == 0 {
		return ValidationError{Code: "EMPTY_DEAL", Message: "deal holds no cards"}
	}

	seen := make(map[cards.Card]bool, len(all))
	for _, c := range all {
		if seen[c] {
			return ValidationError{
				Code:    "DUPLICATE_CARD",
				Message: fmt.Sprintf("card %s appears more than once", c),
			}
		}
		seen[c] = true
	}

	for _, s := range cards.AllSuits {
		for i, c := range l.Foundations[s] {
			if c.Suit != s || int(c.Rank) != i+1 {
				return ValidationError{
					Code:    "FOUNDATION_ORDER",
					Message: fmt.Sprintf("foundation %s has %s at position %d", s.Letter(), c, i+1),
				}
			}
		}
	}

	return nil
}
