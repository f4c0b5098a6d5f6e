// Package cards provides the playing card value type and the deck supplier
// used to deal FreeCell games.
package cards

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit represents one of the four card suits.
type Suit uint8

// Suits in foundation order. The order is significant: positions iterate
// foundations and build their identity keys in this sequence.
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of suits in a standard deck.
const NumSuits = 4

// AllSuits lists every suit in foundation order.
var AllSuits = [NumSuits]Suit{Clubs, Diamonds, Hearts, Spades}

// Letter returns the single-letter code of the suit (C, D, H, S).
func (s Suit) Letter() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// String returns the suit name.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// Red reports whether the suit is red (Diamonds, Hearts).
func (s Suit) Red() bool {
	return s == Diamonds || s == Hearts
}

// ParseSuit parses a suit letter, case-insensitively.
func ParseSuit(s string) (Suit, bool) {
	switch strings.ToUpper(s) {
	case "C":
		return Clubs, true
	case "D":
		return Diamonds, true
	case "H":
		return Hearts, true
	case "S":
		return Spades, true
	}
	return 0, false
}

// Rank is a card rank from Ace (1) to King (13).
type Rank uint8

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// String returns the rank as used in card codes (A, 2..10, J, Q, K).
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return strconv.Itoa(int(r))
}

// Card is an immutable rank and suit pair. The zero value is NoCard.
type Card struct {
	Rank Rank
	Suit Suit
}

// NoCard marks an absent card: an empty pile top, free cell or foundation.
var NoCard = Card{}

// New creates a card.
func New(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// IsNone reports whether c is NoCard.
func (c Card) IsNone() bool {
	return c.Rank == 0
}

// String returns the card code, e.g. "AS" or "10H".
func (c Card) String() string {
	if c.IsNone() {
		return ""
	}
	return c.Rank.String() + c.Suit.Letter()
}

// Key returns the numeric code used in position identities, e.g. "1S".
func (c Card) Key() string {
	return strconv.Itoa(int(c.Rank)) + c.Suit.Letter()
}

// tableauPairs lists the suit pairs (top of pile, moving card) allowed to
// stack on the tableau.
var tableauPairs = map[[2]Suit]bool{
	{Clubs, Diamonds}:  true,
	{Diamonds, Clubs}:  true,
	{Clubs, Hearts}:    true,
	{Hearts, Clubs}:    true,
	{Spades, Diamonds}: true,
	{Diamonds, Spades}: true,
	{Spades, Hearts}:   true,
	{Hearts, Spades}:   true,
}

// CanStackOnTableau reports whether c may be placed on a pile whose exposed
// card is top. An empty pile (top is NoCard) accepts any card.
func (c Card) CanStackOnTableau(top Card) bool {
	if top.IsNone() {
		return true
	}
	if top.Rank != c.Rank+1 {
		return false
	}
	return tableauPairs[[2]Suit{top.Suit, c.Suit}]
}

// CanStackOnFoundation reports whether c may be placed on a foundation whose
// top card is top (NoCard for an empty foundation).
func (c Card) CanStackOnFoundation(top Card) bool {
	if top.IsNone() {
		return c.Rank == Ace
	}
	return c.Suit == top.Suit && c.Rank == top.Rank+1
}

// Parse parses a card code such as "AS", "10h" or "qd".
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return NoCard, fmt.Errorf("cards: invalid card %q", s)
	}

	suit, ok := ParseSuit(s[len(s)-1:])
	if !ok {
		return NoCard, fmt.Errorf("cards: invalid suit in %q", s)
	}

	var rank Rank
	switch r := strings.ToUpper(s[:len(s)-1]); r {
	case "A":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		n, err := strconv.Atoi(r)
		if err != nil || n < 1 || n > int(King) {
			return NoCard, fmt.Errorf("cards: invalid rank in %q", s)
		}
		rank = Rank(n)
	}

	return New(rank, suit), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// static tables.
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}
