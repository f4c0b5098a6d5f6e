package cards

import "math/rand"

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// NewDeck returns the 52 cards in rank-major order (all aces, then all
// twos, and so on).
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for r := Ace; r <= King; r++ {
		for _, s := range AllSuits {
			deck = append(deck, New(r, s))
		}
	}
	return deck
}

// Shuffle permutes the deck in place using rng.
func Shuffle(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// ShuffledDeck returns a new deck shuffled with the given seed.
// The same seed always yields the same order.
func ShuffledDeck(seed int64) []Card {
	deck := NewDeck()
	Shuffle(deck, rand.New(rand.NewSource(seed)))
	return deck
}
