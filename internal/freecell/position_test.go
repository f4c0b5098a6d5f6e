package freecell

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/freecell/internal/cards"
)

func c(s string) cards.Card {
	return cards.MustParse(s)
}

func pile(codes ...string) []cards.Card {
	out := make([]cards.Card, len(codes))
	for i, code := range codes {
		out[i] = c(code)
	}
	return out
}

// fullFoundation returns Ace..King of suit s.
func fullFoundation(s cards.Suit) []cards.Card {
	return foundationTo(s, cards.King)
}

func foundationTo(s cards.Suit, top cards.Rank) []cards.Card {
	out := make([]cards.Card, 0, top)
	for r := cards.Ace; r <= top; r++ {
		out = append(out, cards.New(r, s))
	}
	return out
}

func dealSeed(t *testing.T, seed int64, freeCells int) *Position {
	t.Helper()
	p, err := Deal(cards.ShuffledDeck(seed), freeCells)
	if err != nil {
		t.Fatalf("Deal() failed: %v", err)
	}
	return p
}

func TestDealLayout(t *testing.T) {
	p := dealSeed(t, 1, 4)

	piles := p.Piles()
	if len(piles) != NumPiles {
		t.Fatalf("expected %d piles, got %d", NumPiles, len(piles))
	}
	want := []int{7, 7, 7, 7, 6, 6, 6, 6}
	for i, pl := range piles {
		if len(pl) != want[i] {
			t.Errorf("pile %d has %d cards, expected %d", i, len(pl), want[i])
		}
	}
	if p.NumFreeCells() != 4 {
		t.Errorf("expected 4 free cells, got %d", p.NumFreeCells())
	}
	if !p.Conserved() {
		t.Error("fresh deal should hold all 52 cards exactly once")
	}
	if p.PathLen() != 0 {
		t.Errorf("fresh deal should have an empty path, got %d moves", p.PathLen())
	}
}

func TestDealRejectsShortDeck(t *testing.T) {
	if _, err := Deal(cards.NewDeck()[:51], 4); err == nil {
		t.Error("expected error for a 51-card deck")
	}
	if _, err := Deal(cards.NewDeck(), -1); err == nil {
		t.Error("expected error for negative free cells")
	}
}

func TestRandomPlayConservesCards(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for seed := int64(1); seed <= 5; seed++ {
		p := dealSeed(t, seed, 4)
		for step := 0; step < 200; step++ {
			moves := p.LegalMoves()
			if len(moves) == 0 {
				break
			}
			m := moves[rng.Intn(len(moves))]
			next := p.Apply(m)

			if !next.Conserved() {
				t.Fatalf("seed %d step %d: cards not conserved after %v", seed, step, m)
			}
			checkFoundations(t, next)
			if next.NumFreeCells() != 4 {
				t.Fatalf("free cell count changed to %d", next.NumFreeCells())
			}
			if !p.Conserved() {
				t.Fatalf("Apply modified its receiver")
			}
			p = next
		}
	}
}

func checkFoundations(t *testing.T, p *Position) {
	t.Helper()
	for _, s := range cards.AllSuits {
		for i, card := range p.Foundation(s) {
			if card.Suit != s || int(card.Rank) != i+1 {
				t.Fatalf("foundation %s not contiguous: %v", s, p.Foundation(s))
			}
		}
	}
}

func TestLegalMovesOrder(t *testing.T) {
	p := NewPosition(Layout{
		FreeCells: []cards.Card{cards.NoCard, c("AS")},
		Piles:     [][]cards.Card{pile("7C"), pile("6H"), {}},
	})

	want := []string{
		"7C from pile #1 to pile #3",
		"7C from pile #1 to freecell #1",
		"6H from pile #2 to pile #1",
		"6H from pile #2 to pile #3",
		"6H from pile #2 to freecell #1",
		"AS from freecell #2 to foundation #S",
	}

	moves := p.LegalMoves()
	if len(moves) != len(want) {
		t.Fatalf("expected %d moves, got %d: %v", len(want), len(moves), moves)
	}
	for i, m := range moves {
		if m.String() != want[i] {
			t.Errorf("move %d = %q, expected %q", i, m.String(), want[i])
		}
	}
}

func TestFoundationMoveIsExclusive(t *testing.T) {
	// AH could also go to the empty pile or free cell, but only the
	// foundation move is listed for it
	p := NewPosition(Layout{
		FreeCells: make([]cards.Card, 2),
		Piles:     [][]cards.Card{pile("9S", "AH"), {}},
	})

	var forAce []Move
	for _, m := range p.LegalMoves() {
		if m.Card == c("AH") {
			forAce = append(forAce, m)
		}
	}
	if len(forAce) != 1 || !forAce[0].ToFoundation() {
		t.Errorf("expected a single foundation move for AH, got %v", forAce)
	}
}

func TestLegalMovesRespectRules(t *testing.T) {
	p := dealSeed(t, 11, 2)
	for step := 0; step < 60; step++ {
		moves := p.LegalMoves()
		if len(moves) == 0 {
			break
		}
		for _, m := range moves {
			switch m.To.Kind {
			case KindPile:
				if !m.Card.CanStackOnTableau(p.PileTop(m.To.Index)) {
					t.Fatalf("illegal tableau move %v", m)
				}
			case KindFoundation:
				if !m.Card.CanStackOnFoundation(p.FoundationTop(m.Card.Suit)) {
					t.Fatalf("illegal foundation move %v", m)
				}
			case KindFreeCell:
				if !p.FreeCells()[m.To.Index].IsNone() {
					t.Fatalf("move into occupied free cell %v", m)
				}
			}
		}
		p = p.Apply(moves[step%len(moves)])
	}
}

func TestApplyCompactsPile(t *testing.T) {
	p := NewPosition(Layout{
		FreeCells: make([]cards.Card, 1),
		Piles:     [][]cards.Card{pile("9S", "4D"), pile("5C")},
	})

	next := p.Apply(Move{From: Pile(0), To: Pile(1), Card: c("4D")})

	piles := next.Piles()
	if len(piles[0]) != 1 || piles[0][0] != c("9S") {
		t.Errorf("origin pile = %v, expected [9S]", piles[0])
	}
	if len(piles[1]) != 2 || piles[1][1] != c("4D") {
		t.Errorf("destination pile = %v, expected [5C 4D]", piles[1])
	}
	if next.PathLen() != 1 {
		t.Errorf("expected path of 1 move, got %d", next.PathLen())
	}

	// Receiver untouched
	if len(p.Piles()[0]) != 2 {
		t.Error("Apply modified the original position")
	}
}

func TestApplyIgnoresMissingOriginCard(t *testing.T) {
	p := NewPosition(Layout{
		FreeCells: make([]cards.Card, 1),
		Piles:     [][]cards.Card{pile("9S"), {}},
	})

	// 4D is not in pile 0; removal is skipped and the card still lands
	next := p.Apply(Move{From: Pile(0), To: FreeCell(0), Card: c("4D")})
	if got := next.Piles()[0]; len(got) != 1 {
		t.Errorf("pile should be unchanged, got %v", got)
	}
	if next.FreeCells()[0] != c("4D") {
		t.Errorf("free cell = %v, expected 4D", next.FreeCells()[0])
	}
}

func TestApplyFoundationGuard(t *testing.T) {
	p := NewPosition(Layout{
		Foundations: [cards.NumSuits][]cards.Card{cards.Hearts: pile("AH")},
		FreeCells:   []cards.Card{c("AH")},
		Piles:       [][]cards.Card{{}},
	})

	next := p.Apply(Move{From: FreeCell(0), To: Foundation(cards.Hearts), Card: c("AH")})
	if got := len(next.Foundation(cards.Hearts)); got != 1 {
		t.Errorf("pushing the current top should be a no-op, foundation has %d cards", got)
	}
}

func TestIsGoal(t *testing.T) {
	var done [cards.NumSuits][]cards.Card
	for _, s := range cards.AllSuits {
		done[s] = fullFoundation(s)
	}

	goal := NewPosition(Layout{Foundations: done, FreeCells: make([]cards.Card, 4), Piles: make([][]cards.Card, NumPiles)})
	if !goal.IsGoal() {
		t.Error("all foundations complete should be the goal")
	}

	almost := done
	almost[cards.Spades] = foundationTo(cards.Spades, cards.Queen)

	inCell := NewPosition(Layout{Foundations: almost, FreeCells: []cards.Card{c("KS")}, Piles: make([][]cards.Card, NumPiles)})
	if inCell.IsGoal() {
		t.Error("a card in a free cell is not the goal")
	}

	inPile := NewPosition(Layout{Foundations: almost, FreeCells: make([]cards.Card, 4), Piles: [][]cards.Card{pile("KS")}})
	if inPile.IsGoal() {
		t.Error("a card in a pile is not the goal")
	}

	if !inPile.Apply(inPile.LegalMoves()[0]).IsGoal() {
		t.Error("playing the last king should reach the goal")
	}
}

func TestIsDeadEnd(t *testing.T) {
	p := NewPosition(Layout{Piles: [][]cards.Card{pile("5C"), pile("5S")}})
	if !p.IsDeadEnd() {
		t.Errorf("expected dead end, got moves %v", p.LegalMoves())
	}

	withCell := NewPosition(Layout{FreeCells: make([]cards.Card, 1), Piles: [][]cards.Card{pile("5C"), pile("5S")}})
	if withCell.IsDeadEnd() {
		t.Error("an empty free cell always offers a move")
	}
}

func TestIdentityIgnoresFreeCells(t *testing.T) {
	base := Layout{
		FreeCells: []cards.Card{c("3H"), cards.NoCard},
		Piles:     [][]cards.Card{pile("9S", "4D"), pile("5C")},
	}
	moved := Layout{
		FreeCells: []cards.Card{cards.NoCard, c("3H")},
		Piles:     base.Piles,
	}
	empty := Layout{
		FreeCells: make([]cards.Card, 2),
		Piles:     base.Piles,
	}

	id := NewPosition(base).Identity()
	if NewPosition(moved).Identity() != id || NewPosition(empty).Identity() != id {
		t.Error("identity should not depend on free cell contents")
	}
	if id != "9S4D;5C;;;;;" {
		t.Errorf("Identity() = %q", id)
	}

	other := NewPosition(Layout{FreeCells: make([]cards.Card, 2), Piles: [][]cards.Card{pile("9S"), pile("5C", "4D")}})
	if other.Identity() == id {
		t.Error("different piles should give a different identity")
	}
}

func TestReplayReproducesIdentity(t *testing.T) {
	deal := dealSeed(t, 3, 4)
	p := deal
	for step := 0; step < 40; step++ {
		moves := p.LegalMoves()
		if len(moves) == 0 {
			break
		}
		p = p.Apply(moves[(step*7)%len(moves)])
	}

	replayed := Replay(deal, p.Path(), false)
	if replayed.Identity() != p.Identity() {
		t.Error("replaying the path should reproduce the identity")
	}
	if replayed.PathKey() != p.PathKey() {
		t.Error("replaying the path should reproduce the path key")
	}
	if replayed.Heuristic() != p.Heuristic() {
		t.Errorf("heuristic %d != %d after replay", replayed.Heuristic(), p.Heuristic())
	}
}

func TestReplayCollapsesDuplicates(t *testing.T) {
	deal := NewPosition(Layout{
		FreeCells: make([]cards.Card, 2),
		Piles:     [][]cards.Card{pile("9S", "4D"), pile("5C")},
	})
	m := Move{From: Pile(0), To: Pile(1), Card: c("4D")}

	got := Replay(deal, []Move{m, m}, true)
	if got.PathLen() != 1 {
		t.Errorf("expected duplicate move to collapse, path has %d moves", got.PathLen())
	}
	if got.Identity() != deal.Apply(m).Identity() {
		t.Error("collapsed replay should match a single application")
	}
}

func TestPathKeyDependsOnOrder(t *testing.T) {
	deal := NewPosition(Layout{
		FreeCells: make([]cards.Card, 2),
		Piles:     [][]cards.Card{pile("9S"), pile("8D")},
	})
	a := Move{From: Pile(0), To: FreeCell(0), Card: c("9S")}
	b := Move{From: Pile(1), To: FreeCell(1), Card: c("8D")}

	ab := deal.Apply(a).Apply(b)
	ba := deal.Apply(b).Apply(a)
	if ab.PathKey() == ba.PathKey() {
		t.Error("different move orders should give different path keys")
	}
	if ab.Identity() != ba.Identity() {
		t.Error("transposed move orders should reach the same identity")
	}
	if deal.Apply(a).PathKey() != deal.Apply(a).PathKey() {
		t.Error("path key should be deterministic")
	}
}
