package core

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/freecell/internal/cards"
	"github.com/vovakirdan/freecell/internal/freecell"
)

// Board layout constants
const (
	columnWidth = 8                                 // "%4s%4s" per pile: card, padding, separator
	BoardWidth  = 1 + freecell.NumPiles*columnWidth // Leading "|" plus eight columns
	headerRows  = 6                                 // Title, free cells, foundations, rule, numbers, rule
)

// BoardSize returns the number of columns and rows DrawBoard uses for p.
// Many free cells widen the board past the pile columns.
func BoardSize(p *freecell.Position) (width, height int) {
	width = max(BoardWidth, len("Free Cells: ")+6*p.NumFreeCells())
	return width, headerRows + 2*tallestPile(p)
}

func tallestPile(p *freecell.Position) int {
	tallest := 0
	for _, pile := range p.Piles() {
		tallest = max(tallest, len(pile))
	}
	return tallest
}

// cardColor returns the color a card is drawn in.
func cardColor(c cards.Card) Color {
	if c.Suit.Red() {
		return ColorRed
	}
	return ColorBrightWhite
}

// DrawBoard draws p with its top-left corner at (x, y): the free cells and
// foundations on top, then the piles as columns separated by rules.
func DrawBoard(s *Screen, x, y int, p *freecell.Position) {
	s.DrawTextColor(x, y, "FreeCell Solitaire", ColorCyan)

	// Free cells
	col := s.DrawText(x, y+1, "Free Cells: ")
	for _, c := range p.FreeCells() {
		if c.IsNone() {
			col = s.DrawText(col, y+1, " [ ] ")
			continue
		}
		col = s.DrawText(col, y+1, " [")
		col = s.DrawTextColor(col, y+1, c.String(), cardColor(c))
		col = s.DrawText(col, y+1, "]")
	}

	// Foundations, shown by their top card
	col = s.DrawText(x, y+2, "Foundations: ")
	for _, suit := range cards.AllSuits {
		col = s.DrawTextColor(col, y+2, suit.Letter()+":", ColorGreen)
		top := p.FoundationTop(suit)
		if top.IsNone() {
			col = s.DrawText(col, y+2, "[ ] ")
			continue
		}
		col = s.DrawText(col, y+2, "[")
		col = s.DrawTextColor(col, y+2, top.String(), cardColor(top))
		col = s.DrawText(col, y+2, "] ")
	}

	// Pile numbers between two rules
	s.DrawHLine(x, y+3, BoardWidth, '-', ColorGray)
	s.DrawTextColor(x, y+4, "|", ColorGray)
	for i := 0; i < freecell.NumPiles; i++ {
		cx := x + 1 + i*columnWidth
		s.DrawTextColor(cx, y+4, fmt.Sprintf("%4d", i+1), ColorYellow)
		s.DrawTextColor(cx+4, y+4, "   |", ColorGray)
	}
	s.DrawHLine(x, y+5, BoardWidth, '-', ColorGray)

	// Piles, one card row followed by a rule
	piles := p.Piles()
	for row := 0; row < tallestPile(p); row++ {
		ry := y + headerRows + 2*row
		s.DrawTextColor(x, ry, "|", ColorGray)
		for i := 0; i < freecell.NumPiles; i++ {
			cx := x + 1 + i*columnWidth
			if i < len(piles) && row < len(piles[i]) {
				c := piles[i][row]
				s.DrawTextColor(cx, ry, fmt.Sprintf("%4s", c), cardColor(c))
			}
			s.DrawTextColor(cx+4, ry, "   |", ColorGray)
		}
		s.DrawHLine(x, ry+1, BoardWidth, '-', ColorGray)
	}
}

// BoardScreen returns a screen holding just the board of p.
func BoardScreen(p *freecell.Position) *Screen {
	s := NewScreen(BoardSize(p))
	DrawBoard(s, 0, 0, p)
	return s
}

// BoardText returns the board of p as plain text.
func BoardText(p *freecell.Position) string {
	return BoardScreen(p).String()
}

// FormatSolution writes a solution the way the command line prints it: the
// deal, the move count, then each numbered move. The board is drawn again
// after every renderEvery moves and after the last one. draw turns a board
// screen into text.
func FormatSolution(deal *freecell.Position, moves []freecell.Move, renderEvery int, draw func(*Screen) string) string {
	if renderEvery <= 0 {
		renderEvery = 10
	}

	var b strings.Builder
	b.WriteString("Initial State:\n")
	b.WriteString(draw(BoardScreen(deal)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Number of actions taken: %d\n", len(moves))
	b.WriteString("Actions taken:\n")

	cur := deal
	for i, m := range moves {
		cur = cur.Apply(m)
		fmt.Fprintf(&b, "%d. %s\n", i+1, m)
		if (i%renderEvery == 0 && i != 0) || i == len(moves)-1 {
			b.WriteString(draw(BoardScreen(cur)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
