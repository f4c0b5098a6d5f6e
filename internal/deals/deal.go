// Package deals loads fixed FreeCell deals from files. A deal file either
// lays out the board card by card, which allows partial endgames with
// pre-filled foundations, or names a seed for a shuffled full deck.
package deals

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/freecell/internal/cards"
	"github.com/vovakirdan/freecell/internal/deals/formats"
	"github.com/vovakirdan/freecell/internal/freecell"
)

// Deal represents a validated deal ready to be played.
type Deal struct {
	ID       string
	Name     string
	Seed     *int64 // Set for shuffled deals
	Layout   freecell.Layout
	Metadata map[string]string
	FilePath string
}

// Position creates the starting position of the deal.
func (d *Deal) Position() *freecell.Position {
	return freecell.NewPosition(d.Layout)
}

// NumCards returns how many cards the deal holds.
func (d *Deal) NumCards() int {
	return len(d.Position().Cards())
}

// Complete reports whether the deal holds the full deck.
func (d *Deal) Complete() bool {
	return d.Position().Conserved()
}

// FromPosition describes a position as a deal, for example to record the
// starting board of a run.
func FromPosition(id string, p *freecell.Position, seed *int64) Deal {
	return Deal{ID: id, Seed: seed, Layout: p.Layout()}
}

// Parse parses and validates a deal from YAML data.
func Parse(data []byte) (Deal, error) {
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Deal{}, err
	}
	return build(parsed)
}

// Encode writes a deal as YAML. The full layout is always written, even for
// seeded deals, so the file does not depend on the shuffle.
func Encode(d Deal) ([]byte, error) {
	out := formats.Deal{
		ID:          d.ID,
		Name:        d.Name,
		Seed:        d.Seed,
		Cells:       len(d.Layout.FreeCells),
		Foundations: make(map[cards.Suit]cards.Card),
		FreeCells:   d.Layout.FreeCells,
		Piles:       d.Layout.Piles,
		Metadata:    d.Metadata,
	}
	for _, s := range cards.AllSuits {
		if f := d.Layout.Foundations[s]; len(f) > 0 {
			out.Foundations[s] = f[len(f)-1]
		}
	}
	return formats.EncodeYAML(out)
}

// build turns a parsed file into a deal and validates it.
func build(parsed formats.Deal) (Deal, error) {
	deal := Deal{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Seed:     parsed.Seed,
		Metadata: parsed.Metadata,
	}

	cells := parsed.Cells
	if cells < 0 {
		cells = max(freecell.DefaultFreeCells, len(parsed.FreeCells))
	}

	if len(parsed.Piles) == 0 {
		if parsed.Seed == nil {
			return Deal{}, ValidationError{Code: "EMPTY_DEAL", Message: "deal has neither piles nor a seed"}
		}
		if len(parsed.Foundations) > 0 || len(parsed.FreeCells) > 0 {
			return Deal{}, ValidationError{
				Code:    "SEED_WITH_LAYOUT",
				Message: "a seeded deal cannot also fill foundations or free cells",
			}
		}
		p, err := freecell.Deal(cards.ShuffledDeck(*parsed.Seed), cells)
		if err != nil {
			return Deal{}, err
		}
		deal.Layout = p.Layout()
		return deal, nil
	}

	layout, err := layoutFrom(parsed, cells)
	if err != nil {
		return Deal{}, err
	}
	if err := Validate(layout); err != nil {
		return Deal{}, err
	}
	deal.Layout = layout
	return deal, nil
}

func layoutFrom(parsed formats.Deal, cells int) (freecell.Layout, error) {
	var layout freecell.Layout

	for suit, top := range parsed.Foundations {
		if top.Suit != suit {
			return layout, ValidationError{
				Code:    "FOUNDATION_SUIT",
				Message: fmt.Sprintf("foundation %s topped by %s", suit.Letter(), top),
			}
		}
		for r := cards.Ace; r <= top.Rank; r++ {
			layout.Foundations[suit] = append(layout.Foundations[suit], cards.New(r, suit))
		}
	}

	if len(parsed.FreeCells) > cells {
		return layout, ValidationError{
			Code:    "TOO_MANY_FREE_CELLS",
			Message: fmt.Sprintf("%d cards for %d free cells", len(parsed.FreeCells), cells),
		}
	}
	layout.FreeCells = make([]cards.Card, cells)
	copy(layout.FreeCells, parsed.FreeCells)

	if len(parsed.Piles) > freecell.NumPiles {
		return layout, ValidationError{
			Code:    "TOO_MANY_PILES",
			Message: fmt.Sprintf("%d piles, at most %d allowed", len(parsed.Piles), freecell.NumPiles),
		}
	}
	layout.Piles = make([][]cards.Card, freecell.NumPiles)
	for i, pile := range parsed.Piles {
		layout.Piles[i] = slices.Clone(pile)
	}
	return layout, nil
}

// Loader handles loading deals from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new deal loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all deal files.
// Returns deals sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Deal, error) {
	var all []Deal

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(formats.FormatExtensions(), ext) {
			return nil
		}

		deal, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		all = append(all, deal)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("deals: walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})

	return all, nil
}

// LoadFile loads a single deal file. A file without an id takes its base
// name as the id.
func (l *Loader) LoadFile(path string) (Deal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Deal{}, fmt.Errorf("deals: reading file %s: %w", path, err)
	}

	deal, err := Parse(data)
	if err != nil {
		return Deal{}, fmt.Errorf("deals: parsing file %s: %w", path, err)
	}

	if deal.ID == "" {
		deal.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	deal.FilePath = path
	return deal, nil
}

// LoadByID loads a specific deal by ID.
func (l *Loader) LoadByID(id string) (Deal, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Deal{}, err
	}

	for _, d := range all {
		if d.ID == id {
			return d, nil
		}
	}

	return Deal{}, fmt.Errorf("deals: deal not found: %s", id)
}
