// Package formats provides deal file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/freecell/internal/cards"
)

// YAMLDeal represents the YAML structure for a deal file.
//
// A deal is either fully laid out with piles, or generated from a seed when
// no piles are given. Foundations are written as their top card per suit.
type YAMLDeal struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name,omitempty"`
	Seed        *int64            `yaml:"seed,omitempty"`
	Cells       *int              `yaml:"cells,omitempty"`
	Foundations map[string]string `yaml:"foundations,omitempty"`
	FreeCells   []string          `yaml:"free_cells,omitempty"`
	Piles       [][]string        `yaml:"piles,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// Deal represents a parsed deal before validation.
type Deal struct {
	ID          string
	Name        string
	Seed        *int64
	Cells       int // -1 when the file does not say
	Foundations map[cards.Suit]cards.Card
	FreeCells   []cards.Card
	Piles       [][]cards.Card
	Metadata    map[string]string
}

// ParseYAML parses a YAML deal file. Unknown card codes are an error.
func ParseYAML(data []byte) (Deal, error) {
	var yd YAMLDeal
	if err := yaml.Unmarshal(data, &yd); err != nil {
		return Deal{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	cells := -1
	if yd.Cells != nil {
		if *yd.Cells < 0 {
			return Deal{}, fmt.Errorf("negative cells: %d", *yd.Cells)
		}
		cells = *yd.Cells
	}

	deal := Deal{
		ID:          yd.ID,
		Name:        yd.Name,
		Seed:        yd.Seed,
		Cells:       cells,
		Foundations: make(map[cards.Suit]cards.Card),
		Metadata:    yd.Metadata,
	}

	for key, code := range yd.Foundations {
		suit, ok := cards.ParseSuit(key)
		if !ok || len(key) != 1 {
			return Deal{}, fmt.Errorf("foundation %q: unknown suit", key)
		}
		top, err := cards.Parse(code)
		if err != nil {
			return Deal{}, fmt.Errorf("foundation %s: %w", key, err)
		}
		deal.Foundations[suit] = top
	}

	for _, code := range yd.FreeCells {
		c, err := cards.Parse(code)
		if err != nil {
			return Deal{}, fmt.Errorf("free cell: %w", err)
		}
		deal.FreeCells = append(deal.FreeCells, c)
	}

	for i, codes := range yd.Piles {
		pile := make([]cards.Card, 0, len(codes))
		for _, code := range codes {
			c, err := cards.Parse(code)
			if err != nil {
				return Deal{}, fmt.Errorf("pile %d: %w", i+1, err)
			}
			pile = append(pile, c)
		}
		deal.Piles = append(deal.Piles, pile)
	}

	return deal, nil
}

// EncodeYAML writes a deal in the same format ParseYAML reads. Empty free
// cells are dropped and the cell count is recorded instead.
func EncodeYAML(d Deal) ([]byte, error) {
	yd := YAMLDeal{
		ID:       d.ID,
		Name:     d.Name,
		Seed:     d.Seed,
		Metadata: d.Metadata,
	}
	if d.Cells >= 0 {
		cells := d.Cells
		yd.Cells = &cells
	}

	if len(d.Foundations) > 0 {
		yd.Foundations = make(map[string]string, len(d.Foundations))
		for suit, top := range d.Foundations {
			if top.IsNone() {
				continue
			}
			yd.Foundations[suit.Letter()] = top.String()
		}
	}
	for _, c := range d.FreeCells {
		if !c.IsNone() {
			yd.FreeCells = append(yd.FreeCells, c.String())
		}
	}
	for _, pile := range d.Piles {
		codes := make([]string, len(pile))
		for i, c := range pile {
			codes[i] = c.String()
		}
		yd.Piles = append(yd.Piles, codes)
	}

	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(yd); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return []byte(sb.String()), nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
