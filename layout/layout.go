// Package layout reads and writes starting layouts: the grid of cards as
// dealt, row by row, before any move is made.
//
// The compact form puts rows between slashes and cards between spaces:
//
//	R5 G0 X B9 ? G3 R0 B1/G7 ...
//
// A "?" or "." is a cell whose card was already gone when the layout was
// captured.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/shenzhen/card"
	"github.com/domino14/shenzhen/game"
)

var ErrBadLayout = errors.New("bad layout")

// Parse reads the compact form into a grid.
func Parse(s string) ([][]card.Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadLayout)
	}
	rows := strings.Split(s, "/")
	grid := make([][]card.Card, 0, len(rows))
	for i, r := range rows {
		row, err := parseRow(strings.Fields(r))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrBadLayout, i, err)
		}
		grid = append(grid, row)
	}
	return grid, nil
}

func parseRow(cells []string) ([]card.Card, error) {
	if len(cells) > card.StackCount {
		return nil, fmt.Errorf("%d cells, at most %d allowed", len(cells), card.StackCount)
	}
	row := make([]card.Card, len(cells))
	for j, f := range cells {
		c, err := card.ParseCard(f)
		if err != nil {
			return nil, err
		}
		if c.IsMarker() {
			return nil, fmt.Errorf("%v can't be dealt", c)
		}
		row[j] = c
	}
	return row, nil
}

// Encode writes a grid in the compact form.
func Encode(grid [][]card.Card) string {
	var sb strings.Builder
	for i, row := range grid {
		if i > 0 {
			sb.WriteString("/")
		}
		for j, c := range row {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(c.String())
		}
	}
	return sb.String()
}

// ToGameState parses the compact form and builds the validated position.
func ToGameState(s string) (*game.GameState, error) {
	grid, err := Parse(s)
	if err != nil {
		return nil, err
	}
	g, err := game.FromGrid(grid)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("tableau", g.TableauCount()).
		Int("foundations", g.FoundationSum()).
		Msg("layout-loaded")
	return g, nil
}
