package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/shenzhen/card"
)

// FromGrid builds a state from a recognized layout. Each row is pushed onto
// the stacks in order, cell i of a row going onto stack i, so the first row
// ends up at the bottom. Unrecognized cells are skipped; Validate then works
// out which cards were already retired before the layout was captured.
func FromGrid(rows [][]card.Card) (*GameState, error) {
	g := NewGameState()
	for r, row := range rows {
		if len(row) > card.StackCount {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrBadLayout, r, len(row))
		}
		for i, c := range row {
			if !c.Recognized() {
				continue
			}
			if c.IsMarker() {
				return nil, fmt.Errorf("%w: discard marker at row %d col %d", ErrBadLayout, r, i)
			}
			g.PushCard(i, c)
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate reconciles the cards present on the board against a full deck.
// Numbered cards that are missing must be exactly the next cards due on
// their foundation, in which case the foundation is advanced past them.
// Anything else means the layout was misread, and is an error; no attempt
// is made to guess.
func (g *GameState) Validate() error {
	var present [card.NumMainSuits][card.MaxValue + 1]bool
	var tokens [card.NumMainSuits]int
	roses := 0

	check := func(c card.Card) error {
		switch {
		case c.IsRose():
			roses++
			if roses > 1 {
				return fmt.Errorf("%w: %v", ErrDuplicateCard, c)
			}
		case c.IsMarker():
			tokens[c.Suit.Index()] += card.TokensPerSuit
		case c.IsToken():
			tokens[c.Suit.Index()]++
		case c.IsNumbered():
			si := c.Suit.Index()
			if present[si][c.Value] {
				return fmt.Errorf("%w: %v", ErrDuplicateCard, c)
			}
			present[si][c.Value] = true
		default:
			return fmt.Errorf("%w: unexpected card %v", ErrBadLayout, c)
		}
		return nil
	}
	for i := range g.stacks {
		for _, c := range g.stacks[i] {
			if err := check(c); err != nil {
				return err
			}
		}
	}
	for _, c := range g.slots {
		if err := check(c); err != nil {
			return err
		}
	}

	for _, s := range card.MainSuits {
		si := s.Index()
		switch {
		case tokens[si] > card.TokensPerSuit:
			return fmt.Errorf("%w: %v", ErrDuplicateCard, card.Token(s))
		case tokens[si] < card.TokensPerSuit:
			return fmt.Errorf("%w: suit %v has %d", ErrMissingToken, s, tokens[si])
		}
		for v := 1; v <= g.foundations[si]; v++ {
			if present[si][v] {
				return fmt.Errorf("%w: %v is already on its foundation",
					ErrDuplicateCard, card.New(s, v))
			}
		}
		for v := g.foundations[si] + 1; v <= card.MaxValue; v++ {
			if present[si][v] {
				continue
			}
			if v != g.foundations[si]+1 {
				return fmt.Errorf("%w: %v not found, foundation is at %d",
					ErrUnexpectedMissing, card.New(s, v), g.foundations[si])
			}
			g.foundations[si]++
			log.Debug().Str("suit", s.String()).Int("value", v).
				Msg("card-assumed-retired")
		}
	}
	return nil
}
