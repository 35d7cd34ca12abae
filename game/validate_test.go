package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/shenzhen/card"
)

func TestFromGridFullDeck(t *testing.T) {
	is := is.New(t)
	rows := deckGrid()
	g, err := FromGrid(rows)
	is.NoErr(err)
	is.Equal(g.FoundationSum(), 0)
	is.Equal(g.TableauCount(), card.DeckSize)
	// first row at the bottom, last row on top.
	for i := 0; i < card.StackCount; i++ {
		is.Equal(g.Stack(i)[0], rows[0][i])
		top, ok := g.Top(i)
		is.True(ok)
		is.Equal(top, rows[card.InitialRows-1][i])
	}
}

func TestFromGridAlreadyResolved(t *testing.T) {
	is := is.New(t)
	rows := blank(deckGrid(), card.New(card.Red, 1), card.New(card.Red, 2),
		card.New(card.Black, 1), card.RoseCard)
	g, err := FromGrid(rows)
	is.NoErr(err)
	is.Equal(g.Foundation(card.Red), 2)
	is.Equal(g.Foundation(card.Green), 0)
	is.Equal(g.Foundation(card.Black), 1)
	is.NoErr(g.ConservationCheck())
}

func TestFromGridGapInMissingCards(t *testing.T) {
	is := is.New(t)
	rows := blank(deckGrid(), card.New(card.Green, 2))
	_, err := FromGrid(rows)
	is.True(errors.Is(err, ErrUnexpectedMissing))
}

func TestFromGridDuplicate(t *testing.T) {
	is := is.New(t)
	rows := deckGrid()
	rows[0][0] = card.New(card.Black, 5)
	_, err := FromGrid(rows)
	// the red token it replaced goes missing too, but the duplicate is
	// seen first.
	is.True(errors.Is(err, ErrDuplicateCard))

	rows = deckGrid()
	rows = append(rows, []card.Card{card.RoseCard})
	_, err = FromGrid(rows)
	is.True(errors.Is(err, ErrDuplicateCard))
}

func TestFromGridMissingToken(t *testing.T) {
	is := is.New(t)
	rows := deckGrid()
	for r := range rows {
		for i := range rows[r] {
			if rows[r][i] == card.Token(card.Green) {
				rows[r][i] = card.Unrecognized
				_, err := FromGrid(rows)
				is.True(errors.Is(err, ErrMissingToken))
				return
			}
		}
	}
	t.Fatal("no green token in the deck")
}

func TestFromGridBadShape(t *testing.T) {
	is := is.New(t)
	rows := deckGrid()
	rows[0] = append(rows[0], card.New(card.Red, 3))
	_, err := FromGrid(rows)
	is.True(errors.Is(err, ErrBadLayout))

	rows = deckGrid()
	rows[1][1] = card.DiscardMarker(card.Red)
	_, err = FromGrid(rows)
	is.True(errors.Is(err, ErrBadLayout))
}

func TestValidateRespectsFoundation(t *testing.T) {
	is := is.New(t)
	// A position mid-game: foundation already at 3 for red, so R4 is the
	// only red card that may be missing.
	g := NewGameState()
	g.SetFoundation(card.Red, 3)
	for _, c := range card.FullDeck() {
		if c.Suit == card.Red && c.Value >= 1 && c.Value <= 4 {
			continue
		}
		g.PushCard(0, c)
	}
	is.NoErr(g.Validate())
	is.Equal(g.Foundation(card.Red), 4)

	h := NewGameState()
	h.SetFoundation(card.Red, 3)
	for _, c := range card.FullDeck() {
		h.PushCard(1, c)
	}
	is.True(errors.Is(h.Validate(), ErrDuplicateCard))
}
