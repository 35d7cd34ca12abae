package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/shenzhen/card"
	"github.com/domino14/shenzhen/move"
)

func TestFreshStatesDoNotShareContainers(t *testing.T) {
	is := is.New(t)
	a := NewGameState()
	b := NewGameState()
	a.PushCard(0, card.New(card.Red, 5))
	is.NoErr(a.AddToFreeSlot(card.New(card.Green, 3)))
	is.Equal(len(b.Stack(0)), 0)
	is.Equal(len(b.Slots()), 0)
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"R5 G4", "B5"}, "G3", [3]int{1, 0, 0})
	c := g.Copy()
	is.True(c.Equal(g))

	is.NoErr(c.PlayMove(move.NewStackMove(move.Tableau(0, 1), 1)))
	is.NoErr(c.PlayMove(move.NewFreeSlotMove(move.Tableau(0, 0))))
	c.PushCard(3, card.New(card.Black, 9))

	is.Equal(len(g.Stack(0)), 2)
	is.Equal(len(g.Stack(1)), 1)
	is.Equal(len(g.Stack(3)), 0)
	is.Equal(len(g.Slots()), 1)
	is.Equal(g.MovesTaken(), 0)
	is.Equal(c.MovesTaken(), 2)
	is.True(!c.Equal(g))
}

func TestEqualIgnoresSlotOrder(t *testing.T) {
	is := is.New(t)
	a := position(t, []string{"R5"}, "G3 B2", [3]int{})
	b := position(t, []string{"R5"}, "B2 G3", [3]int{})
	is.True(a.Equal(b))
	is.Equal(string(a.AppendKey(nil)), string(b.AppendKey(nil)))

	c := position(t, []string{"", "R5"}, "B2 G3", [3]int{})
	is.True(!a.Equal(c))
	is.True(string(a.AppendKey(nil)) != string(c.AppendKey(nil)))

	d := position(t, []string{"R5"}, "B2 G3", [3]int{0, 1, 0})
	is.True(!a.Equal(d))
}

func TestRoseIsResolved(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"X"}, "", [3]int{})
	n := g.AutoResolve()
	is.Equal(n, 1)
	is.Equal(len(g.Stack(0)), 0)
	is.Equal(g.FoundationSum(), 0)
	is.True(!g.IsWon())
}

func TestOneIsResolved(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"R1"}, "", [3]int{})
	is.Equal(g.AutoResolve(), 1)
	is.Equal(g.Foundation(card.Red), 1)
	is.Equal(len(g.Stack(0)), 0)
}

func TestResolveChainsDownAStack(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"G5 R2 X R1", "B1"}, "", [3]int{})
	is.Equal(g.AutoResolve(), 4)
	is.Equal(g.Foundation(card.Red), 2)
	is.Equal(g.Foundation(card.Black), 1)
	is.Equal(g.Stack(0), cards(t, "G5"))
}

func TestHighCardWaitsForOtherSuits(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"R3"}, "", [3]int{2, 2, 1})
	is.Equal(g.AutoResolve(), 0)
	is.Equal(g.Foundation(card.Red), 2)

	g.SetFoundation(card.Black, 2)
	is.Equal(g.AutoResolve(), 1)
	is.Equal(g.Foundation(card.Red), 3)
}

func TestTokensAreNotResolved(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"R0", "G0"}, "B0", [3]int{})
	is.Equal(g.AutoResolve(), 0)
	is.Equal(g.CardCount(), 3)
}

func TestSlotsResolveAfterStacks(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"B4 R1"}, "G1 R2 B3", [3]int{0, 0, 2})
	n := g.AutoResolve()
	// R1 leaves the stack first, then R2 and G1 from the slots. B3 would
	// need every foundation at 2 or more.
	is.Equal(n, 3)
	is.Equal(g.Foundation(card.Red), 2)
	is.Equal(g.Foundation(card.Green), 1)
	is.Equal(g.Foundation(card.Black), 2)
	is.Equal(g.Slots(), cards(t, "B3"))
	is.Equal(g.Stack(0), cards(t, "B4"))
}

func TestAutoResolveIdempotent(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"G5 R2 X R1", "B1", "B3 G2", "G1"}, "R3 B2", [3]int{})
	g.AutoResolve()
	once := g.Copy()
	is.Equal(g.AutoResolve(), 0)
	is.True(g.Equal(once))
}

func TestWonState(t *testing.T) {
	is := is.New(t)
	g := position(t, nil, "R# G# B#", [3]int{9, 9, 9})
	is.True(g.IsWon())
	is.NoErr(g.ConservationCheck())

	notYet := position(t, nil, "R# G# R9", [3]int{8, 9, 9})
	is.True(!notYet.IsWon())

	tokensLeft := position(t, []string{"B0", "B0", "B0", "B0"}, "R# G#", [3]int{9, 9, 9})
	is.True(!tokensLeft.IsWon())
}

func TestDiscardFromStacksAndSlot(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"R0", "G5 R0", "R0", "B3"}, "R0 B7", [3]int{})
	is.True(g.CanDiscard(card.Red))
	is.True(!g.CanDiscard(card.Green))

	is.NoErr(g.PlayMove(move.NewDiscardMove(card.Red)))
	is.Equal(len(g.Slots()), 2)
	is.Equal(g.Slots()[0], card.DiscardMarker(card.Red))
	is.Equal(g.Slots()[1], card.New(card.Black, 7))
	is.Equal(len(g.Stack(0)), 0)
	is.Equal(g.Stack(1), cards(t, "G5"))
	is.Equal(len(g.Stack(2)), 0)
	is.Equal(g.Markers(), 1)
}

func TestDiscardNeedsRoom(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"G0", "G0", "G0", "G0"}, "R5 R6 R7", [3]int{})
	is.True(!g.CanDiscard(card.Green))
	err := g.PlayMove(move.NewDiscardMove(card.Green))
	is.True(errors.Is(err, ErrIllegalMove))

	// a buried token doesn't count as visible.
	h := position(t, []string{"G0", "G0", "G0", "G0 B5"}, "", [3]int{})
	is.True(!h.CanDiscard(card.Green))

	free := position(t, []string{"G0", "G0", "G0", "G0"}, "R5", [3]int{})
	is.True(free.CanDiscard(card.Green))
	is.NoErr(free.PlayMove(move.NewDiscardMove(card.Green)))
	is.Equal(free.Slots(), cards(t, "R5 G#"))
	is.Equal(free.TableauCount(), 0)
}

func TestPlayRunOntoStack(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"B9 R5 G4 B3", "R6", "B6"}, "", [3]int{})
	is.NoErr(g.PlayMove(move.NewStackMove(move.Tableau(0, 1), 2)))
	is.Equal(g.Stack(0), cards(t, "B9"))
	is.Equal(g.Stack(2), cards(t, "B6 R5 G4 B3"))

	err := g.PlayMove(move.NewStackMove(move.Tableau(2, 1), 1))
	is.True(errors.Is(err, ErrIllegalMove)) // R5 on R6
	err = g.PlayMove(move.NewStackMove(move.Tableau(2, 2), 2))
	is.True(errors.Is(err, ErrIllegalMove)) // own stack
	err = g.PlayMove(move.NewStackMove(move.Tableau(0, 0), 1))
	is.True(errors.Is(err, ErrIllegalMove)) // B9 on R6
	is.Equal(g.MovesTaken(), 1)
}

func TestPlayToFoundationAndSlot(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"G4 R3", "B7 G2"}, "R6", [3]int{2, 1, 0})

	is.NoErr(g.PlayMove(move.NewFoundationMove(move.Tableau(0, 1))))
	is.Equal(g.Foundation(card.Red), 3)

	err := g.PlayMove(move.NewFoundationMove(move.FreeSlot(0)))
	is.True(errors.Is(err, ErrIllegalMove))

	is.NoErr(g.PlayMove(move.NewFreeSlotMove(move.Tableau(1, 1))))
	is.Equal(g.Slots(), cards(t, "R6 G2"))
	is.NoErr(g.PlayMove(move.NewFoundationMove(move.FreeSlot(1))))
	is.Equal(g.Foundation(card.Green), 2)
	is.Equal(g.Slots(), cards(t, "R6"))

	is.NoErr(g.PlayMove(move.NewStackMove(move.FreeSlot(0), 1)))
	is.Equal(g.Stack(1), cards(t, "B7 R6"))
	is.Equal(len(g.Slots()), 0)
}

func TestPlayRejectsBadSources(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"R5 G0", "X"}, "R#", [3]int{})
	for _, m := range []move.Move{
		move.NewStackMove(move.FreeSlot(0), 3),
		move.NewStackMove(move.FreeSlot(2), 3),
		move.NewStackMove(move.Tableau(0, 0), 3),
		move.NewFreeSlotMove(move.Tableau(1, 0)),
		move.NewFoundationMove(move.Tableau(1, 0)),
		move.NewStackMove(move.Tableau(9, 0), 3),
		move.NewStackMove(move.Tableau(0, 1), 9),
		move.NewFreeSlotMove(move.FreeSlot(0)),
	} {
		before := g.Copy()
		err := g.PlayMove(m)
		is.True(errors.Is(err, ErrIllegalMove))
		is.True(g.Equal(before))
	}
	is.NoErr(g.PlayMove(move.NewResolveMove(3)))
	is.Equal(g.MovesTaken(), 0)
}

func TestConservationCheck(t *testing.T) {
	is := is.New(t)
	g, err := FromGrid(deckGrid())
	is.NoErr(err)
	is.NoErr(g.ConservationCheck())

	g.PushCard(0, card.New(card.Red, 4))
	is.True(errors.Is(g.ConservationCheck(), ErrConservation))
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	g := position(t, []string{"R5 G4", "", "X"}, "B#", [3]int{3, 0, 1})
	s := g.ToDisplayText()
	is.True(strings.Contains(s, "slots: [B# -- --]"))
	is.True(strings.Contains(s, "R:3 G:0 B:1"))
	lines := strings.Split(strings.TrimSpace(s), "\n")
	is.Equal(len(lines), 4)
	is.True(strings.HasPrefix(strings.TrimSpace(lines[2]), "R5"))
}
