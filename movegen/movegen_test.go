package movegen

import (
	"os"
	"slices"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/shenzhen/card"
	"github.com/domino14/shenzhen/deal"
	"github.com/domino14/shenzhen/game"
	"github.com/domino14/shenzhen/move"
	"github.com/domino14/shenzhen/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func contains(plays []move.Move, m move.Move) bool {
	for _, p := range plays {
		if p == m {
			return true
		}
	}
	return false
}

func TestGenSimple(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustPosition([]string{"R5", "G4"}, "", [3]int{})
	gen := NewGenerator()
	plays := gen.GenAll(g)
	// R5: six empty stacks and a slot. G4: onto R5, six empty stacks and a
	// slot.
	is.Equal(len(plays), 15)
	is.True(contains(plays, move.NewStackMove(move.Tableau(1, 0), 0)))
	is.True(!contains(plays, move.NewStackMove(move.Tableau(0, 0), 1)))
	is.Equal(len(gen.Plays()), 15)

	gen.SetSkipEmptyTransfers(true)
	plays = gen.GenAll(g)
	is.Equal(len(plays), 3)
	for _, p := range plays {
		if p.Action() == move.MoveTypeToStack {
			is.Equal(p.ToStack(), 0)
		}
	}
}

func TestGenDiscardFromStacksAndSlot(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustPosition([]string{"G5 R0", "R0", "B3 R0"}, "R0 B7", [3]int{})
	gen := NewGenerator()
	plays := gen.GenAll(g)
	d := move.NewDiscardMove(card.Red)
	is.True(contains(plays, d))
	is.True(!contains(plays, move.NewDiscardMove(card.Green)))

	before := len(g.Slots())
	is.NoErr(g.PlayMove(d))
	is.Equal(len(g.Slots()), before)
	is.Equal(g.Markers(), 1)
	is.True(slices.Contains(g.Slots(), card.New(card.Black, 7)))
	is.Equal(g.TableauCount(), 2)
}

func TestGenNoDiscardWhenSlotsFull(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustPosition([]string{"G0", "G0", "G0", "G0"}, "R5 R6 R7", [3]int{})
	plays := NewGenerator().GenAll(g)
	is.True(!contains(plays, move.NewDiscardMove(card.Green)))
	for _, p := range plays {
		is.True(p.Action() != move.MoveTypeToFreeSlot)
	}
}

func TestGenLongRunStaysOnTableau(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustPosition([]string{"B9 R5 G4", "B6", "", "", "", "", "", "G2"},
		"", [3]int{3, 1, 0})
	plays := NewGenerator().GenAll(g)
	is.True(contains(plays, move.NewStackMove(move.Tableau(0, 1), 1)))
	for _, p := range plays {
		if p.From() == move.Tableau(0, 1) {
			is.Equal(p.Action(), move.MoveTypeToStack)
		}
	}
	// G4 alone can go to a slot but not home yet; G2 can.
	is.True(contains(plays, move.NewFreeSlotMove(move.Tableau(0, 2))))
	is.True(!contains(plays, move.NewFoundationMove(move.Tableau(0, 2))))
	is.True(contains(plays, move.NewFoundationMove(move.Tableau(7, 0))))
	// B9 is buried under a run, so nothing starts there.
	for _, p := range plays {
		is.True(p.From() != move.Tableau(0, 0))
	}
}

func TestGenFromSlots(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustPosition([]string{"B7", "G0"}, "R6 G1 B#", [3]int{})
	plays := NewGenerator().GenAll(g)
	is.True(contains(plays, move.NewStackMove(move.FreeSlot(0), 0)))
	is.True(!contains(plays, move.NewStackMove(move.FreeSlot(0), 1)))
	is.True(contains(plays, move.NewFoundationMove(move.FreeSlot(1))))
	for _, p := range plays {
		is.True(p.From() != move.FreeSlot(2))
	}
}

func TestGenNeverMovesRose(t *testing.T) {
	is := is.New(t)
	g := testhelpers.MustPosition([]string{"R5 X", "X"}, "", [3]int{})
	plays := NewGenerator().GenAll(g)
	for _, p := range plays {
		is.True(p.From().Kind != move.SourceTableau || p.From().Index > 1)
	}
}

// Every generated action must apply cleanly, and the board must keep all its
// cards, along random walks through real deals.
func TestRandomWalksStayLegal(t *testing.T) {
	is := is.New(t)
	gen := NewGenerator()
	for seed := uint64(0); seed < 10; seed++ {
		g, err := game.FromGrid(deal.Seeded(seed))
		is.NoErr(err)
		g.AutoResolve()
		rng := deal.SeededRNG(seed + 1000)
		for step := 0; step < 150; step++ {
			plays := gen.GenAll(g)
			if len(plays) == 0 {
				break
			}
			for _, p := range plays {
				c := g.Copy()
				is.NoErr(c.PlayMove(p))
				c.AutoResolve()
				is.NoErr(c.ConservationCheck())
				once := c.Copy()
				is.Equal(c.AutoResolve(), 0)
				is.True(c.Equal(once))
			}
			pick := plays[rng.Intn(len(plays))]
			is.NoErr(g.PlayMove(pick))
			g.AutoResolve()
			if g.IsWon() {
				break
			}
		}
	}
}
