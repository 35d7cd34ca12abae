package equity

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/shenzhen/move"
	"github.com/domino14/shenzhen/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestWonIsWinScore(t *testing.T) {
	is := is.New(t)
	ev := NewStaticEvaluator(DefaultWeights())
	is.Equal(ev.Equity(testhelpers.Won()), WinScore)
	is.Equal(len(ev.Breakdown(testhelpers.Won())), 1)
}

func TestEndgameOverride(t *testing.T) {
	is := is.New(t)
	ev := NewStaticEvaluator(DefaultWeights())
	g := testhelpers.MustPosition([]string{"R9", "", "G9 B9"}, "R# G# B#", [3]int{8, 8, 8})
	is.Equal(ev.Equity(g), 102.0)
}

func TestTerms(t *testing.T) {
	is := is.New(t)
	ev := NewStaticEvaluator(DefaultWeights())
	// 13 tableau cards, so no override.
	g := testhelpers.MustPosition([]string{
		"B8 R7 G6",
		"R9 G0",
		"G9 B0 B1",
		"R3 B4",
		"G3 G4 R8",
	}, "R# B5", [3]int{2, 2, 0})
	// markers 3, foundations 4, empty stacks 3*3, high bases 3+2+3,
	// imbalance -1, slot cards -3.2.
	is.Equal(ev.Equity(g), 3.0+4+9+8-1-3.2)

	names := map[string]float64{}
	for _, term := range ev.Breakdown(g) {
		names[term.Name] = term.Value
	}
	is.Equal(names["high-bases"], 8.0)
	is.Equal(names["moves"], 0.0)
}

func TestMovesPenalty(t *testing.T) {
	is := is.New(t)
	ev := NewStaticEvaluator(DefaultWeights())
	g := testhelpers.MustPosition([]string{
		"R5 G5", "R6 G6", "R7 G7", "B5 B6", "B7 R4", "G4 B4",
	}, "", [3]int{3, 3, 3})
	// walk one card back and forth a dozen times.
	g.PushCard(7, g.Stack(0)[1])
	g2 := g.Copy()
	for i := 0; i < 12; i++ {
		from, to := 7, 6
		if i%2 == 1 {
			from, to = 6, 7
		}
		is.NoErr(g2.PlayMove(move.NewStackMove(move.Tableau(from, 0), to)))
	}
	is.Equal(g2.MovesTaken(), 12)
	is.Equal(ev.Equity(g2), ev.Equity(g)-12.0/5)
}

func TestCustomWeights(t *testing.T) {
	is := is.New(t)
	w := DefaultWeights()
	w.SlotCard = 0
	w.EmptyStack = 0
	ev := NewStaticEvaluator(w)
	g := testhelpers.MustPosition([]string{
		"R5 G5", "R6 G6", "R7 G7", "B5 B6", "B7 R4", "G4 B4",
	}, "B3", [3]int{2, 2, 2})
	is.Equal(ev.Equity(g), 6.0)
	is.Equal(ev.Weights().SlotCard, 0.0)
}
