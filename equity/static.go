// Package equity holds the position evaluator used to order the search.
// The score is a guide, not a bound: it says nothing about how far a
// position is from being solved.
package equity

import (
	"github.com/samber/lo"

	"github.com/domino14/shenzhen/card"
	"github.com/domino14/shenzhen/game"
)

// WinScore is the score of a won position and the highest any position can
// get.
const WinScore = 1000.0

// Term is one line of a score breakdown.
type Term struct {
	Name  string
	Value float64
}

type StaticEvaluator struct {
	w Weights
}

func NewStaticEvaluator(w Weights) *StaticEvaluator {
	return &StaticEvaluator{w: w}
}

func (s *StaticEvaluator) Weights() Weights {
	return s.w
}

func (s *StaticEvaluator) Equity(st *game.GameState) float64 {
	if st.IsWon() {
		return WinScore
	}
	if n := st.TableauCount(); n < s.w.EndgameCards {
		return float64(card.StackCount-st.EmptyStacks()) + s.w.EndgameBonus
	}
	return lo.SumBy(s.terms(st), func(t Term) float64 { return t.Value })
}

// Breakdown explains Equity. When an override decides the score it is the
// only term returned.
func (s *StaticEvaluator) Breakdown(st *game.GameState) []Term {
	if st.IsWon() {
		return []Term{{"won", WinScore}}
	}
	if n := st.TableauCount(); n < s.w.EndgameCards {
		return []Term{{"endgame", float64(card.StackCount-st.EmptyStacks()) + s.w.EndgameBonus}}
	}
	return s.terms(st)
}

func (s *StaticEvaluator) terms(st *game.GameState) []Term {
	slots := st.Slots()
	markers := lo.CountBy(slots, func(c card.Card) bool { return c.IsMarker() })
	slotCards := len(slots) - markers

	highBase := 0
	for i := 0; i < card.StackCount; i++ {
		stack := st.Stack(i)
		if len(stack) > 0 && int(stack[0].Value) >= s.w.HighBaseValue {
			highBase += len(stack)
		}
	}

	moves := 0.0
	if st.MovesTaken() > s.w.MovesGrace && s.w.MovesDivisor > 0 {
		moves = float64(st.MovesTaken()) / s.w.MovesDivisor
	}

	return []Term{
		{"markers", s.w.Markers * float64(markers)},
		{"foundations", s.w.Foundation * float64(st.FoundationSum())},
		{"empty-stacks", s.w.EmptyStack * float64(st.EmptyStacks())},
		{"high-bases", s.w.HighBase * float64(highBase)},
		{"imbalance", -s.w.Imbalance * float64(st.MaxFoundation()-st.MinFoundation())},
		{"slot-cards", -s.w.SlotCard * float64(slotCards)},
		{"moves", -s.w.Moves * moves},
	}
}
