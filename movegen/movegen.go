// Package movegen lists every legal action in a position.
package movegen

import (
	"github.com/domino14/shenzhen/card"
	"github.com/domino14/shenzhen/game"
	"github.com/domino14/shenzhen/move"
)

// MoveGenerator is the interface the solver and the shell use.
type MoveGenerator interface {
	// GenAll generates every legal action for st. The returned slice is
	// only valid until the next call.
	GenAll(st *game.GameState) []move.Move
	Plays() []move.Move
}

// Generator is the standard MoveGenerator. It is not safe for concurrent
// use; give each goroutine its own.
type Generator struct {
	plays []move.Move

	// skipEmptyTransfers drops moves that carry a whole stack onto an empty
	// stack. Such a move only relabels the stacks, so it never helps.
	skipEmptyTransfers bool
}

func NewGenerator() *Generator {
	return &Generator{plays: make([]move.Move, 0, 64)}
}

func (gen *Generator) SetSkipEmptyTransfers(b bool) {
	gen.skipEmptyTransfers = b
}

func (gen *Generator) Plays() []move.Move {
	return gen.plays
}

func (gen *Generator) GenAll(st *game.GameState) []move.Move {
	gen.plays = gen.plays[:0]
	gen.genFromSlots(st)
	gen.genFromStacks(st)
	gen.genDiscards(st)
	return gen.plays
}

func (gen *Generator) genFromSlots(st *game.GameState) {
	for i, c := range st.Slots() {
		if c.IsMarker() || !c.Suit.IsMain() {
			continue
		}
		src := move.FreeSlot(i)
		for t := 0; t < card.StackCount; t++ {
			if card.CanPlace(c, st.Stack(t)) {
				gen.plays = append(gen.plays, move.NewStackMove(src, t))
			}
		}
		if card.CanRetire(c, st.Foundation(c.Suit)) {
			gen.plays = append(gen.plays, move.NewFoundationMove(src))
		}
	}
}

func (gen *Generator) genFromStacks(st *game.GameState) {
	for s := 0; s < card.StackCount; s++ {
		stack := st.Stack(s)
		// Walk down from the top; once a position is not the start of a run,
		// nothing below it can be either.
		for k := len(stack) - 1; k >= 0; k-- {
			ok, depth := card.IsMovableRun(stack, k)
			if !ok {
				break
			}
			head := stack[k]
			if head.IsRose() {
				break
			}
			src := move.Tableau(s, k)
			for t := 0; t < card.StackCount; t++ {
				if t == s {
					continue
				}
				target := st.Stack(t)
				if gen.skipEmptyTransfers && k == 0 && len(target) == 0 {
					continue
				}
				if card.CanPlace(head, target) {
					gen.plays = append(gen.plays, move.NewStackMove(src, t))
				}
			}
			if depth != 1 {
				continue
			}
			if st.SlotsAvailable() > 0 {
				gen.plays = append(gen.plays, move.NewFreeSlotMove(src))
			}
			if card.CanRetire(head, st.Foundation(head.Suit)) {
				gen.plays = append(gen.plays, move.NewFoundationMove(src))
			}
		}
	}
}

func (gen *Generator) genDiscards(st *game.GameState) {
	for _, s := range card.MainSuits {
		if st.CanDiscard(s) {
			gen.plays = append(gen.plays, move.NewDiscardMove(s))
		}
	}
}
