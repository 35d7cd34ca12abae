package game

import (
	"fmt"

	"github.com/domino14/shenzhen/card"
	"github.com/domino14/shenzhen/move"
)

// sourceCard returns the card an action picks up, and for tableau sources
// the size of the run starting there. It checks the source exists and is
// movable.
func (g *GameState) sourceCard(src move.Source) (card.Card, int, error) {
	switch src.Kind {
	case move.SourceFreeSlot:
		if src.Index < 0 || src.Index >= len(g.slots) {
			return card.Card{}, 0, fmt.Errorf("%w: no free slot %d", ErrIllegalMove, src.Index)
		}
		c := g.slots[src.Index]
		if c.IsMarker() || c.IsRose() {
			return card.Card{}, 0, fmt.Errorf("%w: slot %d holds %v", ErrIllegalMove, src.Index, c)
		}
		return c, 1, nil
	case move.SourceTableau:
		if src.Index < 0 || src.Index >= card.StackCount {
			return card.Card{}, 0, fmt.Errorf("%w: no stack %d", ErrIllegalMove, src.Index)
		}
		st := g.stacks[src.Index]
		ok, depth := card.IsMovableRun(st, src.Card)
		if !ok {
			return card.Card{}, 0, fmt.Errorf("%w: %v is not a movable run", ErrIllegalMove, src)
		}
		if st[src.Card].IsRose() {
			return card.Card{}, 0, fmt.Errorf("%w: the rose only leaves by itself", ErrIllegalMove)
		}
		return st[src.Card], depth, nil
	}
	return card.Card{}, 0, fmt.Errorf("%w: action has no source", ErrIllegalMove)
}

// take removes the source cards, which must already have been checked by
// sourceCard, and returns them.
func (g *GameState) take(src move.Source, depth int) []card.Card {
	if src.Kind == move.SourceFreeSlot {
		c := g.slots[src.Index]
		g.removeSlot(src.Index)
		return []card.Card{c}
	}
	st := g.stacks[src.Index]
	run := make([]card.Card, depth)
	copy(run, st[src.Card:])
	g.popStack(src.Index, depth)
	return run
}

// PlayMove applies an action produced by the move generator. An action that
// doesn't fit this state is rejected with ErrIllegalMove before anything is
// changed.
func (g *GameState) PlayMove(m move.Move) error {
	switch m.Action() {
	case move.MoveTypeResolve:
		// bookkeeping only.
		return nil

	case move.MoveTypeDiscard:
		if !g.CanDiscard(m.Suit()) {
			return fmt.Errorf("%w: cannot discard %v", ErrIllegalMove, m.Suit())
		}
		g.discard(m.Suit())

	case move.MoveTypeToStack:
		c, depth, err := g.sourceCard(m.From())
		if err != nil {
			return err
		}
		t := m.ToStack()
		if t < 0 || t >= card.StackCount {
			return fmt.Errorf("%w: no stack %d", ErrIllegalMove, t)
		}
		if m.From().Kind == move.SourceTableau && m.From().Index == t {
			return fmt.Errorf("%w: run moved onto its own stack", ErrIllegalMove)
		}
		if !card.CanPlace(c, g.stacks[t]) {
			return fmt.Errorf("%w: %v does not go on stack %d", ErrIllegalMove, c, t)
		}
		run := g.take(m.From(), depth)
		g.stacks[t] = append(g.stacks[t], run...)

	case move.MoveTypeToFoundation:
		c, depth, err := g.sourceCard(m.From())
		if err != nil {
			return err
		}
		if depth != 1 {
			return fmt.Errorf("%w: only single cards go to a foundation", ErrIllegalMove)
		}
		if !card.CanRetire(c, g.Foundation(c.Suit)) {
			return fmt.Errorf("%w: %v is not next on its foundation", ErrIllegalMove, c)
		}
		g.take(m.From(), depth)
		g.foundations[c.Suit.Index()]++

	case move.MoveTypeToFreeSlot:
		if m.From().Kind != move.SourceTableau {
			return fmt.Errorf("%w: only tableau cards go to a free slot", ErrIllegalMove)
		}
		c, depth, err := g.sourceCard(m.From())
		if err != nil {
			return err
		}
		if depth != 1 {
			return fmt.Errorf("%w: runs cannot go to a free slot", ErrIllegalMove)
		}
		if g.SlotsAvailable() == 0 {
			return fmt.Errorf("%w: free slots are full", ErrIllegalMove)
		}
		g.take(m.From(), depth)
		g.slots = append(g.slots, c)

	default:
		return fmt.Errorf("%w: unknown action %v", ErrIllegalMove, m.Action())
	}
	g.movesTaken++
	return nil
}

// visibleTokens counts the tokens of suit s on stack tops and in the slots.
func (g *GameState) visibleTokens(s card.Suit) (onStacks, inSlots int) {
	tok := card.Token(s)
	for i := range g.stacks {
		if top, ok := g.Top(i); ok && top == tok {
			onStacks++
		}
	}
	for _, c := range g.slots {
		if c == tok {
			inSlots++
		}
	}
	return onStacks, inSlots
}

// CanDiscard reports whether all four tokens of s can be bundled into a
// discard marker right now: they must all be visible, and the marker needs
// a slot, either one a token already occupies or an empty one.
func (g *GameState) CanDiscard(s card.Suit) bool {
	if !s.IsMain() {
		return false
	}
	onStacks, inSlots := g.visibleTokens(s)
	if onStacks+inSlots != card.TokensPerSuit {
		return false
	}
	return inSlots > 0 || g.SlotsAvailable() > 0
}

func (g *GameState) discard(s card.Suit) {
	tok := card.Token(s)
	for i := range g.stacks {
		if top, ok := g.Top(i); ok && top == tok {
			g.popStack(i, 1)
		}
	}
	placed := false
	kept := g.slots[:0]
	for _, c := range g.slots {
		if c != tok {
			kept = append(kept, c)
			continue
		}
		if !placed {
			// the marker takes over the first slot one of the tokens was in.
			kept = append(kept, card.DiscardMarker(s))
			placed = true
		}
	}
	g.slots = kept
	if !placed {
		g.slots = append(g.slots, card.DiscardMarker(s))
	}
}
