package game

import (
	"github.com/domino14/shenzhen/card"
)

// autoRetirable is the gate the game itself uses when it retires cards
// without being asked. A 1 or a 2 can always go. Anything higher only goes
// once every other suit's foundation is within one of it, so that it can't
// be needed as a landing spot for a lower card of another suit.
func autoRetirable(c card.Card, foundation, minFoundation int) bool {
	if !card.CanRetire(c, foundation) {
		return false
	}
	return c.Value == 1 || c.Value == 2 || int(c.Value) == minFoundation+1
}

// AutoResolve performs the moves the game makes on its own until nothing
// else changes: the rose is removed as soon as it surfaces, and safe cards
// are sent to their foundations. It returns how many cards were removed.
//
// Each outer iteration scans every stack top once. Free slots are only
// looked at if that scan removed nothing, and then only the first eligible
// slot card is retired, scanning from the most recently filled slot back.
func (g *GameState) AutoResolve() int {
	resolved := 0
	prev := -1
	for prev != g.CardCount() {
		prev = g.CardCount()
		minF := g.minFoundation()

		fromStacks := false
		for i := range g.stacks {
			top, ok := g.Top(i)
			if !ok {
				continue
			}
			if top.IsRose() {
				g.popStack(i, 1)
				resolved++
				fromStacks = true
				continue
			}
			if !top.Suit.IsMain() {
				continue
			}
			si := top.Suit.Index()
			if autoRetirable(top, g.foundations[si], minF) {
				g.popStack(i, 1)
				g.foundations[si]++
				resolved++
				fromStacks = true
			}
		}
		if fromStacks {
			continue
		}

		for i := len(g.slots) - 1; i >= 0; i-- {
			c := g.slots[i]
			if !c.Suit.IsMain() || c.IsMarker() {
				continue
			}
			si := c.Suit.Index()
			if autoRetirable(c, g.foundations[si], minF) {
				g.removeSlot(i)
				g.foundations[si]++
				resolved++
				break
			}
		}
	}
	return resolved
}
