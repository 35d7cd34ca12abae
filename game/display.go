package game

import (
	"fmt"
	"strings"

	"github.com/domino14/shenzhen/card"
)

// ToDisplayText renders the position with the stacks drawn as columns, the
// way they lie on the table.
func (g *GameState) ToDisplayText() string {
	var sb strings.Builder

	slots := make([]string, card.FreeSlotCount)
	for i := range slots {
		slots[i] = "--"
		if i < len(g.slots) {
			slots[i] = g.slots[i].String()
		}
	}
	fmt.Fprintf(&sb, "slots: [%s]   ", strings.Join(slots, " "))
	for _, s := range card.MainSuits {
		fmt.Fprintf(&sb, "%s:%d ", s.Letter(), g.Foundation(s))
	}
	fmt.Fprintf(&sb, "  moves: %d\n", g.movesTaken)

	for i := range g.stacks {
		fmt.Fprintf(&sb, " %-3s", fmt.Sprintf("%d", i))
	}
	sb.WriteString("\n")

	height := 0
	for i := range g.stacks {
		height = max(height, len(g.stacks[i]))
	}
	for row := 0; row < height; row++ {
		for i := range g.stacks {
			cell := ""
			if row < len(g.stacks[i]) {
				cell = g.stacks[i][row].String()
			}
			fmt.Fprintf(&sb, " %-3s", cell)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), " \n") + "\n"
}

func (g *GameState) String() string {
	return g.ToDisplayText()
}
