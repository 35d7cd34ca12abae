// Package testhelpers builds positions by hand for tests across the repo.
package testhelpers

import (
	"strings"

	"github.com/domino14/shenzhen/card"
	"github.com/domino14/shenzhen/game"
)

// Position builds a state from card strings. stacks are listed bottom card
// first; stacks not given are empty. No validation is done.
func Position(stacks []string, slots string, found [card.NumMainSuits]int) (*game.GameState, error) {
	g := game.NewGameState()
	for i, s := range stacks {
		for _, f := range strings.Fields(s) {
			c, err := card.ParseCard(f)
			if err != nil {
				return nil, err
			}
			g.PushCard(i, c)
		}
	}
	for _, f := range strings.Fields(slots) {
		c, err := card.ParseCard(f)
		if err != nil {
			return nil, err
		}
		if err = g.AddToFreeSlot(c); err != nil {
			return nil, err
		}
	}
	for i, s := range card.MainSuits {
		g.SetFoundation(s, found[i])
	}
	return g, nil
}

func MustPosition(stacks []string, slots string, found [card.NumMainSuits]int) *game.GameState {
	g, err := Position(stacks, slots, found)
	if err != nil {
		panic(err)
	}
	return g
}

// OneDiscardFromWin is won by bundling the black tokens; the game then
// clears everything else by itself.
func OneDiscardFromWin() *game.GameState {
	return MustPosition([]string{
		"R9 G8",
		"G9 B0",
		"B9 B0",
		"R8 B0",
		"B8 B0",
	}, "R# G#", [3]int{7, 7, 7})
}

// NinesOnSixes needs each 9 lifted off a 6 onto an empty stack. There are
// no free slots to help.
func NinesOnSixes() *game.GameState {
	return MustPosition([]string{
		"R6 G9",
		"G6 B9",
		"B6 R9",
		"R8 G8 R7",
		"B8 G7 B7",
	}, "R# G# B#", [3]int{5, 5, 5})
}

// Won is the finished board.
func Won() *game.GameState {
	return MustPosition(nil, "R# G# B#", [3]int{9, 9, 9})
}
