// Package deal produces starting layouts: a shuffled deck dealt out as
// rows of eight, the way the game lays out a new hand.
package deal

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/domino14/shenzhen/card"
)

// SeededRNG returns a deterministic random stream for seed.
func SeededRNG(seed uint64) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	// 12 rounds, as frand uses for its global generator.
	return frand.NewCustom(key[:], 1024, 12)
}

// Random deals a new layout from the global entropy source.
func Random() [][]card.Card {
	deck := card.FullDeck()
	frand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return rows(deck)
}

// Seeded deals the layout for seed. The same seed always gives the same
// layout.
func Seeded(seed uint64) [][]card.Card {
	deck := card.FullDeck()
	rng := SeededRNG(seed)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return rows(deck)
}

func rows(deck []card.Card) [][]card.Card {
	out := make([][]card.Card, card.InitialRows)
	for r := range out {
		out[r] = deck[r*card.StackCount : (r+1)*card.StackCount : (r+1)*card.StackCount]
	}
	return out
}
