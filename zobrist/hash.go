package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/shenzhen/card"
	"github.com/domino14/shenzhen/game"
)

const bignum = 1<<63 - 2

// MaxHeight bounds how tall a stack can get; no stack can hold more than
// the whole deck.
const MaxHeight = card.DeckSize

// Zobrist hashes a solitaire position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
// Stack cards are keyed by position. Free slots hold an unordered set, so
// they are keyed by how many copies of each card they hold, the way a rack
// is. Two positions that are Equal always hash the same.
type Zobrist struct {
	posTable        [][]uint64
	slotTable       [][]uint64
	foundationTable [card.NumMainSuits][card.MaxValue + 1]uint64
}

func (z *Zobrist) Initialize() {
	z.posTable = make([][]uint64, card.StackCount*MaxHeight)
	for i := range z.posTable {
		z.posTable[i] = make([]uint64, card.NumIndices)
		for j := range z.posTable[i] {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.slotTable = make([][]uint64, card.NumIndices)
	for i := range z.slotTable {
		z.slotTable[i] = make([]uint64, card.FreeSlotCount+1)
		// zero copies hash to nothing, so an empty slot area is 0.
		for j := 1; j <= card.FreeSlotCount; j++ {
			z.slotTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	for s := range z.foundationTable {
		for v := range z.foundationTable[s] {
			z.foundationTable[s][v] = frand.Uint64n(bignum) + 1
		}
	}
}

func New() *Zobrist {
	z := &Zobrist{}
	z.Initialize()
	return z
}

func (z *Zobrist) Hash(st *game.GameState) uint64 {
	key := uint64(0)
	for s := 0; s < card.StackCount; s++ {
		for h, c := range st.Stack(s) {
			key ^= z.posTable[s*MaxHeight+h][c.Index()]
		}
	}
	var counts [card.NumIndices]uint8
	for _, c := range st.Slots() {
		counts[c.Index()]++
	}
	for idx, ct := range counts {
		key ^= z.slotTable[idx][ct]
	}
	for i, s := range card.MainSuits {
		key ^= z.foundationTable[i][st.Foundation(s)]
	}
	return key
}
