package solver

import (
	"math"

	"github.com/cespare/xxhash"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/shenzhen/game"
	"github.com/domino14/shenzhen/zobrist"
)

type DedupMode string

const (
	DedupApproximate DedupMode = "approximate"
	DedupExact       DedupMode = "exact"
)

// dedupTable remembers positions the search has already produced.
type dedupTable interface {
	// seen reports whether a position equal to st is on record. If not, st
	// is recorded.
	seen(st *game.GameState) bool
	reset()
	stats() tableStats
}

type tableStats struct {
	stored    uint64
	lookups   uint64
	dups      uint64
	evictions uint64
}

// Rough bytes held per stored position: the pointer plus the state itself.
const entrySize = 256

const (
	minTablePow = 10
	maxTablePow = 30
)

// approximateTable keeps one position per bucket and overwrites whatever is
// there on every store. A position can be expanded twice if something else
// evicted it in between; two different positions never block each other.
type approximateTable struct {
	table    []*game.GameState
	sizeMask uint64
	zobrist  *zobrist.Zobrist
	st       tableStats
}

func newApproximateTable(z *zobrist.Zobrist, sizePowerOf2 int) *approximateTable {
	numElems := 1 << sizePowerOf2
	return &approximateTable{
		table:    make([]*game.GameState, numElems),
		sizeMask: uint64(numElems - 1),
		zobrist:  z,
	}
}

// tableSizePow picks the largest power of two that fits in
// fractionOfMemory of the system memory, capped by maxEntries.
func tableSizePow(fractionOfMemory float64, maxEntries int) int {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	if maxEntries > 0 && (desiredNElems > float64(maxEntries) || totalMem == 0) {
		desiredNElems = float64(maxEntries)
	}
	pow := minTablePow
	if desiredNElems >= 1 {
		pow = int(math.Log2(desiredNElems))
	}
	pow = max(minTablePow, min(pow, maxTablePow))
	log.Debug().Int("num-elems", 1<<pow).
		Float64("desired-num-elems", desiredNElems).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("dedup-table-size")
	return pow
}

func (t *approximateTable) seen(st *game.GameState) bool {
	t.st.lookups++
	idx := t.zobrist.Hash(st) & t.sizeMask
	prev := t.table[idx]
	if prev != nil && prev.Equal(st) {
		t.st.dups++
		return true
	}
	if prev != nil {
		t.st.evictions++
	}
	// just overwrite whatever is there.
	t.table[idx] = st
	t.st.stored++
	return false
}

func (t *approximateTable) reset() {
	clear(t.table)
	t.st = tableStats{}
}

func (t *approximateTable) stats() tableStats { return t.st }

// exactTable never forgets a position. Keys are the xxhash of the
// canonical position encoding; positions sharing a key are chained.
type exactTable struct {
	table map[uint64][]*game.GameState
	buf   []byte
	st    tableStats
}

func newExactTable() *exactTable {
	return &exactTable{table: make(map[uint64][]*game.GameState), buf: make([]byte, 0, 128)}
}

func (t *exactTable) seen(st *game.GameState) bool {
	t.st.lookups++
	t.buf = st.AppendKey(t.buf[:0])
	key := xxhash.Sum64(t.buf)
	chain := t.table[key]
	for _, prev := range chain {
		if prev.Equal(st) {
			t.st.dups++
			return true
		}
	}
	t.table[key] = append(chain, st)
	t.st.stored++
	return false
}

func (t *exactTable) reset() {
	t.table = make(map[uint64][]*game.GameState)
	t.st = tableStats{}
}

func (t *exactTable) stats() tableStats { return t.st }
