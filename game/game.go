// Package game holds the solitaire position: the eight tableau stacks, the
// free slots and the foundations, plus the rules for changing them.
//
// A GameState exclusively owns its containers. Copy before handing a state
// to anything that might mutate it.
package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/domino14/shenzhen/card"
)

var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrBadLayout         = errors.New("bad layout")
	ErrDuplicateCard     = errors.New("duplicate card found")
	ErrMissingToken      = errors.New("not all suit token cards were found")
	ErrUnexpectedMissing = errors.New("missing cards do not follow the foundation")
	ErrConservation      = errors.New("card conservation violated")
)

type GameState struct {
	stacks      [card.StackCount][]card.Card
	slots       []card.Card
	foundations [card.NumMainSuits]int
	movesTaken  int
}

// NewGameState returns an empty board. Every container is freshly
// allocated; nothing is shared with any other state.
func NewGameState() *GameState {
	g := &GameState{
		slots: make([]card.Card, 0, card.FreeSlotCount),
	}
	for i := range g.stacks {
		g.stacks[i] = make([]card.Card, 0, card.InitialRows+card.MaxValue)
	}
	return g
}

// Copy returns a deep copy.
func (g *GameState) Copy() *GameState {
	c := &GameState{
		foundations: g.foundations,
		movesTaken:  g.movesTaken,
		slots:       make([]card.Card, len(g.slots), card.FreeSlotCount),
	}
	copy(c.slots, g.slots)
	for i := range g.stacks {
		// a little headroom so the first push doesn't reallocate.
		c.stacks[i] = make([]card.Card, len(g.stacks[i]), len(g.stacks[i])+4)
		copy(c.stacks[i], g.stacks[i])
	}
	return c
}

// Stack returns stack i, bottom first. The caller must not modify it.
func (g *GameState) Stack(i int) []card.Card {
	return g.stacks[i]
}

// Slots returns the free slot contents in insertion order. The caller must
// not modify it.
func (g *GameState) Slots() []card.Card {
	return g.slots
}

func (g *GameState) Foundation(s card.Suit) int {
	return g.foundations[s.Index()]
}

func (g *GameState) MovesTaken() int {
	return g.movesTaken
}

// Top returns the top card of stack i.
func (g *GameState) Top(i int) (card.Card, bool) {
	st := g.stacks[i]
	if len(st) == 0 {
		return card.Card{}, false
	}
	return st[len(st)-1], true
}

// PushCard puts c on top of stack i, without any rule checks. It is used
// when populating a board.
func (g *GameState) PushCard(i int, c card.Card) {
	g.stacks[i] = append(g.stacks[i], c)
}

// AddToFreeSlot parks c in the next free slot, without rule checks other
// than capacity.
func (g *GameState) AddToFreeSlot(c card.Card) error {
	if len(g.slots) >= card.FreeSlotCount {
		return fmt.Errorf("%w: free slots are full", ErrIllegalMove)
	}
	g.slots = append(g.slots, c)
	return nil
}

// SetFoundation is meant for building positions by hand.
func (g *GameState) SetFoundation(s card.Suit, v int) {
	g.foundations[s.Index()] = v
}

func (g *GameState) popStack(i, n int) {
	g.stacks[i] = g.stacks[i][:len(g.stacks[i])-n]
}

func (g *GameState) removeSlot(i int) {
	g.slots = append(g.slots[:i], g.slots[i+1:]...)
}

// SlotsAvailable is how many free slots can still take a card.
func (g *GameState) SlotsAvailable() int {
	return card.FreeSlotCount - len(g.slots)
}

// TableauCount is the number of cards on the stacks.
func (g *GameState) TableauCount() int {
	n := 0
	for i := range g.stacks {
		n += len(g.stacks[i])
	}
	return n
}

// CardCount is the number of cards on the stacks and in the free slots,
// markers included.
func (g *GameState) CardCount() int {
	return g.TableauCount() + len(g.slots)
}

func (g *GameState) EmptyStacks() int {
	n := 0
	for i := range g.stacks {
		if len(g.stacks[i]) == 0 {
			n++
		}
	}
	return n
}

func (g *GameState) minFoundation() int {
	m := g.foundations[0]
	for _, f := range g.foundations[1:] {
		m = min(m, f)
	}
	return m
}

func (g *GameState) maxFoundation() int {
	m := g.foundations[0]
	for _, f := range g.foundations[1:] {
		m = max(m, f)
	}
	return m
}

// MinFoundation and MaxFoundation are the lowest and highest foundation
// values across the three main suits.
func (g *GameState) MinFoundation() int { return g.minFoundation() }
func (g *GameState) MaxFoundation() int { return g.maxFoundation() }

func (g *GameState) FoundationSum() int {
	s := 0
	for _, f := range g.foundations {
		s += f
	}
	return s
}

// Markers counts the free slots that hold a discard marker.
func (g *GameState) Markers() int {
	n := 0
	for _, c := range g.slots {
		if c.IsMarker() {
			n++
		}
	}
	return n
}

// IsWon is true once every slot holds a marker, every foundation is
// complete and the tableau is empty.
func (g *GameState) IsWon() bool {
	for _, c := range g.slots {
		if !c.IsMarker() {
			return false
		}
	}
	for _, f := range g.foundations {
		if f != card.MaxValue {
			return false
		}
	}
	for i := range g.stacks {
		if len(g.stacks[i]) != 0 {
			return false
		}
	}
	return true
}

// Equal compares content. Free slots are compared as a multiset since their
// order has no effect on play. The move counter is ignored.
func (g *GameState) Equal(o *GameState) bool {
	if g.foundations != o.foundations || len(g.slots) != len(o.slots) {
		return false
	}
	for i := range g.stacks {
		if len(g.stacks[i]) != len(o.stacks[i]) {
			return false
		}
		for j := range g.stacks[i] {
			if g.stacks[i][j] != o.stacks[i][j] {
				return false
			}
		}
	}
	var counts [card.NumIndices]int8
	for _, c := range g.slots {
		counts[c.Index()]++
	}
	for _, c := range o.slots {
		counts[c.Index()]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}

// AppendKey appends a canonical serialization of the position to buf.
// Two states have the same key iff they are Equal.
func (g *GameState) AppendKey(buf []byte) []byte {
	for i := range g.stacks {
		for _, c := range g.stacks[i] {
			buf = append(buf, byte(c.Index()))
		}
		buf = append(buf, 0xff)
	}
	idx := make([]int, len(g.slots))
	for i, c := range g.slots {
		idx[i] = c.Index()
	}
	sort.Ints(idx)
	for _, i := range idx {
		buf = append(buf, byte(i))
	}
	buf = append(buf, 0xff)
	for _, f := range g.foundations {
		buf = append(buf, byte(f))
	}
	return buf
}

// ConservationCheck verifies that no card was created or lost: every
// numbered card is on the tableau, in a slot or under its foundation, and
// every token is either loose or bundled under a marker.
func (g *GameState) ConservationCheck() error {
	var numbered, tokens, roses int
	count := func(c card.Card) {
		switch {
		case c.IsNumbered():
			numbered++
		case c.IsToken():
			tokens++
		case c.IsMarker():
			tokens += card.TokensPerSuit
		case c.IsRose():
			roses++
		}
	}
	for i := range g.stacks {
		for _, c := range g.stacks[i] {
			if c.IsMarker() {
				return fmt.Errorf("%w: marker %v on stack %d", ErrConservation, c, i)
			}
			count(c)
		}
	}
	for _, c := range g.slots {
		count(c)
	}
	if numbered+g.FoundationSum() != card.NumberedCards {
		return fmt.Errorf("%w: %d numbered cards + %d retired != %d",
			ErrConservation, numbered, g.FoundationSum(), card.NumberedCards)
	}
	if tokens != card.TokenCards {
		return fmt.Errorf("%w: %d tokens accounted for, want %d",
			ErrConservation, tokens, card.TokenCards)
	}
	if roses > 1 {
		return fmt.Errorf("%w: %d rose cards", ErrConservation, roses)
	}
	return nil
}
