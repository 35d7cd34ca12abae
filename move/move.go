// Package move describes the actions the solver hands to whoever replays
// them on the real board.
package move

import (
	"fmt"

	"github.com/domino14/shenzhen/card"
)

// MoveType is where an action sends its cards; or, for the two special
// types, what kind of bookkeeping entry it is.
type MoveType uint8

const (
	MoveTypeToStack MoveType = iota
	MoveTypeToFoundation
	MoveTypeToFreeSlot
	MoveTypeDiscard
	// MoveTypeResolve never changes the board. It records how many cards the
	// game retired on its own after the previous action.
	MoveTypeResolve
)

func (t MoveType) String() string {
	switch t {
	case MoveTypeToStack:
		return "stack"
	case MoveTypeToFoundation:
		return "foundation"
	case MoveTypeToFreeSlot:
		return "freeslot"
	case MoveTypeDiscard:
		return "discard"
	case MoveTypeResolve:
		return "resolve"
	}
	return "UNHANDLED"
}

type SourceKind uint8

const (
	SourceNone SourceKind = iota
	SourceFreeSlot
	SourceTableau
)

func (k SourceKind) String() string {
	switch k {
	case SourceFreeSlot:
		return "freeslot"
	case SourceTableau:
		return "tableau"
	}
	return "none"
}

// Source is where the moved card (or the bottom card of a moved run) sits
// before the action.
type Source struct {
	Kind SourceKind
	// Index is the free slot index or the stack index, depending on Kind.
	Index int
	// Card is the position of the card within its stack; tableau only.
	Card int
}

func FreeSlot(i int) Source {
	return Source{Kind: SourceFreeSlot, Index: i}
}

func Tableau(stack, cardIdx int) Source {
	return Source{Kind: SourceTableau, Index: stack, Card: cardIdx}
}

func (s Source) String() string {
	switch s.Kind {
	case SourceFreeSlot:
		return fmt.Sprintf("slot%d", s.Index)
	case SourceTableau:
		return fmt.Sprintf("s%d:%d", s.Index, s.Card)
	}
	return "-"
}

// Move is a single action. It is a small value type; copy it freely.
type Move struct {
	action  MoveType
	from    Source
	toStack int
	suit    card.Suit
	count   int
}

// NewStackMove moves a card or run from src onto stack target.
func NewStackMove(src Source, target int) Move {
	return Move{action: MoveTypeToStack, from: src, toStack: target}
}

func NewFoundationMove(src Source) Move {
	return Move{action: MoveTypeToFoundation, from: src}
}

// NewFreeSlotMove parks a single tableau card in the next empty free slot.
func NewFreeSlotMove(src Source) Move {
	return Move{action: MoveTypeToFreeSlot, from: src}
}

func NewDiscardMove(s card.Suit) Move {
	return Move{action: MoveTypeDiscard, suit: s}
}

func NewResolveMove(count int) Move {
	return Move{action: MoveTypeResolve, count: count}
}

func (m Move) Action() MoveType { return m.action }
func (m Move) From() Source     { return m.from }

// ToStack is the target stack; only meaningful for MoveTypeToStack.
func (m Move) ToStack() int { return m.toStack }

// Suit is only meaningful for MoveTypeDiscard.
func (m Move) Suit() card.Suit { return m.suit }

// Count is only meaningful for MoveTypeResolve.
func (m Move) Count() int { return m.count }

// IsPseudo is true for entries that the replay side should not perform.
func (m Move) IsPseudo() bool {
	return m.action == MoveTypeResolve
}

// ShortDescription is used for logging and the shell.
func (m Move) ShortDescription() string {
	switch m.action {
	case MoveTypeToStack:
		return fmt.Sprintf("%v -> s%d", m.from, m.toStack)
	case MoveTypeToFoundation:
		return fmt.Sprintf("%v -> foundation", m.from)
	case MoveTypeToFreeSlot:
		return fmt.Sprintf("%v -> slot", m.from)
	case MoveTypeDiscard:
		return fmt.Sprintf("discard %v", m.suit)
	case MoveTypeResolve:
		return fmt.Sprintf("(resolve %d)", m.count)
	}
	return "UNHANDLED"
}

func (m Move) String() string {
	return fmt.Sprintf("<action: %v %s>", m.action, m.ShortDescription())
}
