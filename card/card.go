// Package card contains the card model: suits, values, and the stacking
// rules that everything else builds on.
package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Suit is one of the three main suits or the rose.
type Suit int8

const (
	Red Suit = iota
	Green
	Black
	Rose

	// SuitUnknown is only used by Unrecognized.
	SuitUnknown
)

const (
	NumMainSuits = 3
	// NumSuitTags counts every suit a real card can have, rose included.
	NumSuitTags = 4

	StackCount     = 8
	FreeSlotCount  = 3
	TokensPerSuit  = 4
	MaxValue       = 9
	NumberedCards  = NumMainSuits * MaxValue
	TokenCards     = NumMainSuits * TokensPerSuit
	DeckSize       = NumberedCards + TokenCards + 1
	InitialRows    = DeckSize / StackCount
	TokenValue     = 0
	DiscardedValue = -1
)

// MainSuits lists the suits that own a foundation, in index order.
var MainSuits = [NumMainSuits]Suit{Red, Green, Black}

var ErrBadCard = errors.New("unparseable card")

// Index returns the foundation index of a main suit. It returns -1 for the
// rose, which has no foundation.
func (s Suit) Index() int {
	if s >= Red && s <= Black {
		return int(s)
	}
	return -1
}

func (s Suit) IsMain() bool {
	return s.Index() >= 0
}

func (s Suit) Letter() string {
	switch s {
	case Red:
		return "R"
	case Green:
		return "G"
	case Black:
		return "B"
	case Rose:
		return "X"
	}
	return "?"
}

func (s Suit) String() string {
	switch s {
	case Red:
		return "red"
	case Green:
		return "green"
	case Black:
		return "black"
	case Rose:
		return "rose"
	}
	return "unknown"
}

// SuitFromLetter is the inverse of Letter.
func SuitFromLetter(l byte) (Suit, error) {
	switch l {
	case 'R', 'r':
		return Red, nil
	case 'G', 'g':
		return Green, nil
	case 'B', 'b':
		return Black, nil
	case 'X', 'x':
		return Rose, nil
	}
	return SuitUnknown, fmt.Errorf("%w: suit letter %q", ErrBadCard, l)
}

// Card is a (suit, value) pair. Value 0 is a token, -1 is a discard marker
// (four bundled tokens sitting in a free slot).
type Card struct {
	Suit  Suit
	Value int8
}

var (
	RoseCard = Card{Suit: Rose, Value: 0}
	// Unrecognized stands in for a layout cell whose card could not be read.
	Unrecognized = Card{Suit: SuitUnknown, Value: 0}
)

func New(s Suit, v int) Card {
	return Card{Suit: s, Value: int8(v)}
}

func Token(s Suit) Card {
	return Card{Suit: s, Value: TokenValue}
}

func DiscardMarker(s Suit) Card {
	return Card{Suit: s, Value: DiscardedValue}
}

func (c Card) IsToken() bool {
	return c.Suit.IsMain() && c.Value == TokenValue
}

func (c Card) IsMarker() bool {
	return c.Value == DiscardedValue
}

func (c Card) IsRose() bool {
	return c.Suit == Rose
}

// IsNumbered is true for the 1..9 cards of a main suit.
func (c Card) IsNumbered() bool {
	return c.Suit.IsMain() && c.Value >= 1 && c.Value <= MaxValue
}

func (c Card) Recognized() bool {
	return c.Suit != SuitUnknown
}

// NumIndices is the number of distinct values Index can return.
const NumIndices = NumSuitTags * (MaxValue + 2)

// Index maps a card to a dense integer in [0, NumIndices). Markers get their
// own slot, so every distinct card that can sit on a board has its own index.
func (c Card) Index() int {
	return int(c.Suit)*(MaxValue+2) + int(c.Value) + 1
}

func (c Card) String() string {
	switch {
	case c.Suit == Rose:
		return "X"
	case !c.Recognized():
		return "?"
	case c.IsMarker():
		return c.Suit.Letter() + "#"
	}
	return c.Suit.Letter() + strconv.Itoa(int(c.Value))
}

// ParseCard reads the String form back. "?" and "." parse to Unrecognized.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "?", ".":
		return Unrecognized, nil
	case "X", "x":
		return RoseCard, nil
	}
	if len(s) != 2 {
		return Unrecognized, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	suit, err := SuitFromLetter(s[0])
	if err != nil {
		return Unrecognized, err
	}
	if suit == Rose {
		return Unrecognized, fmt.Errorf("%w: rose takes no value: %q", ErrBadCard, s)
	}
	if s[1] == '#' {
		return DiscardMarker(suit), nil
	}
	v, err := strconv.Atoi(s[1:])
	if err != nil || v < 0 || v > MaxValue {
		return Unrecognized, fmt.Errorf("%w: value in %q", ErrBadCard, s)
	}
	return New(suit, v), nil
}

// FullDeck returns all 40 cards of a fresh game.
func FullDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range MainSuits {
		for i := 0; i < TokensPerSuit; i++ {
			deck = append(deck, Token(s))
		}
		for v := 1; v <= MaxValue; v++ {
			deck = append(deck, New(s, v))
		}
	}
	return append(deck, RoseCard)
}
