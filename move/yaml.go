package move

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/domino14/shenzhen/card"
)

// step is the on-disk shape of a Move, as consumed by the replay side.
type step struct {
	To    string `yaml:"to"`
	From  string `yaml:"from,omitempty"`
	Index *int   `yaml:"index,omitempty"`
	Card  *int   `yaml:"card,omitempty"`
	Stack *int   `yaml:"stack,omitempty"`
	Suit  string `yaml:"suit,omitempty"`
	Count int    `yaml:"count,omitempty"`
}

func intp(i int) *int { return &i }

func (m Move) MarshalYAML() (interface{}, error) {
	s := step{To: m.action.String()}
	switch m.from.Kind {
	case SourceFreeSlot:
		s.From = m.from.Kind.String()
		s.Index = intp(m.from.Index)
	case SourceTableau:
		s.From = m.from.Kind.String()
		s.Index = intp(m.from.Index)
		s.Card = intp(m.from.Card)
	}
	switch m.action {
	case MoveTypeToStack:
		s.Stack = intp(m.toStack)
	case MoveTypeDiscard:
		s.Suit = m.suit.String()
	case MoveTypeResolve:
		s.Count = m.count
	}
	return s, nil
}

func (m *Move) UnmarshalYAML(value *yaml.Node) error {
	var s step
	if err := value.Decode(&s); err != nil {
		return err
	}
	var src Source
	switch s.From {
	case "":
	case SourceFreeSlot.String():
		if s.Index == nil {
			return fmt.Errorf("freeslot source needs an index")
		}
		src = FreeSlot(*s.Index)
	case SourceTableau.String():
		if s.Index == nil || s.Card == nil {
			return fmt.Errorf("tableau source needs index and card")
		}
		src = Tableau(*s.Index, *s.Card)
	default:
		return fmt.Errorf("unknown source %q", s.From)
	}
	switch s.To {
	case MoveTypeToStack.String():
		if s.Stack == nil {
			return fmt.Errorf("stack move needs a stack")
		}
		*m = NewStackMove(src, *s.Stack)
	case MoveTypeToFoundation.String():
		*m = NewFoundationMove(src)
	case MoveTypeToFreeSlot.String():
		*m = NewFreeSlotMove(src)
	case MoveTypeDiscard.String():
		var suit card.Suit = card.SuitUnknown
		for _, ms := range card.MainSuits {
			if ms.String() == s.Suit {
				suit = ms
			}
		}
		if suit == card.SuitUnknown {
			return fmt.Errorf("unknown discard suit %q", s.Suit)
		}
		*m = NewDiscardMove(suit)
	case MoveTypeResolve.String():
		*m = NewResolveMove(s.Count)
	default:
		return fmt.Errorf("unknown destination %q", s.To)
	}
	return nil
}
