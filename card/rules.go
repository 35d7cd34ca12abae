package card

// IsMovableRun reports whether stack[start:] is a run that can be picked up
// as a unit, and how many cards it holds. Walking upward, each card must be
// exactly one lower than the one beneath it and of a different suit. A
// token can only ever be moved alone.
func IsMovableRun(stack []Card, start int) (bool, int) {
	if start < 0 || start >= len(stack) {
		return false, 0
	}
	cur := stack[start]
	for i := start + 1; i < len(stack); i++ {
		next := stack[i]
		if next.Value == TokenValue || cur.Value == TokenValue {
			return false, 0
		}
		if next.Suit == cur.Suit || next.Value != cur.Value-1 {
			return false, 0
		}
		cur = next
	}
	return true, len(stack) - start
}

// CanPlace reports whether c may be put on top of target.
func CanPlace(c Card, target []Card) bool {
	if len(target) == 0 {
		return true
	}
	top := target[len(target)-1]
	if top.Value == TokenValue || c.Value == TokenValue {
		return false
	}
	return top.Suit != c.Suit && top.Value == c.Value+1
}

// CanRetire reports whether c is the next card for a foundation currently at
// foundation. Callers must only ask for single cards.
func CanRetire(c Card, foundation int) bool {
	return c.IsNumbered() && int(c.Value) == foundation+1
}
