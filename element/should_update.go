package element

// ShouldUpdate reports whether the instance rendered for prev can be updated
// in place with next, as opposed to being unmounted and replaced.
//
// Two empty nodes match, as do any two primitives regardless of value.
// Composites match when their types are equal. Keys are not compared: callers
// diffing a keyed collection have already paired children by key, and a lone
// child has no siblings to tell apart.
func ShouldUpdate(prev, next Node) bool {
	prevKind, nextKind := KindOf(prev), KindOf(next)
	if prevKind == KindEmpty || nextKind == KindEmpty {
		return prevKind == nextKind
	}

	switch prevKind {
	case KindPrimitive:
		return nextKind == KindPrimitive
	case KindComposite:
		if nextKind != KindComposite {
			return false
		}
		return prev.(*Composite).Type == next.(*Composite).Type
	default:
		return false
	}
}
