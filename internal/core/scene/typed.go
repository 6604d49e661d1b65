package scene

// Typed lookup over attached behaviors. Go has no dynamic class hierarchy to
// downcast through, so the polymorphic "node is a Foo" question is answered
// either by TypeDescriptor chains (see Predicate) or, for behavior-driven
// nodes, by the generic helpers below.

// BehaviorOf returns the behavior attached to n as T.
func BehaviorOf[T Behavior](n *Node) (T, bool) {
	var zero T
	if n == nil || n.behavior == nil {
		return zero, false
	}
	b, ok := n.behavior.(T)
	return b, ok
}

// AncestorWithBehavior walks from start upward, including start itself, and
// returns the first behavior of type T.
func AncestorWithBehavior[T Behavior](start *Node) (T, bool) {
	for n := start; n != nil; n = n.parent {
		if b, ok := BehaviorOf[T](n); ok {
			return b, true
		}
	}
	var zero T
	return zero, false
}

// ImmediateChildWithBehavior tests start itself, then its direct children
// only, and returns the first behavior of type T.
func ImmediateChildWithBehavior[T Behavior](start *Node) (T, bool) {
	var zero T
	if start == nil {
		return zero, false
	}
	if b, ok := BehaviorOf[T](start); ok {
		return b, true
	}
	for _, child := range start.children {
		if b, ok := BehaviorOf[T](child); ok {
			return b, true
		}
	}
	return zero, false
}

// DescendantWithBehavior searches the subtree rooted at start in depth-first
// pre-order and returns the first behavior of type T.
func DescendantWithBehavior[T Behavior](start *Node) (T, bool) {
	var zero T
	if start == nil {
		return zero, false
	}
	if b, ok := BehaviorOf[T](start); ok {
		return b, true
	}
	for _, child := range start.children {
		if b, ok := DescendantWithBehavior[T](child); ok {
			return b, true
		}
	}
	return zero, false
}

// DescendantsWithBehavior collects every behavior of type T in the subtree
// rooted at start, in depth-first pre-order.
func DescendantsWithBehavior[T Behavior](start *Node) []T {
	var out []T
	Descendants(start, nil).Each(func(n *Node) {
		if b, ok := BehaviorOf[T](n); ok {
			out = append(out, b)
		}
	})
	return out
}
