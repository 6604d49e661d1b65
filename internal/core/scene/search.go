package scene

import "github.com/zeusync/scenekit/pkg/sequence"

// Predicate matches a node by dynamic type and, optionally, exact name. A nil
// Type matches any type; an empty Name matches any name.
type Predicate struct {
	Type *TypeDescriptor
	Name string
}

// Match builds a type-only predicate.
func Match(t *TypeDescriptor) Predicate {
	return Predicate{Type: t}
}

// MatchNamed builds a type-and-name predicate.
func MatchNamed(t *TypeDescriptor, name string) Predicate {
	return Predicate{Type: t, Name: name}
}

// Matches reports whether n satisfies the predicate.
func (p Predicate) Matches(n *Node) bool {
	if n == nil {
		return false
	}
	if p.Type != nil && !n.Is(p.Type) {
		return false
	}
	return p.Name == "" || n.name == p.Name
}

// Ancestor walks from start upward through parent links, testing each node
// including start itself, and returns the first match. A nil start or no
// match returns nil; not found is a normal outcome, never an error.
// Runs in O(depth).
func Ancestor(start *Node, p Predicate) *Node {
	for n := start; n != nil; n = n.parent {
		if p.Matches(n) {
			return n
		}
	}
	return nil
}

// ImmediateChild tests start itself first, then scans its direct children
// only, returning the first match or nil.
func ImmediateChild(start *Node, p Predicate) *Node {
	if start == nil {
		return nil
	}
	if p.Matches(start) {
		return start
	}
	for _, child := range start.children {
		if p.Matches(child) {
			return child
		}
	}
	return nil
}

// Descendant searches the whole subtree rooted at start in depth-first
// pre-order and returns the first match or nil. Runs in O(subtree size).
func Descendant(start *Node, p Predicate) *Node {
	if start == nil {
		return nil
	}
	if p.Matches(start) {
		return start
	}
	for _, child := range start.children {
		if found := Descendant(child, p); found != nil {
			return found
		}
	}
	return nil
}

// Descendants yields every node in the subtree rooted at start, including
// start itself, whose type satisfies typ, in depth-first pre-order. The
// iterator walks the live tree: it is single-pass and must be consumed
// before the tree is mutated. A nil start yields nothing.
func Descendants(start *Node, typ *TypeDescriptor) *sequence.Iterator[*Node] {
	return sequence.FromSeq(func(yield func(*Node) bool) {
		collect(start, typ, yield)
	})
}

func collect(n *Node, typ *TypeDescriptor, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if typ == nil || n.Is(typ) {
		if !yield(n) {
			return false
		}
	}
	for _, child := range n.children {
		if !collect(child, typ, yield) {
			return false
		}
	}
	return true
}
