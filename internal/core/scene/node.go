package scene

import (
	"strings"

	"github.com/google/uuid"
)

// Node is an element of a scene tree: a named, typed object with a single
// nullable parent, ordered children, and an optional owner relation used for
// persistence scoping. Nodes are not safe for concurrent mutation; the tree
// is expected to be driven from the host's main loop.
type Node struct {
	id       uuid.UUID
	name     string
	typ      *TypeDescriptor
	parent   *Node
	children []*Node
	owner    *Node
	behavior Behavior
	tree     *Tree
	hooks    []*enterHook
}

// NewNode creates a detached node of the given type. A nil type defaults to
// NodeType; an empty name defaults to the type name.
func NewNode(typ *TypeDescriptor, name string) *Node {
	if typ == nil {
		typ = NodeType
	}
	if name == "" {
		name = typ.Name()
	}
	return &Node{
		id:   uuid.New(),
		name: name,
		typ:  typ,
	}
}

func (n *Node) ID() uuid.UUID {
	return n.id
}

func (n *Node) Name() string {
	return n.name
}

// SetName renames the node. When the node is part of a live tree, a renamed
// event is published on the tree bus.
func (n *Node) SetName(name string) {
	if name == "" || name == n.name {
		return
	}
	old := n.name
	n.name = name
	if n.tree != nil {
		n.tree.publish(EventRenamed, TreeEvent{Node: n, OldName: old})
	}
}

func (n *Node) Type() *TypeDescriptor {
	return n.typ
}

// Is reports whether the node's dynamic type satisfies the descriptor.
func (n *Node) Is(t *TypeDescriptor) bool {
	return n.typ.Is(t)
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the ordered child list.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the child at index i, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// AddChild appends child to the node's child list, detaching it from any
// previous parent first so the single-parent invariant holds. Attaching into
// a live tree triggers enter-tree processing for the whole moved subtree.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	oldParent := child.parent
	if oldParent != nil {
		oldParent.detach(child)
	}
	child.parent = n
	n.children = append(n.children, child)

	switch {
	case n.tree != nil && child.tree == nil:
		n.tree.enter(child)
	case n.tree != nil && child.tree == n.tree:
		n.tree.publish(EventReparented, TreeEvent{Node: child, OldParent: oldParent})
	case n.tree != nil && child.tree != nil:
		// Moving between two live trees: leave the old one first.
		child.tree.exit(child)
		n.tree.enter(child)
	case n.tree == nil && child.tree != nil:
		child.tree.exit(child)
	}
}

// RemoveChild detaches child from the node. A child leaving a live tree
// receives exit-tree processing for its whole subtree.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	n.detach(child)
	child.parent = nil
	if child.tree != nil {
		child.tree.exit(child)
	}
}

// Remove detaches the node from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// detach unlinks child from the children slice without lifecycle processing.
func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Owner returns the node's owner relation, distinct from its parent.
func (n *Node) Owner() *Node {
	return n.owner
}

func (n *Node) SetOwner(owner *Node) {
	n.owner = owner
}

// Behavior returns the behavior attached at construction, or nil.
func (n *Node) Behavior() Behavior {
	return n.behavior
}

// InTree reports whether the node is part of a live tree.
func (n *Node) InTree() bool {
	return n.tree != nil
}

// Tree returns the live tree the node belongs to, or nil when detached.
func (n *Node) Tree() *Tree {
	return n.tree
}

// Root returns the topmost ancestor, which may be the node itself.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Path returns the /-separated name path from the root to this node, for
// diagnostics only: names are not guaranteed unique.
func (n *Node) Path() string {
	var names []string
	for cur := n; cur != nil; cur = cur.parent {
		names = append(names, cur.name)
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(names[i])
	}
	return b.String()
}
