package scene

import "github.com/google/uuid"

// HookID identifies a registered one-shot enter-tree hook.
type HookID string

type enterHook struct {
	id HookID
	fn func(*Node)
}

// OnEnterTree registers fn to run exactly once, strictly after the node is
// attached into a live tree. If the node is already in a tree, fn runs
// immediately. A node that is discarded without ever being parented keeps its
// hooks dormant forever; use CancelEnterHook or DropEnterHooks to release
// them explicitly.
func (n *Node) OnEnterTree(fn func(*Node)) HookID {
	id := HookID(uuid.NewString())
	if n.tree != nil {
		fn(n)
		return id
	}
	n.hooks = append(n.hooks, &enterHook{id: id, fn: fn})
	return id
}

// CancelEnterHook removes a pending hook. It reports whether the hook was
// still pending.
func (n *Node) CancelEnterHook(id HookID) bool {
	for i, h := range n.hooks {
		if h.id == id {
			n.hooks = append(n.hooks[:i], n.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// PendingEnterHooks returns the number of registered hooks that have not
// fired yet. A non-zero count on a node about to be discarded indicates a
// dormant subscription leak.
func (n *Node) PendingEnterHooks() int {
	return len(n.hooks)
}

// DropEnterHooks releases all pending hooks without running them.
func (n *Node) DropEnterHooks() {
	n.hooks = nil
}

// fireEnterHooks runs and clears all pending hooks, in registration order.
func (n *Node) fireEnterHooks() {
	hooks := n.hooks
	n.hooks = nil
	for _, h := range hooks {
		h.fn(n)
	}
}
