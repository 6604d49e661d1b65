package scene

// Behavior is a reusable block of logic attachable to a node at construction.
// TypeName is used as the node's default name and for typed behavior lookup.
type Behavior interface {
	TypeName() string
}

// EnterTreeHandler is implemented by behaviors that want a notification when
// their node enters a live tree. It runs after any pending one-shot enter
// hooks, so deferred state such as the owner relation is already bound.
type EnterTreeHandler interface {
	OnEnterTree(n *Node)
}

// ExitTreeHandler is implemented by behaviors that want a notification when
// their node leaves a live tree.
type ExitTreeHandler interface {
	OnExitTree(n *Node)
}
