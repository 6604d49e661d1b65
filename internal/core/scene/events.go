package scene

// Lifecycle event types published on a tree's bus.
const (
	EventEnterTree  = "node.enter_tree"
	EventExitTree   = "node.exit_tree"
	EventRenamed    = "node.renamed"
	EventReparented = "node.reparented"
)

// TreeEvent is the payload carried by every lifecycle event.
type TreeEvent struct {
	Node      *Node
	OldParent *Node  // set for EventReparented
	OldName   string // set for EventRenamed
}
