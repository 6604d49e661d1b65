package inspect

import "github.com/zeusync/scenekit/internal/core/scene"

// Snapshot is a JSON-friendly copy of one node and its subtree, captured in
// depth-first pre-order.
type Snapshot struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Owner    string     `json:"owner,omitempty"`
	Groups   []string   `json:"groups,omitempty"`
	Children []Snapshot `json:"children,omitempty"`
}

// Capture copies the tree's current structure into a Snapshot. The caller is
// responsible for not mutating the tree concurrently.
func Capture(tree *scene.Tree) Snapshot {
	return captureNode(tree, tree.Root())
}

func captureNode(tree *scene.Tree, n *scene.Node) Snapshot {
	s := Snapshot{
		ID:     n.ID().String(),
		Name:   n.Name(),
		Type:   n.Type().Name(),
		Groups: tree.GroupsOf(n),
	}
	if owner := n.Owner(); owner != nil {
		s.Owner = owner.Name()
	}
	for _, child := range n.Children() {
		s.Children = append(s.Children, captureNode(tree, child))
	}
	return s
}

// NodeCount returns the number of nodes in the snapshot.
func (s Snapshot) NodeCount() int {
	n := 1
	for _, c := range s.Children {
		n += c.NodeCount()
	}
	return n
}
