package scene

import (
	"github.com/zeusync/scenekit/internal/core/events/bus"
	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/scene/group"
)

// Tree marks a node hierarchy as live. Attaching a node under a live root
// fires enter-tree processing (one-shot hooks, behavior callbacks, bus
// events) for the attached subtree; detaching fires exit-tree processing.
type Tree struct {
	root   *Node
	bus    bus.EventBus
	groups *group.Index[*Node]
	logger log.Log
}

type TreeOption func(*Tree)

// WithBus replaces the tree's event bus.
func WithBus(b bus.EventBus) TreeOption {
	return func(t *Tree) { t.bus = b }
}

// WithLogger replaces the tree's logger.
func WithLogger(l log.Log) TreeOption {
	return func(t *Tree) { t.logger = l }
}

// NewTree makes root the live root of a new tree. A nil root gets a plain
// node named "root".
func NewTree(root *Node, opts ...TreeOption) *Tree {
	if root == nil {
		root = NewNode(NodeType, "root")
	}
	t := &Tree{
		root:   root,
		bus:    bus.New(),
		groups: group.NewIndex[*Node](0),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.New(log.LevelInfo)
	}

	// Nodes leaving the tree drop out of every group they were added to.
	_, _ = t.bus.Subscribe(EventExitTree, func(e bus.Event) error {
		if te, ok := e.Data().(TreeEvent); ok {
			t.groups.RemoveAll(te.Node)
		}
		return nil
	})

	t.enter(root)
	return t
}

func (t *Tree) Root() *Node {
	return t.root
}

// Bus exposes the lifecycle event bus for observers.
func (t *Tree) Bus() bus.EventBus {
	return t.bus
}

// AddToGroup adds a node to a named group. Membership ends when the node
// leaves the tree.
func (t *Tree) AddToGroup(n *Node, name string) {
	if n == nil || n.tree != t {
		return
	}
	t.groups.Add(name, n)
}

// RemoveFromGroup removes a node from a named group.
func (t *Tree) RemoveFromGroup(n *Node, name string) {
	if n == nil {
		return
	}
	t.groups.Remove(name, n)
}

// NodesInGroup returns all current members of a named group, in no
// particular order.
func (t *Tree) NodesInGroup(name string) []*Node {
	return t.groups.In(name).Collect()
}

// GroupsOf returns the groups the node currently belongs to.
func (t *Tree) GroupsOf(n *Node) []string {
	if n == nil {
		return nil
	}
	return t.groups.GroupsOf(n)
}

// enter marks the subtree rooted at n as live, pre-order: each node fires
// its one-shot hooks and behavior callback, then publishes its enter event,
// before its children are processed.
func (t *Tree) enter(n *Node) {
	n.tree = t
	n.fireEnterHooks()
	if h, ok := n.behavior.(EnterTreeHandler); ok {
		h.OnEnterTree(n)
	}
	t.publish(EventEnterTree, TreeEvent{Node: n})
	for _, c := range n.children {
		t.enter(c)
	}
}

// exit unmarks the subtree rooted at n, children first.
func (t *Tree) exit(n *Node) {
	for _, c := range n.children {
		t.exit(c)
	}
	if h, ok := n.behavior.(ExitTreeHandler); ok {
		h.OnExitTree(n)
	}
	t.publish(EventExitTree, TreeEvent{Node: n})
	n.tree = nil
}

func (t *Tree) publish(eventType string, te TreeEvent) {
	if err := t.bus.Publish(bus.NewEvent(eventType, te.Node.Path(), te)); err != nil {
		t.logger.Warn("lifecycle event handler failed",
			log.String("event", eventType),
			log.String("node", te.Node.Path()),
			log.Error(err))
	}
}
