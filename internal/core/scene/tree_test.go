package scene

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenekit/internal/core/events/bus"
)

func collectEvents(t *testing.T, b bus.EventBus, eventType string, into *[]string) {
	t.Helper()
	_, err := b.Subscribe(eventType, func(e bus.Event) error {
		te := e.Data().(TreeEvent)
		*into = append(*into, te.Node.Name())
		return nil
	})
	require.NoError(t, err)
}

func TestNewTreeEntersRoot(t *testing.T) {
	root := NewNode(NodeType, "Root")
	tree := NewTree(root)

	require.Same(t, root, tree.Root())
	require.True(t, root.InTree())
	require.Same(t, tree, root.Tree())
}

func TestAttachFiresEnterEventsPreOrder(t *testing.T) {
	tree := NewTree(nil)
	var entered []string
	collectEvents(t, tree.Bus(), EventEnterTree, &entered)

	parent := NewNode(NodeType, "parent")
	child := NewNode(NodeType, "child")
	grandchild := NewNode(NodeType, "grandchild")
	child.AddChild(grandchild)
	parent.AddChild(child)

	require.Empty(t, entered, "detached assembly must not fire events")

	tree.Root().AddChild(parent)
	require.Equal(t, []string{"parent", "child", "grandchild"}, entered)
	require.True(t, grandchild.InTree())
}

func TestDetachFiresExitEventsChildrenFirst(t *testing.T) {
	tree := NewTree(nil)
	parent := NewNode(NodeType, "parent")
	child := NewNode(NodeType, "child")
	parent.AddChild(child)
	tree.Root().AddChild(parent)

	var exited []string
	collectEvents(t, tree.Bus(), EventExitTree, &exited)

	parent.Remove()
	require.Equal(t, []string{"child", "parent"}, exited)
	require.False(t, parent.InTree())
	require.False(t, child.InTree())
	require.Nil(t, parent.Parent())
}

func TestReparentWithinTree(t *testing.T) {
	tree := NewTree(nil)
	a := NewNode(NodeType, "a")
	b := NewNode(NodeType, "b")
	n := NewNode(NodeType, "n")
	tree.Root().AddChild(a)
	tree.Root().AddChild(b)
	a.AddChild(n)

	var reparented []string
	var entered []string
	collectEvents(t, tree.Bus(), EventReparented, &reparented)
	collectEvents(t, tree.Bus(), EventEnterTree, &entered)

	b.AddChild(n)
	require.Same(t, b, n.Parent())
	require.Empty(t, a.Children())
	require.Equal(t, []string{"n"}, reparented)
	require.Empty(t, entered, "moving within one tree is not a tree entry")
}

func TestMoveBetweenLiveTrees(t *testing.T) {
	t1 := NewTree(NewNode(NodeType, "r1"))
	t2 := NewTree(NewNode(NodeType, "r2"))

	n := NewNode(enemyType, "mover")
	child := NewNode(NodeType, "cargo")
	n.AddChild(child)
	t1.Root().AddChild(n)
	t1.AddToGroup(n, "movers")

	var exited []string
	var entered []string
	collectEvents(t, t1.Bus(), EventExitTree, &exited)
	collectEvents(t, t2.Bus(), EventEnterTree, &entered)

	t2.Root().AddChild(n)

	require.Same(t, t2, n.Tree())
	require.Same(t, t2, child.Tree())
	require.Equal(t, []string{"cargo", "mover"}, exited, "old tree must see a children-first exit")
	require.Equal(t, []string{"mover", "cargo"}, entered, "new tree must see a pre-order enter")
	require.Empty(t, t1.NodesInGroup("movers"), "old-tree group membership must not survive the move")
}

func TestRenamePublishesEvent(t *testing.T) {
	tree := NewTree(nil)
	n := NewNode(NodeType, "old")
	tree.Root().AddChild(n)

	var renamed []TreeEvent
	_, err := tree.Bus().Subscribe(EventRenamed, func(e bus.Event) error {
		renamed = append(renamed, e.Data().(TreeEvent))
		return nil
	})
	require.NoError(t, err)

	n.SetName("new")
	require.Len(t, renamed, 1)
	require.Equal(t, "old", renamed[0].OldName)
	require.Equal(t, "new", n.Name())

	n.SetName("new") // no-op rename
	require.Len(t, renamed, 1)
}

func TestGroups(t *testing.T) {
	tree := NewTree(nil)
	grunt := NewNode(enemyType, "grunt")
	boss := NewNode(bossType, "boss")
	tree.Root().AddChild(grunt)
	tree.Root().AddChild(boss)

	tree.AddToGroup(grunt, "enemies")
	tree.AddToGroup(boss, "enemies")
	tree.AddToGroup(boss, "bosses")

	require.ElementsMatch(t, []*Node{grunt, boss}, tree.NodesInGroup("enemies"))
	require.ElementsMatch(t, []string{"enemies", "bosses"}, tree.GroupsOf(boss))

	t.Run("detached node cannot join", func(t *testing.T) {
		stray := NewNode(enemyType, "stray")
		tree.AddToGroup(stray, "enemies")
		require.Len(t, tree.NodesInGroup("enemies"), 2)
	})

	t.Run("leaving the tree leaves all groups", func(t *testing.T) {
		boss.Remove()
		require.ElementsMatch(t, []*Node{grunt}, tree.NodesInGroup("enemies"))
		require.Empty(t, tree.NodesInGroup("bosses"))
		require.Empty(t, tree.GroupsOf(boss))
	})

	t.Run("explicit removal", func(t *testing.T) {
		tree.RemoveFromGroup(grunt, "enemies")
		require.Empty(t, tree.NodesInGroup("enemies"))
	})
}

type watcher struct {
	ownerAtEnter *Node
	exits        int
}

func (w *watcher) TypeName() string    { return "Watcher" }
func (w *watcher) OnEnterTree(n *Node) { w.ownerAtEnter = n.Owner() }
func (w *watcher) OnExitTree(n *Node)  { w.exits++ }

func TestBehaviorCallbacksSeeBoundOwner(t *testing.T) {
	tree := NewTree(nil)
	owner := tree.Root()

	w := &watcher{}
	n := Create(w, WithOwner(owner), WithParent(tree.Root()))

	// The deferred owner hook must run before the behavior's enter callback.
	require.Same(t, owner, w.ownerAtEnter)

	n.Remove()
	require.Equal(t, 1, w.exits)
}
