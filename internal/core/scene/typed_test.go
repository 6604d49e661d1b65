package scene

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type aiBrain struct{ aggro bool }

func (a *aiBrain) TypeName() string { return "AIBrain" }

type inventory struct{ slots int }

func (i *inventory) TypeName() string { return "Inventory" }

func TestBehaviorOf(t *testing.T) {
	n := Create(&aiBrain{aggro: true})

	brain, ok := BehaviorOf[*aiBrain](n)
	require.True(t, ok)
	require.True(t, brain.aggro)

	_, ok = BehaviorOf[*inventory](n)
	require.False(t, ok)

	_, ok = BehaviorOf[*aiBrain](nil)
	require.False(t, ok)

	_, ok = BehaviorOf[*aiBrain](NewNode(NodeType, "plain"))
	require.False(t, ok)
}

func TestAncestorWithBehavior(t *testing.T) {
	root := Create(&aiBrain{})
	mid := NewNode(NodeType, "mid")
	leaf := Create(&inventory{slots: 4})
	root.AddChild(mid)
	mid.AddChild(leaf)

	inv, ok := AncestorWithBehavior[*inventory](leaf)
	require.True(t, ok)
	require.Equal(t, 4, inv.slots)

	brain, ok := AncestorWithBehavior[*aiBrain](leaf)
	require.True(t, ok)
	require.NotNil(t, brain)

	_, ok = AncestorWithBehavior[*aiBrain](nil)
	require.False(t, ok)
}

func TestImmediateChildWithBehavior(t *testing.T) {
	root := NewNode(NodeType, "root")
	child := Create(&inventory{slots: 2}, WithParent(root))
	Create(&aiBrain{}, WithParent(child))

	inv, ok := ImmediateChildWithBehavior[*inventory](root)
	require.True(t, ok)
	require.Equal(t, 2, inv.slots)

	_, ok = ImmediateChildWithBehavior[*aiBrain](root)
	require.False(t, ok, "grandchildren are out of scope")
}

func TestDescendantWithBehavior(t *testing.T) {
	root := NewNode(NodeType, "root")
	mid := NewNode(NodeType, "mid")
	root.AddChild(mid)
	Create(&aiBrain{aggro: true}, WithParent(mid))

	brain, ok := DescendantWithBehavior[*aiBrain](root)
	require.True(t, ok)
	require.True(t, brain.aggro)

	_, ok = DescendantWithBehavior[*inventory](root)
	require.False(t, ok)
}

func TestDescendantsWithBehavior(t *testing.T) {
	root := NewNode(NodeType, "root")
	first := Create(&aiBrain{}, WithParent(root))
	second := Create(&aiBrain{}, WithParent(root))

	brains := DescendantsWithBehavior[*aiBrain](root)
	require.Len(t, brains, 2)
	require.Same(t, first.Behavior(), brains[0])
	require.Same(t, second.Behavior(), brains[1])

	require.Empty(t, DescendantsWithBehavior[*inventory](root))
}
