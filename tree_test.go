package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildTree returns root(0,0) with children a(5,0) and b(0,5), and c(10,0) under a.
func buildTree(t *testing.T) (*Tree, [3]NodeID) {
	tree := NewTree(Point{0, 0}, Point{15, 0})
	a, err := tree.AddChild(tree.Root(), Point{5, 0})
	require.NoError(t, err)
	b, err := tree.AddChild(tree.Root(), Point{0, 5})
	require.NoError(t, err)
	c, err := tree.AddChild(a, Point{10, 0})
	require.NoError(t, err)
	return tree, [3]NodeID{a, b, c}
}

func TestNewTree(t *testing.T) {
	tree := NewTree(Point{1, 2}, Point{3, 4})
	require.Equal(t, 1, tree.Len())
	require.Equal(t, NodeID(0), tree.Root())
	require.Equal(t, tree.Root(), tree.Last())
	require.Equal(t, Point{3, 4}, tree.Goal())
	require.False(t, tree.Success())
	_, ok := tree.GoalID()
	require.False(t, ok)
	_, ok = tree.Parent(tree.Root())
	require.False(t, ok)
	require.NoError(t, tree.Validate())
}

func TestTreeLinks(t *testing.T) {
	tree, ids := buildTree(t)
	a, b, c := ids[0], ids[1], ids[2]

	require.Equal(t, 4, tree.Len())
	require.Equal(t, c, tree.Last())
	require.Equal(t, []NodeID{a, b}, tree.Children(tree.Root()))
	require.Equal(t, []NodeID{c}, tree.Children(a))
	require.Empty(t, tree.Children(b))

	parent, ok := tree.Parent(c)
	require.True(t, ok)
	require.Equal(t, a, parent)

	n, err := tree.Node(c)
	require.NoError(t, err)
	require.Equal(t, Point{10, 0}, n.Pos)

	_, err = tree.Node(99)
	require.ErrorIs(t, err, ErrUnknownNode)
	_, err = tree.AddChild(-3, Point{})
	require.ErrorIs(t, err, ErrUnknownNode)

	require.Equal(t, [][]Point{
		{{0, 0}, {5, 0}},
		{{0, 0}, {0, 5}},
		{{5, 0}, {10, 0}},
	}, tree.Segments())
	require.NoError(t, tree.Validate())
}

// TestTreeWalk verifies breadth-first order and early stop.
func TestTreeWalk(t *testing.T) {
	tree, ids := buildTree(t)

	var order []NodeID
	tree.Walk(func(id NodeID, _ TreeNode) bool {
		order = append(order, id)
		return true
	})
	require.Equal(t, []NodeID{tree.Root(), ids[0], ids[1], ids[2]}, order)

	order = order[:0]
	tree.Walk(func(id NodeID, _ TreeNode) bool {
		order = append(order, id)
		return len(order) < 2
	})
	require.Len(t, order, 2)
}

// TestConnectGoal verifies that the goal attaches exactly once and freezes the tree.
func TestConnectGoal(t *testing.T) {
	tree, ids := buildTree(t)

	id, err := tree.ConnectGoal(ids[2])
	require.NoError(t, err)
	require.True(t, tree.Success())
	gid, ok := tree.GoalID()
	require.True(t, ok)
	require.Equal(t, id, gid)
	require.Equal(t, tree.Goal(), tree.Pos(id))
	parent, _ := tree.Parent(id)
	require.Equal(t, ids[2], parent)

	again, err := tree.ConnectGoal(ids[1])
	require.ErrorIs(t, err, ErrAlreadyConnected)
	require.Equal(t, id, again)

	_, err = tree.AddChild(ids[1], Point{1, 1})
	require.ErrorIs(t, err, ErrAlreadyConnected)
	require.Equal(t, 5, tree.Len())
	require.NoError(t, tree.Validate())
}

// TestTreeValidate_Corrupt checks that broken links and cycles are reported.
func TestTreeValidate_Corrupt(t *testing.T) {
	cases := []struct {
		name  string
		nodes []TreeNode
	}{
		{"NoRoot", nil},
		{"RootWithParent", []TreeNode{{Parent: 0}}},
		{"ParentMismatch", []TreeNode{
			{Parent: NoParent, Children: []NodeID{1}},
			{Parent: 0, Children: []NodeID{2}},
			{Parent: 0},
		}},
		{"Cycle", []TreeNode{
			{Parent: NoParent},
			{Parent: 2, Children: []NodeID{2}},
			{Parent: 1, Children: []NodeID{1}},
		}},
		{"DuplicateChild", []TreeNode{
			{Parent: NoParent, Children: []NodeID{1, 1}},
			{Parent: 0},
		}},
		{"OrphanNode", []TreeNode{
			{Parent: NoParent},
			{Parent: NoParent},
		}},
		{"RootAsChild", []TreeNode{
			{Parent: NoParent, Children: []NodeID{1}},
			{Parent: 0, Children: []NodeID{0}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := &Tree{nodes: tc.nodes, positions: make([]Point, len(tc.nodes)), goalID: NoParent}
			require.ErrorIs(t, tree.Validate(), ErrCorruptTree)
		})
	}
}

func TestTreePositionsCopy(t *testing.T) {
	tree, ids := buildTree(t)
	positions := tree.Positions()
	require.Len(t, positions, 4)
	positions[ids[0]] = Point{99, 99}
	require.Equal(t, Point{5, 0}, tree.Pos(ids[0]))
	require.Equal(t, Point{5, 0}, tree.Positions()[ids[0]])
}

func TestTreeValidate_GoalHandle(t *testing.T) {
	tree := NewTree(Point{0, 0}, Point{4, 0})
	_, err := tree.ConnectGoal(tree.Root())
	require.NoError(t, err)

	tree.goal = Point{9, 9}
	require.ErrorIs(t, tree.Validate(), ErrCorruptTree)
}
