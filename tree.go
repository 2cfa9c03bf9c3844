package main

import (
	"fmt"
)

// NodeID addresses a node inside a Tree's arena
type NodeID int

// NoParent marks the root's parent handle
const NoParent NodeID = -1

// TreeNode is a grown node: its position, a back-reference to its parent and the
// handles of its children.
type TreeNode struct {
	Pos      Point
	Parent   NodeID
	Children []NodeID
}

// Tree owns every node reachable from its root. The goal is held outside the arena
// until ConnectGoal inserts it; nodes are only ever added.
type Tree struct {
	nodes     []TreeNode
	positions []Point // parallel to nodes, scanned by the nearest search
	goal      Point
	goalID    NodeID
	success   bool
}

// NewTree creates a tree holding only the root at start, with a detached goal
func NewTree(start, goal Point) *Tree {
	t := &Tree{goal: goal, goalID: NoParent}
	t.nodes = append(t.nodes, TreeNode{Pos: start, Parent: NoParent})
	t.positions = append(t.positions, start)
	return t
}

// Root is the handle of the start node
func (t *Tree) Root() NodeID { return 0 }

// Len is the number of nodes in the arena, root and connected goal included
func (t *Tree) Len() int { return len(t.nodes) }

// Goal returns the goal position
func (t *Tree) Goal() Point { return t.goal }

// GoalID returns the goal's handle once connected
func (t *Tree) GoalID() (NodeID, bool) {
	return t.goalID, t.success
}

// Success reports whether the goal has been attached
func (t *Tree) Success() bool { return t.success }

// Last is the most recently inserted node
func (t *Tree) Last() NodeID { return NodeID(len(t.nodes) - 1) }

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns a copy of the node; the children slice must not be modified.
func (t *Tree) Node(id NodeID) (TreeNode, error) {
	if !t.valid(id) {
		return TreeNode{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return t.nodes[id], nil
}

// Pos returns a node's position; id must be valid
func (t *Tree) Pos(id NodeID) Point {
	return t.nodes[id].Pos
}

// Parent returns a node's parent; ok is false for the root
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.nodes[id].Parent
	return p, p != NoParent
}

// Children returns a node's children in insertion order
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].Children
}

// Positions returns a copy of the node positions in insertion order
func (t *Tree) Positions() []Point {
	return append([]Point(nil), t.positions...)
}

// AddChild appends a new node at pos under parent and returns its handle
func (t *Tree) AddChild(parent NodeID, pos Point) (NodeID, error) {
	if !t.valid(parent) {
		return NoParent, fmt.Errorf("%w: %d", ErrUnknownNode, parent)
	}
	if t.success {
		return NoParent, ErrAlreadyConnected
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, TreeNode{Pos: pos, Parent: parent})
	t.positions = append(t.positions, pos)
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id, nil
}

// ConnectGoal inserts the goal as a child of parent and marks the tree successful.
// It may succeed only once.
func (t *Tree) ConnectGoal(parent NodeID) (NodeID, error) {
	if t.success {
		return t.goalID, ErrAlreadyConnected
	}
	id, err := t.AddChild(parent, t.goal)
	if err != nil {
		return NoParent, err
	}
	t.goalID = id
	t.success = true
	return id, nil
}

// Walk visits nodes breadth-first from the root; returning false stops the walk
func (t *Tree) Walk(visit func(id NodeID, n TreeNode) bool) {
	queue := []NodeID{t.Root()}
	for qi := 0; qi < len(queue); qi++ {
		id := queue[qi]
		if !visit(id, t.nodes[id]) {
			return
		}
		queue = append(queue, t.nodes[id].Children...)
	}
}

// Segments returns every parent→child edge as a two-point line
func (t *Tree) Segments() [][]Point {
	lines := make([][]Point, 0, len(t.nodes)-1)
	for _, n := range t.nodes[1:] {
		lines = append(lines, []Point{t.nodes[n.Parent].Pos, n.Pos})
	}
	return lines
}

// Validate checks the structural invariants: a single root, parent and children links
// that agree, and parent chains that reach the root without cycles.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 || t.nodes[0].Parent != NoParent {
		return fmt.Errorf("%w: missing root", ErrCorruptTree)
	}
	if len(t.positions) != len(t.nodes) {
		return fmt.Errorf("%w: position index out of sync", ErrCorruptTree)
	}

	childOf := make([]int, len(t.nodes))
	for i := range childOf {
		childOf[i] = -1
	}
	for i, n := range t.nodes {
		for _, c := range n.Children {
			if !t.valid(c) || c == 0 {
				return fmt.Errorf("%w: node %d has invalid child %d", ErrCorruptTree, i, c)
			}
			if childOf[c] != -1 {
				return fmt.Errorf("%w: node %d listed as child twice", ErrCorruptTree, c)
			}
			childOf[c] = i
		}
	}
	for i, n := range t.nodes[1:] {
		id := i + 1
		if !t.valid(n.Parent) {
			return fmt.Errorf("%w: node %d has no valid parent", ErrCorruptTree, id)
		}
		if int(n.Parent) != childOf[id] {
			return fmt.Errorf("%w: node %d parent %d disagrees with children lists", ErrCorruptTree, id, n.Parent)
		}
	}

	// Every chain must reach the root within Len steps.
	for i := range t.nodes {
		steps := 0
		for id := NodeID(i); id != t.Root(); id = t.nodes[id].Parent {
			steps++
			if steps > len(t.nodes) {
				return fmt.Errorf("%w: cycle through node %d", ErrCorruptTree, i)
			}
		}
	}

	if t.success {
		if !t.valid(t.goalID) || !t.nodes[t.goalID].Pos.Equal(t.goal) {
			return fmt.Errorf("%w: goal handle does not hold the goal", ErrCorruptTree)
		}
	}
	return nil
}
