package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// treeNodeRecord is the serialised form of a TreeNode
type treeNodeRecord struct {
	ID       NodeID   `json:"id"`
	Point    Point    `json:"point"`
	Parent   NodeID   `json:"parent"`
	Children []NodeID `json:"children"`
}

// treeSnapshot is the on-disk form of a Tree
type treeSnapshot struct {
	Nodes   []treeNodeRecord `json:"nodes"`
	Goal    Point            `json:"goal"`
	GoalID  NodeID           `json:"goalId"`
	Success bool             `json:"success"`
}

// MarshalJSON encodes the arena, the goal and the success flag
func (t *Tree) MarshalJSON() ([]byte, error) {
	snap := treeSnapshot{
		Nodes:   make([]treeNodeRecord, len(t.nodes)),
		Goal:    t.goal,
		GoalID:  t.goalID,
		Success: t.success,
	}
	for i, n := range t.nodes {
		children := n.Children
		if children == nil {
			children = []NodeID{}
		}
		snap.Nodes[i] = treeNodeRecord{ID: NodeID(i), Point: n.Pos, Parent: n.Parent, Children: children}
	}
	return json.Marshal(snap)
}

// UnmarshalJSON restores a tree and re-checks its invariants
func (t *Tree) UnmarshalJSON(data []byte) error {
	var snap treeSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	restored := Tree{
		nodes:     make([]TreeNode, len(snap.Nodes)),
		positions: make([]Point, len(snap.Nodes)),
		goal:      snap.Goal,
		goalID:    snap.GoalID,
		success:   snap.Success,
	}
	if !snap.Success {
		restored.goalID = NoParent
	}
	for i, rec := range snap.Nodes {
		if rec.ID != NodeID(i) {
			return fmt.Errorf("%w: node %d stored at position %d", ErrCorruptTree, rec.ID, i)
		}
		restored.nodes[i] = TreeNode{Pos: rec.Point, Parent: rec.Parent, Children: rec.Children}
		restored.positions[i] = rec.Point
	}
	if err := restored.Validate(); err != nil {
		return err
	}

	*t = restored
	return nil
}

// SaveTree serializes and saves the tree to a JSON file
func SaveTree(tree *Tree, filename string) error {
	log.Printf("💾 Saving RRT to %s...\n", filename)

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ Tree saved (%d bytes)\n", len(data))
	return nil
}

// LoadTree deserializes and loads the tree from a JSON file
func LoadTree(filename string) (*Tree, error) {
	log.Printf("📂 Loading RRT from %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var tree Tree
	err = json.Unmarshal(data, &tree)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal tree: %w", err)
	}

	log.Printf("   ✅ Tree loaded: %d nodes\n", tree.Len())
	return &tree, nil
}
