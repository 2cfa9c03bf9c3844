package main

import "errors"

var (
	// ErrEmptyGrid indicates the input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("rrt: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("rrt: all grid rows must have the same length")
	// ErrInvalidRadius indicates a negative clearance radius.
	ErrInvalidRadius = errors.New("rrt: clearance radius must be non-negative")
	// ErrEmptyTree is returned by the nearest search on an empty node set.
	// The root is always present, so seeing it means a broken invariant.
	ErrEmptyTree = errors.New("rrt: nearest search on empty node set")
	// ErrInvalidParams wraps every parameter validation failure.
	ErrInvalidParams = errors.New("rrt: invalid planner parameters")
	// ErrOutOfBounds indicates a start or goal outside the map.
	ErrOutOfBounds = errors.New("rrt: position outside map bounds")
	// ErrStartBlocked indicates the start lies in an obstacle cell.
	ErrStartBlocked = errors.New("rrt: start position is inside an obstacle")
	// ErrGoalBlocked indicates the goal lies in an obstacle cell.
	ErrGoalBlocked = errors.New("rrt: goal position is inside an obstacle")
	// ErrAlreadyConnected is returned when the goal is attached twice.
	ErrAlreadyConnected = errors.New("rrt: goal already connected")
	// ErrUnknownNode indicates a node handle outside the arena.
	ErrUnknownNode = errors.New("rrt: unknown node")
	// ErrEmptyObstacle indicates an obstacle polygon without vertices.
	ErrEmptyObstacle = errors.New("rrt: obstacle polygon has no vertices")
	// ErrCorruptTree indicates a tree that violates its structural invariants.
	ErrCorruptTree = errors.New("rrt: corrupt tree")
)
