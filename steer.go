package main

import "math/rand/v2"

// DefaultMinStep is the distance below which steering gives up
const DefaultMinStep = 3.0

// SteerOutcome says whether a steering attempt produced a node and, if not, why
type SteerOutcome int

const (
	// SteerOK means a node was appended
	SteerOK SteerOutcome = iota
	// SteerTooClose means the target was nearer than the minimum step
	SteerTooClose
	// SteerBlocked means the step segment crosses an obstacle or leaves the map
	SteerBlocked
)

func (o SteerOutcome) String() string {
	switch o {
	case SteerOK:
		return "ok"
	case SteerTooClose:
		return "too-close"
	case SteerBlocked:
		return "blocked"
	}
	return "unknown"
}

// Steerer grows the tree by a bounded step from an existing node toward a target
type Steerer struct {
	Map      *OccupancyMap
	StepSize float64
	MinStep  float64
	// Adaptive draws each step uniformly from [max(MinStep, StepSize/5), StepSize].
	Adaptive bool
	Parallel Parallelism
}

// stepLength returns the distance to advance for one attempt
func (s Steerer) stepLength(rng *rand.Rand) float64 {
	if !s.Adaptive {
		return s.StepSize
	}
	lo := max(s.MinStep, s.StepSize/5)
	if lo >= s.StepSize {
		return s.StepSize
	}
	return lo + rng.Float64()*(s.StepSize-lo)
}

// Steer advances from near toward target and, when the short segment is clear,
// appends the new node under near.
func (s Steerer) Steer(t *Tree, near NodeID, target Point, rng *rand.Rand) (NodeID, SteerOutcome) {
	from := t.Pos(near)
	diff := target.Sub(from)
	dist := diff.Length()
	if dist < s.MinStep || dist == 0 {
		return NoParent, SteerTooClose
	}

	to := from.Add(diff.Scale(s.stepLength(rng) / dist))
	if SegmentBlocked(s.Map, from, to, s.Parallel.For(segmentSamples(from, to)+1)) {
		return NoParent, SteerBlocked
	}

	id, err := t.AddChild(near, to)
	if err != nil {
		// only after the goal is connected
		return NoParent, SteerBlocked
	}
	return id, SteerOK
}
