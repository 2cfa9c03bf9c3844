package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"
)

// State is the growth engine's state
type State int

const (
	// Growing is the initial state
	Growing State = iota
	// Connected means the goal was attached to the tree
	Connected
	// Exhausted means the iteration or node budget ran out first
	Exhausted
)

func (s State) String() string {
	switch s {
	case Growing:
		return "growing"
	case Connected:
		return "connected"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Params is the planner's parameter set
type Params struct {
	// StepSize is the steering distance.
	StepSize float64 `json:"stepSize"`
	// MinStep rejects steering toward targets closer than this.
	MinStep float64 `json:"minStep"`
	// AdaptiveStep draws each step from [max(MinStep, StepSize/5), StepSize].
	AdaptiveStep bool `json:"adaptiveStep"`
	// MaxIter bounds outer iterations.
	MaxIter int `json:"maxIter"`
	// MaxNode bounds grown nodes (root excluded).
	MaxNode int `json:"maxNode"`
	// SampleStd is the spread of goal-biased sampling.
	SampleStd float64 `json:"sampleStd"`
	// DirectConnectFactor times StepSize is the distance under which the goal is
	// linked straight to the nearest node.
	DirectConnectFactor float64 `json:"directConnectFactor"`
	// RetryBound caps sample/steer attempts per outer iteration.
	RetryBound int `json:"retryBound"`
	// RetriesConsumeIterations charges every failed attempt after the first in an
	// iteration against MaxIter.
	RetriesConsumeIterations bool `json:"retriesConsumeIterations"`
	// MaxSampleDraws bounds per-coordinate re-draws in the sampler.
	MaxSampleDraws int `json:"maxSampleDraws"`
	// Seed drives every random stream; 0 is replaced by a fixed default.
	Seed uint64 `json:"seed"`
	// Workers caps parallelism; <= 0 means one per CPU.
	Workers int `json:"workers"`
	// Grain is the minimum work per worker; <= 0 means DefaultGrain.
	Grain int `json:"grain"`
}

// DefaultParams returns the parameters of the reference floor-plan run
func DefaultParams() Params {
	return Params{
		StepSize:                 30,
		MinStep:                  DefaultMinStep,
		MaxIter:                  15000,
		MaxNode:                  500,
		SampleStd:                500,
		DirectConnectFactor:      1.5,
		RetryBound:               10,
		RetriesConsumeIterations: true,
		MaxSampleDraws:           DefaultMaxDraws,
		Seed:                     defaultSeed,
	}
}

// Validate checks parameter ranges
func (p Params) Validate() error {
	switch {
	case !(p.StepSize > 0) || math.IsInf(p.StepSize, 1):
		return fmt.Errorf("%w: step size must be positive and finite, got %v", ErrInvalidParams, p.StepSize)
	case !(p.MinStep >= 0) || math.IsInf(p.MinStep, 1):
		return fmt.Errorf("%w: min step must be non-negative and finite, got %v", ErrInvalidParams, p.MinStep)
	case p.MaxIter <= 0:
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidParams, p.MaxIter)
	case p.MaxNode <= 0:
		return fmt.Errorf("%w: max nodes must be positive, got %d", ErrInvalidParams, p.MaxNode)
	case !(p.SampleStd >= 0) || math.IsInf(p.SampleStd, 1):
		return fmt.Errorf("%w: sample std must be non-negative and finite, got %v", ErrInvalidParams, p.SampleStd)
	case !(p.DirectConnectFactor >= 0) || math.IsInf(p.DirectConnectFactor, 1):
		return fmt.Errorf("%w: direct connect factor must be non-negative and finite, got %v", ErrInvalidParams, p.DirectConnectFactor)
	case p.RetryBound <= 0:
		return fmt.Errorf("%w: retry bound must be positive, got %d", ErrInvalidParams, p.RetryBound)
	}
	return nil
}

// Stats counts rejected attempts by reason
type Stats struct {
	Attempts         int `json:"attempts"`
	SamplerExhausted int `json:"samplerExhausted"`
	SampleInObstacle int `json:"sampleInObstacle"`
	StepTooSmall     int `json:"stepTooSmall"`
	EdgeBlocked      int `json:"edgeBlocked"`
	GoalBlocked      int `json:"goalBlocked"`
}

// Result is the outcome of one planning run
type Result struct {
	Tree       *Tree
	State      State
	Success    bool
	Iterations int
	// Nodes counts accepted nodes, the goal included once connected.
	Nodes   int
	Stats   Stats
	Path    Path
	Elapsed time.Duration
}

// Planner grows RRTs over a fixed occupancy map
type Planner struct {
	m        *OccupancyMap
	params   Params
	parallel Parallelism
}

// NewPlanner validates params against the map
func NewPlanner(m *OccupancyMap, params Params) (*Planner, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil occupancy map", ErrInvalidParams)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Planner{
		m:        m,
		params:   params,
		parallel: Parallelism{Workers: params.Workers, Grain: params.Grain},
	}, nil
}

// Params returns the planner's parameters
func (pl *Planner) Params() Params { return pl.params }

// growth carries the state of one Plan call
type growth struct {
	pl      *Planner
	tree    *Tree
	sampler Sampler
	steerer Steerer
	stream  uint64
	stats   Stats
	grown   int
	iter    int
}

// Plan grows a tree from start until the goal connects or the budget runs out.
// Running out of budget is reported through Result.Success, not as an error.
func (pl *Planner) Plan(ctx context.Context, start, goal Point) (*Result, error) {
	if err := pl.checkEndpoints(start, goal); err != nil {
		return nil, err
	}

	began := time.Now()
	p := pl.params
	log.Printf("🌱 Growing RRT from (%.1f, %.1f) to (%.1f, %.1f)\n", start.X, start.Y, goal.X, goal.Y)
	log.Printf("   Step: %.1f, max iterations: %d, max nodes: %d\n", p.StepSize, p.MaxIter, p.MaxNode)

	g := &growth{
		pl:   pl,
		tree: NewTree(start, goal),
		sampler: Sampler{
			Center:   goal,
			Std:      p.SampleStd,
			Bounds:   pl.m.Bounds(),
			MaxDraws: p.MaxSampleDraws,
		},
		steerer: Steerer{
			Map:      pl.m,
			StepSize: p.StepSize,
			MinStep:  p.MinStep,
			Adaptive: p.AdaptiveStep,
			Parallel: pl.parallel,
		},
	}

	state, err := g.run(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Tree:       g.tree,
		State:      state,
		Success:    state == Connected,
		Iterations: g.iter,
		Nodes:      g.grown,
		Stats:      g.stats,
		Path:       ExtractPath(g.tree),
		Elapsed:    time.Since(began),
	}

	if res.Success {
		log.Printf("✅ Finished RRT construction in %d iterations with %d nodes\n", res.Iterations, res.Nodes)
		log.Printf("   Path: %d waypoints, length %.1f\n", len(res.Path.Waypoints), res.Path.Length())
	} else {
		log.Printf("❌ RRT construction terminated at iteration %d with %d nodes\n", res.Iterations, res.Nodes)
	}
	log.Printf("   ⏱️  Planning time: %.3f seconds\n", res.Elapsed.Seconds())
	return res, nil
}

func (pl *Planner) checkEndpoints(start, goal Point) error {
	b := pl.m.Bounds()
	if !b.Contains(start) {
		return fmt.Errorf("%w: start (%.1f, %.1f)", ErrOutOfBounds, start.X, start.Y)
	}
	if !b.Contains(goal) {
		return fmt.Errorf("%w: goal (%.1f, %.1f)", ErrOutOfBounds, goal.X, goal.Y)
	}
	if pl.m.BlockedAt(start) {
		return ErrStartBlocked
	}
	if pl.m.BlockedAt(goal) {
		return ErrGoalBlocked
	}
	return nil
}

// run is the state machine: every outer iteration first tries the goal, then
// spends up to RetryBound attempts growing one node.
func (g *growth) run(ctx context.Context) (State, error) {
	p := g.pl.params
	for g.iter < p.MaxIter {
		if err := ctx.Err(); err != nil {
			return Growing, err
		}
		g.iter++

		connected, err := g.tryGoal()
		if err != nil {
			return Growing, err
		}
		if connected {
			return Connected, nil
		}

		grew, err := g.extend()
		if err != nil {
			return Growing, err
		}
		if grew && g.grown >= p.MaxNode {
			return Exhausted, nil
		}
	}
	return Exhausted, nil
}

// tryGoal links the goal to its nearest node when it is close enough and visible
func (g *growth) tryGoal() (bool, error) {
	p := g.pl.params
	goal := g.tree.Goal()
	near, dist, err := g.nearest(goal)
	if err != nil {
		return false, err
	}
	if dist > p.DirectConnectFactor*p.StepSize {
		return false, nil
	}

	from := g.tree.Pos(near)
	workers := g.pl.parallel.For(segmentSamples(from, goal) + 1)
	if SegmentBlocked(g.pl.m, from, goal, workers) {
		g.stats.GoalBlocked++
		return false, nil
	}

	if _, err := g.tree.ConnectGoal(near); err != nil {
		return false, err
	}
	g.grown++
	return true, nil
}

// extend makes up to RetryBound sample/steer attempts and stops at the first node grown
func (g *growth) extend() (bool, error) {
	p := g.pl.params
	for attempt := 0; attempt < p.RetryBound; attempt++ {
		if attempt > 0 && p.RetriesConsumeIterations {
			if g.iter >= p.MaxIter {
				return false, nil
			}
			g.iter++
		}

		g.stats.Attempts++
		rng := streamRNG(p.Seed, g.stream)
		g.stream++

		sample, ok := g.sampler.Sample(rng)
		if !ok {
			g.stats.SamplerExhausted++
			continue
		}
		if g.pl.m.BlockedAt(sample) {
			g.stats.SampleInObstacle++
			continue
		}

		near, _, err := g.nearest(sample)
		if err != nil {
			return false, err
		}

		_, outcome := g.steerer.Steer(g.tree, near, sample, rng)
		switch outcome {
		case SteerTooClose:
			g.stats.StepTooSmall++
			continue
		case SteerBlocked:
			g.stats.EdgeBlocked++
			continue
		}

		g.grown++
		return true, nil
	}
	return false, nil
}

func (g *growth) nearest(q Point) (NodeID, float64, error) {
	points := g.tree.positions
	idx, dist, err := Nearest(points, q, g.pl.parallel.For(len(points)))
	if err != nil {
		return NoParent, 0, err
	}
	return NodeID(idx), dist, nil
}
