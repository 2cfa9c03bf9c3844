package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSteer(t *testing.T) {
	m := wallMap(t, 100, 20, 50, 52)
	cases := []struct {
		name    string
		target  Point
		outcome SteerOutcome
		want    Point
	}{
		{"FullStep", Point{40, 10}, SteerOK, Point{20, 10}},
		{"OvershootsCloseTarget", Point{15, 10}, SteerOK, Point{20, 10}},
		{"TooClose", Point{12, 10}, SteerTooClose, Point{}},
		{"SameSpot", Point{10, 10}, SteerTooClose, Point{}},
		{"LeavesMap", Point{10, 60}, SteerBlocked, Point{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := NewTree(Point{10, 10}, Point{90, 10})
			s := Steerer{Map: m, StepSize: 10, MinStep: DefaultMinStep}
			id, outcome := s.Steer(tree, tree.Root(), tc.target, streamRNG(1, 0))
			require.Equal(t, tc.outcome, outcome, outcome.String())
			if outcome != SteerOK {
				require.Equal(t, NoParent, id)
				require.Equal(t, 1, tree.Len())
				return
			}
			require.InDelta(t, tc.want.X, tree.Pos(id).X, 1e-9)
			require.InDelta(t, tc.want.Y, tree.Pos(id).Y, 1e-9)
			parent, ok := tree.Parent(id)
			require.True(t, ok)
			require.Equal(t, tree.Root(), parent)
		})
	}
}

func TestSteerBlockedByWall(t *testing.T) {
	m := wallMap(t, 100, 20, 50, 52)
	tree := NewTree(Point{45, 10}, Point{90, 10})
	s := Steerer{Map: m, StepSize: 10, MinStep: DefaultMinStep, Parallel: Parallelism{Workers: 4, Grain: 1}}

	_, outcome := s.Steer(tree, tree.Root(), Point{80, 10}, streamRNG(1, 0))
	require.Equal(t, SteerBlocked, outcome)
	require.Equal(t, 1, tree.Len())
}

// TestSteerAdaptive verifies that adaptive steps stay inside [max(MinStep, StepSize/5), StepSize].
func TestSteerAdaptive(t *testing.T) {
	m := emptyMap(t, 200, 200)
	s := Steerer{Map: m, StepSize: 30, MinStep: DefaultMinStep, Adaptive: true}

	var lengths []float64
	for i := uint64(0); i < 200; i++ {
		tree := NewTree(Point{100, 100}, Point{190, 190})
		id, outcome := s.Steer(tree, tree.Root(), Point{190, 100}, streamRNG(5, i))
		require.Equal(t, SteerOK, outcome)
		d := tree.Pos(id).Distance(tree.Pos(tree.Root()))
		require.GreaterOrEqual(t, d, 6.0-1e-9)
		require.LessOrEqual(t, d, 30.0+1e-9)
		lengths = append(lengths, d)
	}
	require.NotEqual(t, lengths[0], lengths[1])
}

func TestSteerAfterGoalConnected(t *testing.T) {
	m := emptyMap(t, 50, 50)
	tree := NewTree(Point{1, 1}, Point{5, 1})
	_, err := tree.ConnectGoal(tree.Root())
	require.NoError(t, err)

	s := Steerer{Map: m, StepSize: 5, MinStep: DefaultMinStep}
	_, outcome := s.Steer(tree, tree.Root(), Point{30, 30}, streamRNG(1, 0))
	require.Equal(t, SteerBlocked, outcome)
	require.Equal(t, 2, tree.Len())
}

func TestSteerOutcomeString(t *testing.T) {
	require.Equal(t, "ok", SteerOK.String())
	require.Equal(t, "too-close", SteerTooClose.String())
	require.Equal(t, "blocked", SteerBlocked.String())
	require.Equal(t, "unknown", SteerOutcome(9).String())
}
