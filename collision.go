package main

import (
	"math"
	"sync/atomic"
)

// segmentSamples returns how many unit steps discretise the segment a→b.
// Sample indices run from 0 to n inclusive. It returns -1 when the length is not
// finite or the step count does not fit in an int.
func segmentSamples(a, b Point) int {
	d := math.Round(a.Distance(b))
	if math.IsNaN(d) || d >= math.MaxInt {
		return -1
	}
	return int(d)
}

// segmentSample returns the i-th of n+1 evenly spaced samples on a→b
func segmentSample(a, b Point, i, n int) Point {
	if n == 0 {
		if i == 0 {
			return a
		}
		return b
	}
	t := float64(i) / float64(n)
	return a.Add(b.Sub(a).Scale(t))
}

// scanSegment probes every sample of a→b, split across workers, and reports whether
// any probe hit. Workers stop early once any of them has hit; that stop is best
// effort and never changes the result.
func scanSegment(a, b Point, workers int, hit func(p Point) bool) bool {
	n := segmentSamples(a, b)
	if n < 0 {
		return true
	}
	total := n + 1
	if n == 0 {
		total = 2
	}

	var blocked atomic.Bool
	parallelFor(total, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if blocked.Load() {
				return
			}
			if hit(segmentSample(a, b, i, n)) {
				blocked.Store(true)
				return
			}
		}
	})
	return blocked.Load()
}

// SegmentBlocked reports whether the straight segment a→b crosses an obstacle cell
// or leaves the map. The segment is sampled once per unit of length; the sampled
// cells depend only on a and b, never on the worker count.
func SegmentBlocked(m *OccupancyMap, a, b Point, workers int) bool {
	// Both endpoints are probed anyway; checking them first bounds the scan by the map diagonal.
	bounds := m.Bounds()
	if !bounds.Contains(a) || !bounds.Contains(b) {
		return true
	}
	return scanSegment(a, b, workers, m.BlockedAt)
}
