package main

import (
	"math"
)

// candidate is a partial minimum of the nearest-node reduction
type candidate struct {
	distSq float64
	index  int
}

// better orders candidates by distance, then by insertion index
func (c candidate) better(other candidate) bool {
	if c.distSq != other.distSq {
		return c.distSq < other.distSq
	}
	return c.index < other.index
}

// Nearest finds the point closest to q and returns its index and Euclidean distance.
// Ties go to the lowest index. The points are split into contiguous chunks scanned in
// parallel; the partial minima are folded in chunk order, so the answer matches a
// sequential scan for any worker count.
func Nearest(points []Point, q Point, workers int) (int, float64, error) {
	if len(points) == 0 {
		return -1, math.Inf(1), ErrEmptyTree
	}

	best, _ := mapReduce(len(points), workers,
		func(lo, hi int) candidate {
			local := candidate{distSq: math.Inf(1), index: -1}
			for i := lo; i < hi; i++ {
				if d := points[i].distanceSq(q); d < local.distSq {
					local = candidate{distSq: d, index: i}
				}
			}
			return local
		},
		func(acc, next candidate) candidate {
			if next.index >= 0 && (acc.index < 0 || next.better(acc)) {
				return next
			}
			return acc
		})

	if best.index < 0 {
		// Every distance was NaN; fall back to the first node.
		return 0, points[0].Distance(q), nil
	}
	return best.index, math.Sqrt(best.distSq), nil
}
