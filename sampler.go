package main

import "math/rand/v2"

// DefaultMaxDraws bounds the re-draws per coordinate when a normal draw falls off the map.
const DefaultMaxDraws = 64

// Sampler draws goal-biased candidate points: each coordinate is normal around
// Center with deviation Std, re-drawn until it lands inside Bounds.
type Sampler struct {
	Center   Point
	Std      float64
	Bounds   Bounds
	MaxDraws int
}

// Sample returns a fresh candidate point. ok is false when a coordinate could not
// be drawn inside the map within MaxDraws tries, which the caller treats as a
// failed attempt.
func (s Sampler) Sample(rng *rand.Rand) (p Point, ok bool) {
	x, ok := s.draw(rng, s.Center.X, float64(s.Bounds.Width))
	if !ok {
		return Point{}, false
	}
	y, ok := s.draw(rng, s.Center.Y, float64(s.Bounds.Height))
	if !ok {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// draw samples N(mean, Std) until the value falls in [0, limit)
func (s Sampler) draw(rng *rand.Rand, mean, limit float64) (float64, bool) {
	tries := s.MaxDraws
	if tries <= 0 {
		tries = DefaultMaxDraws
	}
	for i := 0; i < tries; i++ {
		v := mean + rng.NormFloat64()*s.Std
		if v >= 0 && v < limit {
			return v, true
		}
	}
	return 0, false
}
