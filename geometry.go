package main

import (
	"math"

	"github.com/paulmach/orb"
)

// Point is a position in map (pixel) coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + other
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p - other
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale multiplies both coordinates by s
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Equal reports exact coordinate equality
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Length is the Euclidean norm of p seen as a vector
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// distanceSq skips the square root; used where only ordering matters
func (p Point) distanceSq(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Cell returns the grid cell containing p
func (p Point) Cell() (x, y int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// ToOrb converts to an orb point for GeoJSON output
func (p Point) ToOrb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// PointFromOrb converts an orb point
func PointFromOrb(op orb.Point) Point {
	return Point{X: op.X(), Y: op.Y()}
}

// Bounds are the dimensions of the planning area: x in [0, Width), y in [0, Height)
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies inside the half-open map rectangle
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.X < float64(b.Width) && p.Y >= 0 && p.Y < float64(b.Height)
}
