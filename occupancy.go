package main

import "math"

// DefaultIntensityThreshold separates obstacle pixels (below) from free ones.
const DefaultIntensityThreshold = 250

// OccupancyMap is an immutable grid of blocked cells, stored row-major.
// It is safe for concurrent reads.
type OccupancyMap struct {
	width, height int
	blocked       []bool
}

// InflateOptions configures obstacle inflation
type InflateOptions struct {
	// Radius is the clearance radius; cells within it (square metric) of an
	// obstacle pixel are blocked.
	Radius float64
	// Threshold marks pixels with intensity < Threshold as raw obstacles.
	Threshold uint8
	// Workers bounds parallelism; <= 0 means one per CPU.
	Workers int
}

// DefaultInflateOptions returns a 15 cell clearance over near-white free space
func DefaultInflateOptions() InflateOptions {
	return InflateOptions{
		Radius:    15,
		Threshold: DefaultIntensityThreshold,
	}
}

// NewOccupancyMap wraps an already boolean grid (true = obstacle).
// The input is copied.
func NewOccupancyMap(blocked [][]bool) (*OccupancyMap, error) {
	h, w, err := gridDims(len(blocked), func(y int) int { return len(blocked[y]) })
	if err != nil {
		return nil, err
	}

	m := &OccupancyMap{width: w, height: h, blocked: make([]bool, w*h)}
	for y, row := range blocked {
		copy(m.blocked[y*w:(y+1)*w], row)
	}
	return m, nil
}

// InflateObstacles builds an occupancy map from an intensity grid by marking every
// cell inside the axis-aligned square [x-r, x+r] × [y-r, y+r] around each obstacle
// pixel as blocked.
//
// The square footprint is separable, so the dilation runs as a horizontal pass over
// rows followed by a vertical pass over columns. Each worker writes only the rows (or
// columns) it owns, which keeps the parallel passes free of shared writes.
func InflateObstacles(intensity [][]uint8, opts InflateOptions) (*OccupancyMap, error) {
	h, w, err := gridDims(len(intensity), func(y int) int { return len(intensity[y]) })
	if err != nil {
		return nil, err
	}
	if opts.Radius < 0 || math.IsNaN(opts.Radius) {
		return nil, ErrInvalidRadius
	}

	// Cells sit on integer coordinates, so |dx| <= r iff |dx| <= floor(r).
	r := int(math.Min(math.Floor(opts.Radius), float64(max(w, h))))

	horizontal := make([]bool, w*h)
	parallelFor(h, opts.Workers, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			dilateLine(w, r,
				func(x int) bool { return intensity[y][x] < opts.Threshold },
				func(x int) { horizontal[y*w+x] = true })
		}
	})

	m := &OccupancyMap{width: w, height: h, blocked: make([]bool, w*h)}
	parallelFor(w, opts.Workers, func(lo, hi int) {
		for x := lo; x < hi; x++ {
			dilateLine(h, r,
				func(y int) bool { return horizontal[y*w+x] },
				func(y int) { m.blocked[y*w+x] = true })
		}
	})

	return m, nil
}

// dilateLine marks every index within r of a set index along a line of length n,
// using a sliding count of set indices in the window [i-r, i+r].
func dilateLine(n, r int, isSet func(i int) bool, mark func(i int)) {
	count := 0
	for i := 0; i < n && i <= r; i++ {
		if isSet(i) {
			count++
		}
	}
	for i := 0; i < n; i++ {
		if count > 0 {
			mark(i)
		}
		if out := i - r; out >= 0 && isSet(out) {
			count--
		}
		if in := i + r + 1; in < n && isSet(in) {
			count++
		}
	}
}

// gridDims validates a rectangular grid given its row count and a row-length accessor
func gridDims(rows int, rowLen func(y int) int) (h, w int, err error) {
	if rows == 0 || rowLen(0) == 0 {
		return 0, 0, ErrEmptyGrid
	}
	h, w = rows, rowLen(0)
	for y := 1; y < h; y++ {
		if rowLen(y) != w {
			return 0, 0, ErrNonRectangular
		}
	}
	return h, w, nil
}

// Width of the map in cells
func (m *OccupancyMap) Width() int { return m.width }

// Height of the map in cells
func (m *OccupancyMap) Height() int { return m.height }

// Bounds returns the map dimensions
func (m *OccupancyMap) Bounds() Bounds {
	return Bounds{Width: m.width, Height: m.height}
}

// InBounds reports whether (x,y) lies within the grid
func (m *OccupancyMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Blocked reports whether cell (x,y) is an obstacle. Cells outside the grid count as blocked.
func (m *OccupancyMap) Blocked(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.blocked[y*m.width+x]
}

// BlockedAt reports whether the cell containing p is an obstacle
func (m *OccupancyMap) BlockedAt(p Point) bool {
	x, y := p.Cell()
	return m.Blocked(x, y)
}

// FreeCells counts the cells that are not blocked
func (m *OccupancyMap) FreeCells() int {
	free := 0
	for _, b := range m.blocked {
		if !b {
			free++
		}
	}
	return free
}

// Rows returns a copy of the grid as rows of blocked flags
func (m *OccupancyMap) Rows() [][]bool {
	rows := make([][]bool, m.height)
	for y := range rows {
		rows[y] = make([]bool, m.width)
		copy(rows[y], m.blocked[y*m.width:(y+1)*m.width])
	}
	return rows
}
