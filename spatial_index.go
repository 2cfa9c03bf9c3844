package main

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// minExtent pads degenerate bounding boxes; rtreego rejects zero-length sides
const minExtent = 1e-9

// ObstacleEntry wraps an obstacle polygon for R-tree storage
type ObstacleEntry struct {
	Polygon orb.Polygon
	BBox    rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *ObstacleEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// SpatialIndex manages obstacle polygon queries
type SpatialIndex struct {
	tree *rtreego.Rtree
}

// NewSpatialIndex creates a new spatial index over the given polygons
func NewSpatialIndex(polygons []orb.Polygon) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for _, polygon := range polygons {
		bbox, err := calculateBoundingBox(polygon)
		if err == nil {
			tree.Insert(&ObstacleEntry{
				Polygon: polygon,
				BBox:    bbox,
			})
		}
	}

	return &SpatialIndex{tree: tree}
}

// QueryRegion returns polygons whose bounds intersect the given box
func (si *SpatialIndex) QueryRegion(minX, minY, maxX, maxY float64) []orb.Polygon {
	bbox, err := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{max(maxX-minX, minExtent), max(maxY-minY, minExtent)},
	)
	if err != nil {
		return []orb.Polygon{}
	}

	results := si.tree.SearchIntersect(bbox)
	polygons := make([]orb.Polygon, 0, len(results))
	for _, item := range results {
		polygons = append(polygons, item.(*ObstacleEntry).Polygon)
	}
	return polygons
}

// calculateBoundingBox computes the axis-aligned bounding box for a polygon
func calculateBoundingBox(polygon orb.Polygon) (rtreego.Rect, error) {
	if len(polygon) == 0 || len(polygon[0]) == 0 {
		return rtreego.Rect{}, ErrEmptyObstacle
	}

	b := polygon.Bound()
	return rtreego.NewRect(
		rtreego.Point{b.Min.X(), b.Min.Y()},
		[]float64{max(b.Max.X()-b.Min.X(), minExtent), max(b.Max.Y()-b.Min.Y(), minExtent)},
	)
}
