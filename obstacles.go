package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// LoadObstacles reads obstacle polygons (map pixel coordinates) from a GeoJSON file,
// or from every *.geojson file when path is a directory.
func LoadObstacles(path string) ([]orb.Polygon, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat obstacles: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.geojson"))
		if err != nil {
			return nil, err
		}
	}

	log.Printf("Loading obstacles from %d GeoJSON files...\n", len(files))

	var allPolygons []orb.Polygon
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("⚠️  Failed to read %s: %v\n", file, err)
			continue
		}

		polygons, err := ParseObstacles(data)
		if err != nil {
			log.Printf("⚠️  Failed to parse %s: %v\n", file, err)
			continue
		}
		allPolygons = append(allPolygons, polygons...)

		log.Printf("   ✅ Loaded %d polygons from %s\n", len(polygons), filepath.Base(file))
	}

	log.Printf("Total obstacles loaded: %d polygons\n", len(allPolygons))
	return allPolygons, nil
}

// ParseObstacles extracts polygons from a GeoJSON FeatureCollection.
// Polygon, MultiPolygon and Bound geometries are kept; other types are ignored.
func ParseObstacles(data []byte) ([]orb.Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal feature collection: %w", err)
	}

	var polygons []orb.Polygon
	for _, feature := range fc.Features {
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			polygons = append(polygons, g)
		case orb.MultiPolygon:
			polygons = append(polygons, g...)
		case orb.Bound:
			polygons = append(polygons, g.ToPolygon())
		}
	}
	return polygons, nil
}

// NewIntensityGrid returns an all-free (255) intensity grid of the given size
func NewIntensityGrid(b Bounds) [][]uint8 {
	grid := make([][]uint8, b.Height)
	for y := range grid {
		row := make([]uint8, b.Width)
		for x := range row {
			row[x] = 255
		}
		grid[y] = row
	}
	return grid
}

// RasterizeObstacles paints every cell whose centre lies inside an obstacle polygon
// as a raw obstacle pixel (intensity 0). Rows are split across workers and each row
// only tests the polygons whose bounds cross it.
func RasterizeObstacles(intensity [][]uint8, polygons []orb.Polygon, workers int) {
	if len(polygons) == 0 || len(intensity) == 0 {
		return
	}
	index := NewSpatialIndex(polygons)
	width := len(intensity[0])

	parallelFor(len(intensity), workers, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			cy := float64(y) + 0.5
			candidates := index.QueryRegion(0, cy, float64(width), cy)
			if len(candidates) == 0 {
				continue
			}
			row := intensity[y]
			for x := range row {
				center := orb.Point{float64(x) + 0.5, cy}
				for _, polygon := range candidates {
					if planar.PolygonContains(polygon, center) {
						row[x] = 0
						break
					}
				}
			}
		}
	})
}
