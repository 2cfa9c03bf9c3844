package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"testing"
)

// BenchmarkNearest measures the nearest search over 10k nodes for several worker counts.
func BenchmarkNearest(b *testing.B) {
	rng := rand.New(rand.NewPCG(42, 0))
	points := make([]Point, 10000)
	for i := range points {
		points[i] = Point{X: rng.Float64() * 1500, Y: rng.Float64() * 1000}
	}
	q := Point{X: 750, Y: 500}

	for _, workers := range []int{1, 4, 0} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _, _ = Nearest(points, q, workers)
			}
		})
	}
}

// BenchmarkInflateObstacles measures inflation of a 1500×1000 floor plan with r=15.
func BenchmarkInflateObstacles(b *testing.B) {
	intensity := randomIntensity(1500, 1000, 0.01, 42)
	for _, workers := range []int{1, 0} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			opts := DefaultInflateOptions()
			opts.Workers = workers
			for i := 0; i < b.N; i++ {
				if _, err := InflateObstacles(intensity, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkPlan measures a full run across a wall with a single gap.
func BenchmarkPlan(b *testing.B) {
	log.SetOutput(io.Discard)
	b.Cleanup(func() { log.SetOutput(os.Stderr) })

	grid := make([][]bool, 1000)
	for y := range grid {
		grid[y] = make([]bool, 1500)
		if y < 800 {
			for x := 700; x < 740; x++ {
				grid[y][x] = true
			}
		}
	}
	m, err := NewOccupancyMap(grid)
	if err != nil {
		b.Fatal(err)
	}
	pl, err := NewPlanner(m, DefaultParams())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pl.Plan(context.Background(), Point{X: 100, Y: 100}, Point{X: 1400, Y: 100}); err != nil {
			b.Fatal(err)
		}
	}
}
