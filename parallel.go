package main

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultGrain is the smallest amount of work worth handing to a separate worker
const DefaultGrain = 256

// Parallelism decides how many workers a call over n items gets
type Parallelism struct {
	// Workers caps the worker count; <= 0 means one per CPU.
	Workers int
	// Grain is the minimum number of items per worker; <= 0 means DefaultGrain.
	Grain int
}

// For returns the worker count for a call over n items
func (p Parallelism) For(n int) int {
	grain := p.Grain
	if grain <= 0 {
		grain = DefaultGrain
	}
	return resolveWorkers(min(resolveWorkers(p.Workers, n), (n+grain-1)/grain), n)
}

// span is a half-open index range [lo, hi)
type span struct {
	lo, hi int
}

// resolveWorkers maps a requested worker count onto [1, n].
// Zero or negative means one worker per CPU.
func resolveWorkers(workers, n int) int {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// partition splits [0, n) into contiguous, ordered spans whose sizes differ by at most one.
func partition(n, workers int) []span {
	if n <= 0 {
		return nil
	}
	workers = resolveWorkers(workers, n)
	spans := make([]span, 0, workers)
	size, extra := n/workers, n%workers
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + size
		if w < extra {
			hi++
		}
		spans = append(spans, span{lo: lo, hi: hi})
		lo = hi
	}
	return spans
}

// parallelFor runs fn over each span of [0, n) and returns once all spans are done.
func parallelFor(n, workers int, fn func(lo, hi int)) {
	spans := partition(n, workers)
	if len(spans) == 1 {
		fn(spans[0].lo, spans[0].hi)
		return
	}

	var g errgroup.Group
	for _, s := range spans {
		g.Go(func() error {
			fn(s.lo, s.hi)
			return nil
		})
	}
	_ = g.Wait()
}

// mapReduce computes local over each span in parallel, then folds the partial results
// on the calling goroutine in span order. The answer is independent of the worker count
// whenever fold is associative and breaks ties by position.
func mapReduce[T any](n, workers int, local func(lo, hi int) T, fold func(acc, next T) T) (T, bool) {
	var zero T
	spans := partition(n, workers)
	if len(spans) == 0 {
		return zero, false
	}

	parts := make([]T, len(spans))
	if len(spans) == 1 {
		parts[0] = local(spans[0].lo, spans[0].hi)
	} else {
		var g errgroup.Group
		for i, s := range spans {
			g.Go(func() error {
				parts[i] = local(s.lo, s.hi)
				return nil
			})
		}
		_ = g.Wait()
	}

	acc := parts[0]
	for _, p := range parts[1:] {
		acc = fold(acc, p)
	}
	return acc, true
}
