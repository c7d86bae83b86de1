// Package batch runs a per-path operation across many paths under a single
// consistent snapshot, on a bounded worker pool, with independent per-path
// failure and input-order output.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result pairs one input path with the outcome of running an operation
// against it. Err is set only for that path's own failure; it never
// cancels the rest of the batch.
type Result[T any] struct {
	Path  string
	Value T
	Err   error
}

// Op is the per-path unit of work a batch runs, given the path and the
// context passed to Run.
type Op[T any] func(ctx context.Context, path string) (T, error)

// Executor runs an Op across a set of paths on a bounded worker pool.
type Executor struct {
	// Concurrency caps how many paths are processed at once. Zero or
	// negative falls back to runtime.NumCPU().
	Concurrency int
}

// New returns an Executor with the default CPU-count concurrency.
func New() *Executor {
	return &Executor{Concurrency: runtime.NumCPU()}
}

// Run executes op for every path in paths, returning one Result per path in
// the same order paths were given, regardless of completion order. A
// per-path error is captured in that path's Result and does not affect any
// other path. The returned error is always nil: a canceled ctx shows up only
// in per-path Results, as ctx's error for a path whose work never started or
// as whatever op returns.
func Run[T any](ctx context.Context, exec *Executor, paths []string, op Op[T]) ([]Result[T], error) {
	concurrency := exec.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result[T], len(paths))
	sem := make(chan struct{}, concurrency)

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path

		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			results[i] = Result[T]{Path: path, Err: gctx.Err()}
			continue
		}

		g.Go(func() error {
			defer func() { <-sem }()

			value, err := op(gctx, path)
			results[i] = Result[T]{Path: path, Value: value, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
