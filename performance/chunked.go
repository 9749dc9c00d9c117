// Package performance provides helpers for processing large sample sets.
package performance

import (
	"context"
	"runtime"
	"sync"
)

// DefaultChunkSize is the number of rows handed to a worker at a time.
const DefaultChunkSize = 1000

// ChunkedProcessor splits a row range into chunks and processes them on a
// fixed pool of workers.
type ChunkedProcessor struct {
	chunkSize  int
	numWorkers int
}

// NewChunkedProcessor creates a processor. Non-positive values select
// DefaultChunkSize and runtime.NumCPU() workers.
func NewChunkedProcessor(chunkSize, numWorkers int) *ChunkedProcessor {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &ChunkedProcessor{chunkSize: chunkSize, numWorkers: numWorkers}
}

// ChunkSize returns the configured chunk size.
func (c *ChunkedProcessor) ChunkSize() int { return c.chunkSize }

// NumWorkers returns the configured number of workers.
func (c *ChunkedProcessor) NumWorkers() int { return c.numWorkers }

// Process calls fn for every chunk [start, end) of [0, n). Chunks may run
// concurrently, so fn must only touch state belonging to its range. The
// first error stops the remaining chunks and is returned; cancellation of
// ctx returns ctx.Err().
func (c *ChunkedProcessor) Process(ctx context.Context, n int, fn func(start, end int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	if c.numWorkers == 1 || n <= c.chunkSize {
		return c.processSequential(ctx, n, fn)
	}
	return c.processParallel(ctx, n, fn)
}

func (c *ChunkedProcessor) processSequential(ctx context.Context, n int, fn func(start, end int) error) error {
	for start := 0; start < n; start += c.chunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(start, min(start+c.chunkSize, n)); err != nil {
			return err
		}
	}
	return nil
}

func (c *ChunkedProcessor) processParallel(ctx context.Context, n int, fn func(start, end int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunks := make(chan int)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	workers := min(c.numWorkers, (n+c.chunkSize-1)/c.chunkSize)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for start := range chunks {
				if err := fn(start, min(start+c.chunkSize, n)); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

	func() {
		defer close(chunks)
		for start := 0; start < n; start += c.chunkSize {
			select {
			case chunks <- start:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
