package tracer

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond"
)

// attemptsPerRay bounds how many launch attempts TraceRays will make per
// path still needed before giving up. Without this, a scene where the
// receiver is effectively unreachable (spec §8's "Free field" scenario)
// would spin forever instead of terminating with fewer than quota paths.
const attemptsPerRay = 2000

// minAttempts is the floor on the attempt budget so a tiny quota (including
// zero) still gets a reasonable number of tries before TraceRays gives up.
const minAttempts = 10000

// TraceRays fans TraceRay out across a fixed-size worker pool (workers
// goroutines, or runtime.NumCPU() if workers <= 0), submitting one launch
// attempt at a time until quota rays have reached the receiver or the
// attempt budget is exhausted. counter, if non-nil, is updated after every
// success so a caller can poll it for progress reporting; it is never reset
// by this call (spec §4.T, §9 "Concurrency model").
func TraceRays(ctx context.Context, t *Tracer, quota uint64, workers int, counter *atomic.Int64) []RayPath {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	maxAttempts := quota * attemptsPerRay
	if maxAttempts < minAttempts {
		maxAttempts = minAttempts
	}

	pool := pond.New(workers, 0, pond.MinWorkers(workers), pond.Context(ctx))

	var mu sync.Mutex
	paths := make([]RayPath, 0, quota)
	var found atomic.Int64

	rngs := sync.Pool{New: func() any { return newWorkerRNG() }}

	var attempts uint64
	for uint64(found.Load()) < quota && attempts < maxAttempts {
		select {
		case <-ctx.Done():
			pool.StopAndWait()
			return paths
		default:
		}
		attempts++

		pool.Submit(func() {
			rng := rngs.Get().(*rand.Rand)
			defer rngs.Put(rng)

			path, ok := t.TraceRay(rng)
			if !ok {
				return
			}

			n := found.Add(1)
			if counter != nil {
				counter.Store(n)
			}
			if uint64(n) > quota {
				return
			}

			mu.Lock()
			paths = append(paths, path)
			mu.Unlock()
		})
	}

	// Block until every already-submitted attempt has finished before
	// reading paths back out, so the read below never races its writers.
	pool.StopAndWait()
	return paths
}
