// Package search finds the lowest input satisfying a predicate, spreading
// the work over a pool of goroutines.
package search

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("vcpu.search")

// ErrNotFound is returned when no value in the range satisfies the
// predicate.
var ErrNotFound = errors.New("search: not found")

// checkEvery is how many candidates a worker tests between context checks.
const checkEvery = 1024

// Predicate reports whether n is a match. It is called concurrently and
// must not share mutable state between calls.
type Predicate func(n int64) (bool, error)

// Lowest returns the smallest n in [lo, hi) for which pred is true.
//
// The range is split into one contiguous chunk per worker. Each worker scans
// its chunk upwards and stops at its first match, or as soon as a lower
// match is already known. workers <= 0 means GOMAXPROCS. The first error
// from pred cancels the other workers and is returned.
func Lowest(ctx context.Context, lo, hi int64, workers int, pred Predicate) (int64, error) {
	if hi <= lo {
		return 0, ErrNotFound
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	span := hi - lo
	if int64(workers) > span {
		workers = int(span)
	}
	chunk := (span + int64(workers) - 1) / int64(workers)

	var best atomic.Int64
	best.Store(math.MaxInt64)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := lo + int64(w)*chunk
		end := min(start+chunk, hi)
		g.Go(func() error {
			for n := start; n < end; n++ {
				if n >= best.Load() {
					return nil
				}
				if (n-start)%checkEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				ok, err := pred(n)
				if err != nil {
					return err
				}
				if ok {
					storeMin(&best, n)
					return nil
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n := best.Load()
	if n == math.MaxInt64 {
		return 0, ErrNotFound
	}
	log.Debugf("lowest match in [%d,%d) is %d", lo, hi, n)
	return n, nil
}

// Unbounded searches [lo, lo+window), then the next window twice as wide,
// and so on, until a match is found or ctx is done.
func Unbounded(ctx context.Context, lo, window int64, workers int, pred Predicate) (int64, error) {
	if window <= 0 {
		window = 1
	}
	for {
		hi := lo + window
		if hi < lo {
			hi = math.MaxInt64
		}
		n, err := Lowest(ctx, lo, hi, workers, pred)
		if !errors.Is(err, ErrNotFound) {
			return n, err
		}
		if hi == math.MaxInt64 {
			return 0, ErrNotFound
		}
		lo = hi
		window *= 2
	}
}

func storeMin(v *atomic.Int64, n int64) {
	for {
		cur := v.Load()
		if n >= cur || v.CompareAndSwap(cur, n) {
			return
		}
	}
}
