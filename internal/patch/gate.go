package patch

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// MaxConcurrentLookups caps the lyrics lookups in flight at any instant.
const MaxConcurrentLookups = 15

// Gate admits at most a fixed number of callers at once. It records the
// highest number of concurrent holders it has seen.
type Gate struct {
	sem      *semaphore.Weighted
	limit    int64
	inFlight atomic.Int64
	peak     atomic.Int64
}

// NewGate creates a Gate admitting limit holders. Values below one are
// treated as one.
func NewGate(limit int) *Gate {
	if limit < 1 {
		limit = 1
	}
	return &Gate{
		sem:   semaphore.NewWeighted(int64(limit)),
		limit: int64(limit),
	}
}

// Do waits for a slot, runs fn and releases the slot however fn returns.
// It fails without running fn if ctx ends while waiting.
func (g *Gate) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)

	n := g.inFlight.Add(1)
	defer g.inFlight.Add(-1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}

	return fn(ctx)
}

// Limit returns the number of slots.
func (g *Gate) Limit() int { return int(g.limit) }

// InFlight returns the number of current holders.
func (g *Gate) InFlight() int { return int(g.inFlight.Load()) }

// Peak returns the highest number of simultaneous holders observed.
func (g *Gate) Peak() int { return int(g.peak.Load()) }
