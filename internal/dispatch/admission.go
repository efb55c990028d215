package dispatch

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Permits bounds the number of probes allowed in flight at once. It is
// the sole mechanism capping simultaneous network requests.
type Permits struct {
	sem *semaphore.Weighted
}

// NewPermits creates a permit pool of the given size. Config validation
// guarantees size > 0 before a run starts.
func NewPermits(size int) *Permits {
	return &Permits{sem: semaphore.NewWeighted(int64(size))}
}

// Acquire blocks until a permit is free or ctx is done.
func (p *Permits) Acquire(ctx context.Context) error {
	return p.sem.Acquire(ctx, 1)
}

// Release returns a permit. Every successful Acquire must be paired
// with exactly one Release, on every exit path.
func (p *Permits) Release() {
	p.sem.Release(1)
}
