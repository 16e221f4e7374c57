package cache

import (
	"context"
	"time"
)

// Cleaner is implemented by caches that support expired-entry sweeps.
type Cleaner interface {
	CleanExpired() int
}

// Janitor periodically sweeps expired entries from registered caches.
type Janitor struct {
	caches   []Cleaner
	interval time.Duration
}

func NewJanitor(interval time.Duration) *Janitor {
	return &Janitor{interval: interval}
}

// Register adds a cache to the sweep set. Not safe to call after Run starts.
func (j *Janitor) Register(c Cleaner) {
	j.caches = append(j.caches, c)
}

// Run sweeps until the context is canceled. It always returns ctx.Err(),
// which makes it convenient to hand to an errgroup.
func (j *Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range j.caches {
				c.CleanExpired()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
