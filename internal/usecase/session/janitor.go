// Package session reclaims per-session state that has gone idle.
package session

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper drops state untouched since before cutoff and reports how much it
// dropped.
type Sweeper interface {
	Sweep(cutoff time.Time) int
}

type Janitor struct {
	ttl      time.Duration
	every    time.Duration
	sweepers []Sweeper
	now      func() time.Time
}

// NewJanitor sweeps state idle for longer than ttl. It runs every ttl, or
// every minute when ttl is longer.
func NewJanitor(ttl time.Duration, sweepers ...Sweeper) *Janitor {
	return &Janitor{
		ttl:      ttl,
		every:    min(ttl, time.Minute),
		sweepers: sweepers,
		now:      time.Now,
	}
}

func (j *Janitor) SweepOnce() int {
	cutoff := j.now().Add(-j.ttl)
	n := 0
	for _, s := range j.sweepers {
		n += s.Sweep(cutoff)
	}
	return n
}

// Run sweeps until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	const op = "session.Janitor.Run"
	log := slog.With("op", op)

	ticker := time.NewTicker(j.every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := j.SweepOnce(); n > 0 {
				log.Debug("reclaimed idle sessions", "count", n)
			}
		}
	}
}
