// Package ratelimit bounds outbound model calls over a sliding time window.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig marks a limiter configuration that would block forever.
// It is fatal at startup, never silently accepted.
var ErrInvalidConfig = errors.New("rate limiter misconfigured")

// Limiter is an admission-control primitive, not a lock: all window
// management happens on Acquire and release is implicit. It assumes a
// single-threaded caller, matching the session's one-outstanding-request
// model.
type Limiter struct {
	maxCalls int
	period   time.Duration
	stamps   []time.Time
	now      func() time.Time
}

func New(maxCalls int, period time.Duration) (*Limiter, error) {
	if maxCalls <= 0 {
		return nil, fmt.Errorf("%w: max calls must be positive, got %d", ErrInvalidConfig, maxCalls)
	}
	if period <= 0 {
		return nil, fmt.Errorf("%w: period must be positive, got %s", ErrInvalidConfig, period)
	}
	return &Limiter{maxCalls: maxCalls, period: period, now: time.Now}, nil
}

// Acquire admits one call. It discards expired window entries, blocks until
// the oldest entry ages out when the window is full (recomputing now after
// waking), then records the admission timestamp. The wait honors ctx
// cancellation.
func (l *Limiter) Acquire(ctx context.Context) error {
	now := l.now()
	l.evict(now)

	if len(l.stamps) >= l.maxCalls {
		wait := l.period - now.Sub(l.stamps[0])
		if wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
		now = l.now()
		l.evict(now)
	}

	l.stamps = append(l.stamps, now)
	return nil
}

// Active returns the number of admissions still inside the window.
func (l *Limiter) Active() int {
	l.evict(l.now())
	return len(l.stamps)
}

func (l *Limiter) evict(now time.Time) {
	i := 0
	for i < len(l.stamps) && now.Sub(l.stamps[i]) >= l.period {
		i++
	}
	l.stamps = l.stamps[i:]
}
