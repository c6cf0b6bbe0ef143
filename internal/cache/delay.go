package cache

import (
	"context"
	"time"
)

// Delayer models the artificial latency of the slow backing store on a
// cache miss. Injectable so tests run with zero delay.
type Delayer interface {
	Wait(ctx context.Context) error
}

// FixedDelay waits a constant duration, honoring context cancellation.
type FixedDelay time.Duration

func (d FixedDelay) Wait(ctx context.Context) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoDelay skips the wait entirely.
type NoDelay struct{}

func (NoDelay) Wait(context.Context) error { return nil }
