// Package latency simulates the round trip of a backend call.
package latency

import (
	"context"
	"time"
)

// Func waits for d or until ctx is done, whichever comes first.
type Func func(ctx context.Context, d time.Duration) error

// Simulate is the production Func backed by a timer.
func Simulate(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// None returns immediately unless ctx is already done.
func None(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
