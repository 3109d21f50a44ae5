// Package guardrails holds per-request time budgets for the ranking pipeline
package guardrails

import (
	"context"
	"time"
)

// Timeouts is an optional budget bundle. Zero values mean no extra timeout
// at that level; the run itself has no deadline
type Timeouts struct {
	// Feed caps one ranking page request
	Feed time.Duration

	// Asset caps one asset request including streaming the body
	Asset time.Duration
}

// ForFeed returns a sub context for one ranking page request
func ForFeed(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Feed)
}

// ForAsset returns a sub context for one asset request
func ForAsset(parent context.Context, t Timeouts) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, t.Asset)
}

// Remaining returns the time until the deadline on ctx or zero when none is set or already expired
func Remaining(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			return d
		}
	}
	return 0
}

// withChildTimeout chooses the tighter of d and any parent remainder.
// Never extends the parent deadline
func withChildTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	if rem := Remaining(parent); rem > 0 && rem < d {
		return context.WithTimeout(parent, rem)
	}
	return context.WithTimeout(parent, d)
}
