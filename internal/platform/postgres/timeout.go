package postgres

import (
	"context"
	"time"
)

// withQueryTimeout bounds ctx by d. A non-positive d leaves the caller's
// deadline in charge.
func withQueryTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
