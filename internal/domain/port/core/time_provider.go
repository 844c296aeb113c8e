package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain. Session billing is
// pure arithmetic over times obtained here, which keeps duration rounding
// testable with a fixed clock.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
