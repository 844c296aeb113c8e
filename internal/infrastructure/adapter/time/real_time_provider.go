package time

import (
	"context"
	stdtime "time"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider port with the system clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new real time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time
func (p *RealTimeProvider) Now() stdtime.Time {
	return stdtime.Now()
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t stdtime.Time) stdtime.Duration {
	return stdtime.Since(t)
}

// WithTimeout returns a context that is canceled after the given timeout
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout stdtime.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
