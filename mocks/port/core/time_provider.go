package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTimeProvider is a testify mock for the core TimeProvider port
type MockTimeProvider struct {
	mock.Mock
}

// Now mocks the current time
func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

// Since mocks elapsed-time measurement
func (m *MockTimeProvider) Since(t time.Time) time.Duration {
	args := m.Called(t)
	return args.Get(0).(time.Duration)
}

// WithTimeout mocks deriving a context with timeout
func (m *MockTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	args := m.Called(ctx, timeout)
	return args.Get(0).(context.Context), args.Get(1).(context.CancelFunc)
}

// FixedTimeProvider returns the same instant from every call. Convenient for
// billing tests that need deterministic timestamps without mock expectations.
type FixedTimeProvider struct {
	Time time.Time
}

// Now returns the fixed instant
func (p *FixedTimeProvider) Now() time.Time {
	return p.Time
}

// Since measures from the fixed instant
func (p *FixedTimeProvider) Since(t time.Time) time.Duration {
	return p.Time.Sub(t)
}

// WithTimeout derives a real context with timeout
func (p *FixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
