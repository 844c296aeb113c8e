package persistence

import (
	"context"
	"time"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a testify mock for the SessionRepository port
type MockSessionRepository struct {
	mock.Mock
}

// Create mocks saving a new session
func (m *MockSessionRepository) Create(ctx context.Context, session *entity.ReadingSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// GetByID mocks retrieving a session by ID
func (m *MockSessionRepository) GetByID(ctx context.Context, id uint64) (*entity.ReadingSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReadingSession), args.Error(1)
}

// ListActiveByUser mocks listing a user's active sessions
func (m *MockSessionRepository) ListActiveByUser(ctx context.Context, userID string) ([]*entity.ReadingSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ReadingSession), args.Error(1)
}

// ListActiveStartedBefore mocks the stale-session lookup
func (m *MockSessionRepository) ListActiveStartedBefore(ctx context.Context, cutoff time.Time) ([]*entity.ReadingSession, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ReadingSession), args.Error(1)
}

// ListCompletedByReader mocks the completed-session lookup
func (m *MockSessionRepository) ListCompletedByReader(ctx context.Context, readerID string, since *time.Time) ([]*entity.ReadingSession, error) {
	args := m.Called(ctx, readerID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ReadingSession), args.Error(1)
}

// CompleteIfActive mocks the conditional terminal write
func (m *MockSessionRepository) CompleteIfActive(ctx context.Context, sessionID uint64, endTime time.Time, totalMinutes int, totalAmountCents int64) error {
	args := m.Called(ctx, sessionID, endTime, totalMinutes, totalAmountCents)
	return args.Error(0)
}

// CancelIfOpen mocks the conditional cancellation write
func (m *MockSessionRepository) CancelIfOpen(ctx context.Context, sessionID uint64, endTime time.Time) error {
	args := m.Called(ctx, sessionID, endTime)
	return args.Error(0)
}
