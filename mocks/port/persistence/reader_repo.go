package persistence

import (
	"context"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockReaderRepository is a testify mock for the ReaderRepository port
type MockReaderRepository struct {
	mock.Mock
}

// GetByUserID mocks retrieving a reader profile
func (m *MockReaderRepository) GetByUserID(ctx context.Context, userID string) (*entity.ReaderProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReaderProfile), args.Error(1)
}

// Create mocks creating a reader profile
func (m *MockReaderRepository) Create(ctx context.Context, profile *entity.ReaderProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// ListAvailable mocks listing available readers
func (m *MockReaderRepository) ListAvailable(ctx context.Context) ([]*entity.ReaderProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ReaderProfile), args.Error(1)
}

// UpdateStatus mocks toggling reader presence
func (m *MockReaderRepository) UpdateStatus(ctx context.Context, userID string, isOnline bool, isAvailable *bool) (*entity.ReaderProfile, error) {
	args := m.Called(ctx, userID, isOnline, isAvailable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReaderProfile), args.Error(1)
}

// IncrementTotalSessions mocks bumping the completed-session counter
func (m *MockReaderRepository) IncrementTotalSessions(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
