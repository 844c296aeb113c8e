package persistence

import (
	"context"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a testify mock for the UnitOfWork port
type MockUnitOfWork struct {
	mock.Mock
}

// Begin mocks starting a transaction
func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return ctx, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

// Commit mocks committing the transaction
func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Rollback mocks rolling back the transaction
func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetUserRepository mocks obtaining a transaction-bound user repository
func (m *MockUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.UserRepository)
}

// GetReaderRepository mocks obtaining a transaction-bound reader repository
func (m *MockUnitOfWork) GetReaderRepository(ctx context.Context) persistence.ReaderRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.ReaderRepository)
}

// GetSessionRepository mocks obtaining a transaction-bound session repository
func (m *MockUnitOfWork) GetSessionRepository(ctx context.Context) persistence.SessionRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.SessionRepository)
}

// GetTransactionRepository mocks obtaining a transaction-bound ledger repository
func (m *MockUnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.TransactionRepository)
}
