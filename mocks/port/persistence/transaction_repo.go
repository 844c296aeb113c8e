package persistence

import (
	"context"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a testify mock for the TransactionRepository port
type MockTransactionRepository struct {
	mock.Mock
}

// Create mocks appending a ledger entry
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

// ListByUser mocks listing a user's entries
func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

// ListByUserAndType mocks listing entries of one type
func (m *MockTransactionRepository) ListByUserAndType(ctx context.Context, userID string, transactionType entity.TransactionType, limit int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID, transactionType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

// SumAmountByUser mocks the ledger reconciliation sum
func (m *MockTransactionRepository) SumAmountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
