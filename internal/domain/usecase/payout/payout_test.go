package payout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/ledger"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/logger"
	mockcore "github.com/EmilynnJ/VIBESEER26/mocks/port/core"
	mockpersistence "github.com/EmilynnJ/VIBESEER26/mocks/port/persistence"
)

type payoutFixture struct {
	userRepo        *mockpersistence.MockUserRepository
	transactionRepo *mockpersistence.MockTransactionRepository
	uow             *mockpersistence.MockUnitOfWork
	timeProvider    *mockcore.FixedTimeProvider
	service         *Service
}

func newPayoutFixture() *payoutFixture {
	f := &payoutFixture{
		userRepo:        new(mockpersistence.MockUserRepository),
		transactionRepo: new(mockpersistence.MockTransactionRepository),
		uow:             new(mockpersistence.MockUnitOfWork),
		timeProvider:    &mockcore.FixedTimeProvider{Time: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)},
	}

	noop := logger.NewNoopLogger()
	f.service = NewService(f.userRepo, ledger.New(f.uow, f.timeProvider, noop), noop).(*Service)
	return f
}

func (f *payoutFixture) reader(t *testing.T, balance string) *entity.User {
	t.Helper()
	user, err := entity.NewUser("reader-1", "reader@example.com", "Reader", entity.RoleReader, balance, f.timeProvider)
	assert.NoError(t, err)
	return user
}

func (f *payoutFixture) expectAtomicApply(ctx context.Context, delta int64, remaining *entity.User) {
	f.uow.On("Begin", ctx).Return(ctx, nil)
	f.uow.On("GetUserRepository", ctx).Return(f.userRepo)
	f.uow.On("GetTransactionRepository", ctx).Return(f.transactionRepo)
	f.uow.On("Commit", ctx).Return(nil)
	f.userRepo.On("AdjustBalance", ctx, "reader-1", delta).Return(remaining, nil)
	f.transactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
		return tx.UserID == "reader-1" && tx.Type == entity.TransactionPayout && tx.AmountCents == delta
	})).Return(nil)
}

func TestService_RequestPayout(t *testing.T) {
	ctx := context.Background()

	t.Run("should debit the balance and record a pending payout", func(t *testing.T) {
		// Arrange
		f := newPayoutFixture()
		f.userRepo.On("GetByID", ctx, "reader-1").Return(f.reader(t, "40.00"), nil)
		f.expectAtomicApply(ctx, -1500, f.reader(t, "25.00"))

		// Act
		result, err := f.service.RequestPayout(ctx, "reader-1", "15.00", MethodPayPal)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "15.00", result.Amount)
		assert.Equal(t, MethodPayPal, result.Method)
		assert.Equal(t, "pending", result.Status)
		assert.Equal(t, "25.00", result.RemainingBalance)
		f.uow.AssertExpectations(t)
		f.transactionRepo.AssertExpectations(t)
	})

	t.Run("should default an empty method to Stripe", func(t *testing.T) {
		// Arrange
		f := newPayoutFixture()
		f.userRepo.On("GetByID", ctx, "reader-1").Return(f.reader(t, "40.00"), nil)
		f.expectAtomicApply(ctx, -2000, f.reader(t, "20.00"))

		// Act
		result, err := f.service.RequestPayout(ctx, "reader-1", "20.00", "")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, MethodStripe, result.Method)
	})

	t.Run("should reject an unsupported payout method", func(t *testing.T) {
		// Arrange
		f := newPayoutFixture()

		// Act
		_, err := f.service.RequestPayout(ctx, "reader-1", "20.00", "CHEQUE")

		// Assert
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		f.userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("should reject an amount below the payout floor", func(t *testing.T) {
		// Arrange
		f := newPayoutFixture()

		// Act
		_, err := f.service.RequestPayout(ctx, "reader-1", "14.99", MethodStripe)

		// Assert
		assert.ErrorIs(t, err, errs.ErrBelowMinimumPayout)
		f.userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("should accept exactly the payout floor", func(t *testing.T) {
		// Arrange
		f := newPayoutFixture()
		f.userRepo.On("GetByID", ctx, "reader-1").Return(f.reader(t, "15.00"), nil)
		f.expectAtomicApply(ctx, -1500, f.reader(t, "0.00"))

		// Act
		result, err := f.service.RequestPayout(ctx, "reader-1", "15.00", MethodStripe)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "0.00", result.RemainingBalance)
	})

	t.Run("should reject a non-reader", func(t *testing.T) {
		// Arrange
		f := newPayoutFixture()
		client, err := entity.NewUser("client-1", "client@example.com", "Client", entity.RoleClient, "100.00", f.timeProvider)
		assert.NoError(t, err)
		f.userRepo.On("GetByID", ctx, "client-1").Return(client, nil)

		// Act
		_, payoutErr := f.service.RequestPayout(ctx, "client-1", "20.00", MethodStripe)

		// Assert
		assert.ErrorIs(t, payoutErr, errs.ErrNotAReader)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("should return a detailed error when the balance cannot cover the payout", func(t *testing.T) {
		// Arrange
		f := newPayoutFixture()
		f.userRepo.On("GetByID", ctx, "reader-1").Return(f.reader(t, "14.00"), nil)

		// Act
		_, err := f.service.RequestPayout(ctx, "reader-1", "15.00", MethodStripe)

		// Assert
		var balanceErr *errs.InsufficientBalanceError
		assert.ErrorAs(t, err, &balanceErr)
		assert.Equal(t, "15.00", balanceErr.RequiredAmount)
		assert.Equal(t, "14.00", balanceErr.CurrentBalance)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("should reject a malformed amount", func(t *testing.T) {
		// Arrange
		f := newPayoutFixture()

		// Act
		_, err := f.service.RequestPayout(ctx, "reader-1", "fifteen", MethodStripe)

		// Assert
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}
