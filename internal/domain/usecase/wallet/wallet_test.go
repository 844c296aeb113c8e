package wallet

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

type walletFixture struct {
	userRepo        *mockpersistence.MockUserRepository
	transactionRepo *mockpersistence.MockTransactionRepository
	uow             *mockpersistence.MockUnitOfWork
	timeProvider    *mockcore.FixedTimeProvider
	service         *Service
}

func newWalletFixture() *walletFixture {
	f := &walletFixture{
		userRepo:        new(mockpersistence.MockUserRepository),
		transactionRepo: new(mockpersistence.MockTransactionRepository),
		uow:             new(mockpersistence.MockUnitOfWork),
		timeProvider:    &mockcore.FixedTimeProvider{Time: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)},
	}

	noop := logger.NewNoopLogger()
	f.service = NewService(f.userRepo, f.transactionRepo, ledger.New(f.uow, f.timeProvider, noop), noop).(*Service)
	return f
}

func (f *walletFixture) user(t *testing.T, balance string) *entity.User {
	t.Helper()
	user, err := entity.NewUser("user-1", "user@example.com", "User", entity.RoleClient, balance, f.timeProvider)
	assert.NoError(t, err)
	return user
}

func TestService_AddBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("should credit the balance atomically with its ledger entry", func(t *testing.T) {
		// Arrange
		f := newWalletFixture()
		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.uow.On("GetUserRepository", ctx).Return(f.userRepo)
		f.uow.On("GetTransactionRepository", ctx).Return(f.transactionRepo)
		f.uow.On("Commit", ctx).Return(nil)
		f.userRepo.On("AdjustBalance", ctx, "user-1", int64(2500)).Return(f.user(t, "35.00"), nil)
		f.transactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.UserID == "user-1" &&
				tx.Type == entity.TransactionBalanceAdd &&
				tx.AmountCents == 2500 &&
				tx.Description == "Added 25.00 to balance"
		})).Return(nil)

		// Act
		user, transaction, err := f.service.AddBalance(ctx, "user-1", "25.00")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "35.00", user.FormattedBalance())
		assert.Equal(t, int64(2500), transaction.AmountCents)
		f.uow.AssertExpectations(t)
		f.transactionRepo.AssertExpectations(t)
	})

	t.Run("should reject amounts below the minimum top-up", func(t *testing.T) {
		// Arrange
		f := newWalletFixture()

		// Act
		_, _, err := f.service.AddBalance(ctx, "user-1", "4.99")

		// Assert
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("should reject amounts above the maximum top-up", func(t *testing.T) {
		// Arrange
		f := newWalletFixture()

		// Act
		_, _, err := f.service.AddBalance(ctx, "user-1", "1000.01")

		// Assert
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		// Arrange
		f := newWalletFixture()

		// Act
		_, _, err := f.service.AddBalance(ctx, "user-1", "-10.00")

		// Assert
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}

func TestService_GetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the formatted balance", func(t *testing.T) {
		// Arrange
		f := newWalletFixture()
		f.userRepo.On("GetByID", ctx, "user-1").Return(f.user(t, "12.34"), nil)

		// Act
		balance, err := f.service.GetBalance(ctx, "user-1")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "12.34", balance)
	})

	t.Run("should pass through user not found", func(t *testing.T) {
		// Arrange
		f := newWalletFixture()
		f.userRepo.On("GetByID", ctx, "ghost").Return(nil, errs.ErrUserNotFound)

		// Act
		_, err := f.service.GetBalance(ctx, "ghost")

		// Assert
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestService_ListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("should apply the default limit when none is given", func(t *testing.T) {
		// Arrange
		f := newWalletFixture()
		f.transactionRepo.On("ListByUser", ctx, "user-1", DefaultTransactionLimit).Return([]*entity.Transaction{}, nil)

		// Act
		_, err := f.service.ListTransactions(ctx, "user-1", 0)

		// Assert
		assert.NoError(t, err)
		f.transactionRepo.AssertExpectations(t)
	})

	t.Run("should honor an explicit limit", func(t *testing.T) {
		// Arrange
		f := newWalletFixture()
		f.transactionRepo.On("ListByUser", ctx, "user-1", 10).Return([]*entity.Transaction{}, nil)

		// Act
		_, err := f.service.ListTransactions(ctx, "user-1", 10)

		// Assert
		assert.NoError(t, err)
		f.transactionRepo.AssertExpectations(t)
	})
}
