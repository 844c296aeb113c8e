package migration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	mockcore "github.com/EmilynnJ/VIBESEER26/mocks/port/core"
	mockpersistence "github.com/EmilynnJ/VIBESEER26/mocks/port/persistence"
)

const (
	seedClientID = "00000000-0000-0000-0000-000000000001"
	seedReaderID = "00000000-0000-0000-0000-000000000002"
)

func TestCreateDefaultAccounts(t *testing.T) {
	ctx := context.Background()
	timeProvider := &mockcore.FixedTimeProvider{Time: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}

	t.Run("should pair a funded seed balance with a BALANCE_ADD ledger entry", func(t *testing.T) {
		// Arrange
		userRepo := new(mockpersistence.MockUserRepository)
		readerRepo := new(mockpersistence.MockReaderRepository)
		transactionRepo := new(mockpersistence.MockTransactionRepository)

		userRepo.On("GetByID", ctx, seedClientID).Return(nil, errs.ErrUserNotFound)
		userRepo.On("GetByID", ctx, seedReaderID).Return(nil, errs.ErrUserNotFound)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.ID == seedClientID && u.Balance() == 5000
		})).Return(nil)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.ID == seedReaderID && u.Balance() == 0
		})).Return(nil)
		// The client's 50.00 starting balance gets its ledger pair so the
		// balance always equals the entry sum, even for seeded accounts
		transactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.UserID == seedClientID &&
				tx.Type == entity.TransactionBalanceAdd &&
				tx.AmountCents == 5000
		})).Return(nil)
		readerRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.ReaderProfile) bool {
			return p.UserID == seedReaderID &&
				p.ChatRatePerMin == 399 &&
				p.PhoneRatePerMin == 499 &&
				p.VideoRatePerMin == 599 &&
				p.IsOnline && p.IsAvailable
		})).Return(nil)

		// Act
		err := CreateDefaultAccounts(ctx, userRepo, readerRepo, transactionRepo, timeProvider)

		// Assert
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
		readerRepo.AssertExpectations(t)
		transactionRepo.AssertExpectations(t)
		// The zero-balance reader gets no ledger entry
		transactionRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("should skip accounts that already exist", func(t *testing.T) {
		// Arrange
		userRepo := new(mockpersistence.MockUserRepository)
		readerRepo := new(mockpersistence.MockReaderRepository)
		transactionRepo := new(mockpersistence.MockTransactionRepository)

		existingClient, err := entity.NewUser(seedClientID, "client@example.com", "Demo Client", entity.RoleClient, "50.00", timeProvider)
		assert.NoError(t, err)
		existingReader, err := entity.NewUser(seedReaderID, "reader@example.com", "Demo Reader", entity.RoleReader, "0.00", timeProvider)
		assert.NoError(t, err)
		userRepo.On("GetByID", ctx, seedClientID).Return(existingClient, nil)
		userRepo.On("GetByID", ctx, seedReaderID).Return(existingReader, nil)

		// Act
		seedErr := CreateDefaultAccounts(ctx, userRepo, readerRepo, transactionRepo, timeProvider)

		// Assert
		assert.NoError(t, seedErr)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		readerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		transactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should stop on an unexpected lookup failure", func(t *testing.T) {
		// Arrange
		userRepo := new(mockpersistence.MockUserRepository)
		readerRepo := new(mockpersistence.MockReaderRepository)
		transactionRepo := new(mockpersistence.MockTransactionRepository)
		userRepo.On("GetByID", ctx, seedClientID).Return(nil, errs.ErrDatabaseConnection)

		// Act
		err := CreateDefaultAccounts(ctx, userRepo, readerRepo, transactionRepo, timeProvider)

		// Assert
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
