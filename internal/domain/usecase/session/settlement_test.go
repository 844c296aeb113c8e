package session

import (
	"context"
	"errors"
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

type settlementFixture struct {
	uow             *mockpersistence.MockUnitOfWork
	userRepo        *mockpersistence.MockUserRepository
	readerRepo      *mockpersistence.MockReaderRepository
	sessionRepo     *mockpersistence.MockSessionRepository
	transactionRepo *mockpersistence.MockTransactionRepository
	timeProvider    *mockcore.FixedTimeProvider
	engine          *Engine
}

func newSettlementFixture(ctx context.Context) *settlementFixture {
	f := &settlementFixture{
		uow:             new(mockpersistence.MockUnitOfWork),
		userRepo:        new(mockpersistence.MockUserRepository),
		readerRepo:      new(mockpersistence.MockReaderRepository),
		sessionRepo:     new(mockpersistence.MockSessionRepository),
		transactionRepo: new(mockpersistence.MockTransactionRepository),
		timeProvider:    &mockcore.FixedTimeProvider{Time: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)},
	}
	f.uow.On("Begin", ctx).Return(ctx, nil)
	f.uow.On("GetUserRepository", ctx).Return(f.userRepo)
	f.uow.On("GetReaderRepository", ctx).Return(f.readerRepo)
	f.uow.On("GetSessionRepository", ctx).Return(f.sessionRepo)
	f.uow.On("GetTransactionRepository", ctx).Return(f.transactionRepo)

	noop := logger.NewNoopLogger()
	f.engine = NewEngine(f.uow, ledger.New(f.uow, f.timeProvider, noop), f.timeProvider, noop)
	return f
}

func (f *settlementFixture) user(t *testing.T, id, balance string) *entity.User {
	t.Helper()
	user, err := entity.NewUser(id, id+"@example.com", id, entity.RoleClient, balance, f.timeProvider)
	assert.NoError(t, err)
	return user
}

func activeSession(id uint64, start time.Time) *entity.ReadingSession {
	return &entity.ReadingSession{
		ID:            id,
		ClientID:      "client-1",
		ReaderID:      "reader-1",
		SessionType:   entity.SessionTypeChat,
		Status:        entity.SessionStatusActive,
		StartTime:     start,
		RatePerMinute: 500,
	}
}

func TestEngine_Settle(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 6, 15, 9, 57, 0, 0, time.UTC)
	endTime := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("should charge the full amount and split revenue when the balance covers it", func(t *testing.T) {
		// Arrange
		f := newSettlementFixture(ctx)
		session := activeSession(7, start)

		f.userRepo.On("GetByIDForUpdate", ctx, "client-1").Return(f.user(t, "client-1", "50.00"), nil)
		f.userRepo.On("GetByIDForUpdate", ctx, "reader-1").Return(f.user(t, "reader-1", "0.00"), nil)
		f.sessionRepo.On("CompleteIfActive", ctx, uint64(7), endTime, 3, int64(1500)).Return(nil)
		f.userRepo.On("AdjustBalance", ctx, "client-1", int64(-1500)).Return(f.user(t, "client-1", "35.00"), nil)
		f.userRepo.On("AdjustBalance", ctx, "reader-1", int64(1050)).Return(f.user(t, "reader-1", "10.50"), nil)
		f.transactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.UserID == "client-1" && tx.AmountCents == -1500 && tx.Description == "CHAT session - 3 minutes"
		})).Return(nil)
		f.transactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.UserID == "reader-1" && tx.AmountCents == 1050
		})).Return(nil)
		f.readerRepo.On("IncrementTotalSessions", ctx, "reader-1").Return(nil)
		f.uow.On("Commit", ctx).Return(nil)

		// Act
		result, err := f.engine.Settle(ctx, session, 3, endTime)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, entity.SessionStatusCompleted, result.Status)
		assert.Equal(t, 3, result.DurationMinutes)
		assert.Equal(t, "15.00", result.TotalAmount)
		assert.Equal(t, "10.50", result.ReaderEarnings)
		assert.Equal(t, "4.50", result.PlatformFee)
		assert.Empty(t, result.Warning)
		f.uow.AssertExpectations(t)
		f.userRepo.AssertExpectations(t)
		f.transactionRepo.AssertExpectations(t)
		f.readerRepo.AssertExpectations(t)
	})

	t.Run("should cap the charge at the client's balance and flag partial payment", func(t *testing.T) {
		// Arrange
		f := newSettlementFixture(ctx)
		session := activeSession(8, start)

		// Time-based charge is 1500 but the client only holds 1000
		f.userRepo.On("GetByIDForUpdate", ctx, "client-1").Return(f.user(t, "client-1", "10.00"), nil)
		f.userRepo.On("GetByIDForUpdate", ctx, "reader-1").Return(f.user(t, "reader-1", "0.00"), nil)
		f.sessionRepo.On("CompleteIfActive", ctx, uint64(8), endTime, 3, int64(1000)).Return(nil)
		f.userRepo.On("AdjustBalance", ctx, "client-1", int64(-1000)).Return(f.user(t, "client-1", "0.00"), nil)
		f.userRepo.On("AdjustBalance", ctx, "reader-1", int64(700)).Return(f.user(t, "reader-1", "7.00"), nil)
		f.transactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.UserID == "client-1" && tx.Description == "CHAT session - 3 minutes (partial)"
		})).Return(nil)
		f.transactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.UserID == "reader-1" && tx.AmountCents == 700
		})).Return(nil)
		f.readerRepo.On("IncrementTotalSessions", ctx, "reader-1").Return(nil)
		f.uow.On("Commit", ctx).Return(nil)

		// Act
		result, err := f.engine.Settle(ctx, session, 3, endTime)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "10.00", result.TotalAmount)
		assert.Equal(t, "7.00", result.ReaderEarnings)
		assert.Equal(t, "3.00", result.PlatformFee)
		assert.Equal(t, PartialPaymentWarning, result.Warning)
		f.uow.AssertExpectations(t)
	})

	t.Run("should record no ledger entries when the client balance is already zero", func(t *testing.T) {
		// Arrange
		f := newSettlementFixture(ctx)
		session := activeSession(9, start)

		f.userRepo.On("GetByIDForUpdate", ctx, "client-1").Return(f.user(t, "client-1", "0.00"), nil)
		f.userRepo.On("GetByIDForUpdate", ctx, "reader-1").Return(f.user(t, "reader-1", "0.00"), nil)
		f.sessionRepo.On("CompleteIfActive", ctx, uint64(9), endTime, 3, int64(0)).Return(nil)
		f.readerRepo.On("IncrementTotalSessions", ctx, "reader-1").Return(nil)
		f.uow.On("Commit", ctx).Return(nil)

		// Act
		result, err := f.engine.Settle(ctx, session, 3, endTime)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "0.00", result.TotalAmount)
		assert.Equal(t, PartialPaymentWarning, result.Warning)
		f.userRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
		f.transactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should roll back untouched when the session was already settled", func(t *testing.T) {
		// Arrange
		f := newSettlementFixture(ctx)
		session := activeSession(10, start)

		f.userRepo.On("GetByIDForUpdate", ctx, "client-1").Return(f.user(t, "client-1", "50.00"), nil)
		f.userRepo.On("GetByIDForUpdate", ctx, "reader-1").Return(f.user(t, "reader-1", "0.00"), nil)
		f.sessionRepo.On("CompleteIfActive", ctx, uint64(10), endTime, 3, int64(1500)).Return(errs.ErrSessionNotActive)
		f.uow.On("Rollback", ctx).Return(nil)

		// Act
		_, err := f.engine.Settle(ctx, session, 3, endTime)

		// Assert
		assert.ErrorIs(t, err, errs.ErrSessionNotActive)
		f.userRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
		f.transactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should lock both participants in ascending user ID order", func(t *testing.T) {
		// Arrange
		f := newSettlementFixture(ctx)
		session := activeSession(11, start)
		session.ClientID = "zz-client"
		session.ReaderID = "aa-reader"

		var lockOrder []string
		f.userRepo.On("GetByIDForUpdate", ctx, "aa-reader").Run(func(args mock.Arguments) {
			lockOrder = append(lockOrder, args.String(1))
		}).Return(f.user(t, "aa-reader", "0.00"), nil)
		f.userRepo.On("GetByIDForUpdate", ctx, "zz-client").Run(func(args mock.Arguments) {
			lockOrder = append(lockOrder, args.String(1))
		}).Return(f.user(t, "zz-client", "50.00"), nil)
		f.sessionRepo.On("CompleteIfActive", ctx, uint64(11), endTime, 3, int64(1500)).Return(nil)
		f.userRepo.On("AdjustBalance", ctx, "zz-client", int64(-1500)).Return(f.user(t, "zz-client", "35.00"), nil)
		f.userRepo.On("AdjustBalance", ctx, "aa-reader", int64(1050)).Return(f.user(t, "aa-reader", "10.50"), nil)
		f.transactionRepo.On("Create", ctx, mock.Anything).Return(nil)
		f.readerRepo.On("IncrementTotalSessions", ctx, "aa-reader").Return(nil)
		f.uow.On("Commit", ctx).Return(nil)

		// Act
		_, err := f.engine.Settle(ctx, session, 3, endTime)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, []string{"aa-reader", "zz-client"}, lockOrder)
	})

	t.Run("should roll back and leave the session retryable on a storage failure", func(t *testing.T) {
		// Arrange
		f := newSettlementFixture(ctx)
		session := activeSession(12, start)

		f.userRepo.On("GetByIDForUpdate", ctx, "client-1").Return(f.user(t, "client-1", "50.00"), nil)
		f.userRepo.On("GetByIDForUpdate", ctx, "reader-1").Return(f.user(t, "reader-1", "0.00"), nil)
		f.sessionRepo.On("CompleteIfActive", ctx, uint64(12), endTime, 3, int64(1500)).Return(nil)
		f.userRepo.On("AdjustBalance", ctx, "client-1", int64(-1500)).Return(nil, errors.New("connection reset"))
		f.uow.On("Rollback", ctx).Return(nil)

		// Act
		_, err := f.engine.Settle(ctx, session, 3, endTime)

		// Assert
		var settlementErr *errs.SettlementError
		assert.ErrorAs(t, err, &settlementErr)
		assert.Equal(t, "debit client", settlementErr.Step)
		f.uow.AssertExpectations(t)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
