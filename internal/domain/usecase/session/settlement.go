package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/persistence"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/usecase"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/ledger"
)

// PartialPaymentWarning is returned in the settlement breakdown when the
// client's balance could not cover the full time-based charge.
const PartialPaymentWarning = "Insufficient balance - partial payment applied"

// Engine converts a closed session's elapsed time into balance changes and
// ledger entries. Everything runs inside one UnitOfWork transaction: the
// terminal session write, both balance updates, both ledger entries and the
// reader stats increment all commit or all roll back.
type Engine struct {
	uow          persistence.UnitOfWork
	ledger       *ledger.Ledger
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewEngine creates the settlement engine
func NewEngine(uow persistence.UnitOfWork, ldgr *ledger.Ledger, timeProvider coreport.TimeProvider, logger coreport.Logger) *Engine {
	return &Engine{
		uow:          uow,
		ledger:       ldgr,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Settle closes the session and charges the client for durationMinutes at
// the session's frozen rate. If the balance cannot cover the full charge the
// client is billed their entire remaining balance instead and is never
// driven negative. The reader receives the fixed revenue share of whatever
// was charged; the platform fee is the uncredited remainder and gets no
// ledger entry of its own.
//
// If the session is no longer ACTIVE the whole unit rolls back with
// ErrSessionNotActive. On any storage failure the session stays ACTIVE so
// the caller can retry.
func (e *Engine) Settle(ctx context.Context, session *entity.ReadingSession, durationMinutes int, endTime time.Time) (*usecase.SettlementResult, error) {
	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return nil, errs.NewSettlementError(session.ID, "begin", err)
	}

	result, err := e.settleInTx(txCtx, session, durationMinutes, endTime)
	if err != nil {
		if rbErr := e.uow.Rollback(txCtx); rbErr != nil {
			e.logger.Error("Failed to rollback settlement", map[string]any{
				"session_id": session.ID,
				"error":      rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return nil, errs.NewSettlementError(session.ID, "commit", err)
	}

	e.logger.Info("Session settled", map[string]any{
		"session_id":       session.ID,
		"duration_minutes": result.DurationMinutes,
		"total_amount":     result.TotalAmount,
		"reader_earnings":  result.ReaderEarnings,
		"platform_fee":     result.PlatformFee,
		"partial":          result.Warning != "",
	})

	return result, nil
}

// settleInTx performs the settlement steps inside an open transaction.
// It never commits or rolls back; the caller owns the transaction boundary.
func (e *Engine) settleInTx(ctx context.Context, session *entity.ReadingSession, durationMinutes int, endTime time.Time) (*usecase.SettlementResult, error) {
	userRepo := e.uow.GetUserRepository(ctx)
	sessionRepo := e.uow.GetSessionRepository(ctx)
	readerRepo := e.uow.GetReaderRepository(ctx)

	// Lock both participants up front in ascending ID order. Concurrent
	// settlements touching the same users always acquire locks in the same
	// order, ruling out lock-order deadlocks.
	client, err := e.lockParticipants(ctx, userRepo, session)
	if err != nil {
		return nil, errs.NewSettlementError(session.ID, "lock participants", err)
	}

	requestedAmount := session.RequestedAmount(durationMinutes)

	// Full payment charges the time-based amount; partial payment caps the
	// charge at the client's entire balance, leaving it at exactly zero.
	totalAmount := requestedAmount
	warning := ""
	if !client.CanAfford(requestedAmount) {
		totalAmount = client.Balance()
		warning = PartialPaymentWarning
	}

	readerEarnings, platformFee := entity.SplitRevenue(totalAmount)

	// Conditional terminal write: this is the exactly-once guard. If a
	// concurrent call settled first, no row matches and nothing below runs.
	if err := sessionRepo.CompleteIfActive(ctx, session.ID, endTime, durationMinutes, totalAmount); err != nil {
		if errors.Is(err, errs.ErrSessionNotActive) {
			return nil, err
		}
		return nil, errs.NewSettlementError(session.ID, "complete session", err)
	}

	description := fmt.Sprintf("%s session - %d minutes", session.SessionType, durationMinutes)
	if warning != "" {
		description += " (partial)"
	}

	// A zero charge (client balance already empty) mutates no balance and
	// therefore records no ledger entries.
	if totalAmount > 0 {
		if _, _, err := e.ledger.Apply(ctx, ledger.Entry{
			UserID:      session.ClientID,
			ReaderID:    session.ReaderID,
			Type:        entity.TransactionSessionPayment,
			DeltaCents:  -totalAmount,
			Description: description,
		}); err != nil {
			return nil, errs.NewSettlementError(session.ID, "debit client", err)
		}
	}

	if readerEarnings > 0 {
		if _, _, err := e.ledger.Apply(ctx, ledger.Entry{
			UserID:      session.ReaderID,
			ReaderID:    session.ReaderID,
			Type:        entity.TransactionSessionPayment,
			DeltaCents:  readerEarnings,
			Description: fmt.Sprintf("Earnings from %s session - %d minutes", session.SessionType, durationMinutes),
		}); err != nil {
			return nil, errs.NewSettlementError(session.ID, "credit reader", err)
		}
	}

	if err := readerRepo.IncrementTotalSessions(ctx, session.ReaderID); err != nil {
		return nil, errs.NewSettlementError(session.ID, "increment reader stats", err)
	}

	return &usecase.SettlementResult{
		SessionID:       session.ID,
		Status:          entity.SessionStatusCompleted,
		DurationMinutes: durationMinutes,
		TotalAmount:     entity.FormatCents(totalAmount),
		ReaderEarnings:  entity.FormatCents(readerEarnings),
		PlatformFee:     entity.FormatCents(platformFee),
		Warning:         warning,
	}, nil
}

// lockParticipants takes FOR UPDATE locks on client and reader in ascending
// ID order and returns the locked client entity.
func (e *Engine) lockParticipants(ctx context.Context, userRepo persistence.UserRepository, session *entity.ReadingSession) (*entity.User, error) {
	first, second := session.ClientID, session.ReaderID
	if second < first {
		first, second = second, first
	}

	var client *entity.User
	for _, id := range []string{first, second} {
		user, err := userRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if user.ID == session.ClientID {
			client = user
		}
	}

	if client == nil {
		return nil, errs.ErrUserNotFound
	}
	return client, nil
}
