package ledger

import (
	"context"
	"fmt"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/persistence"
)

// Ledger exposes the two primitives every settlement and payout builds on:
// adjust a balance, record the transaction explaining it. The core guarantee
// is that the two never diverge: a balance delta without its ledger entry
// (or the reverse) must be impossible, so both writes always happen inside
// one UnitOfWork transaction.
type Ledger struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// New creates the ledger primitives over the given unit of work
func New(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider, logger coreport.Logger) *Ledger {
	return &Ledger{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Entry describes one balance mutation and its audit record. ReaderID is the
// session counterpart; for top-ups it is empty and for payouts it equals
// UserID.
type Entry struct {
	UserID      string
	ReaderID    string
	Type        entity.TransactionType
	DeltaCents  int64
	Description string
}

// Apply mutates the user's balance by the entry's delta and appends the
// matching transaction record. The context must already carry a UnitOfWork
// transaction; Apply never commits. AdjustBalance rejects any delta that
// would drive the balance negative, so callers cap debits beforehand.
func (l *Ledger) Apply(ctx context.Context, entry Entry) (*entity.User, *entity.Transaction, error) {
	userRepo := l.uow.GetUserRepository(ctx)
	transactionRepo := l.uow.GetTransactionRepository(ctx)

	user, err := userRepo.AdjustBalance(ctx, entry.UserID, entry.DeltaCents)
	if err != nil {
		return nil, nil, err
	}

	transaction, err := entity.NewTransaction(
		entry.UserID,
		entry.ReaderID,
		entry.Type,
		entry.DeltaCents,
		entry.Description,
		l.timeProvider,
	)
	if err != nil {
		return nil, nil, err
	}

	if err := transactionRepo.Create(ctx, transaction); err != nil {
		return nil, nil, err
	}

	return user, transaction, nil
}

// ApplyAtomic runs Apply inside its own transaction. Used by callers whose
// whole operation is a single balance mutation (top-ups, payouts).
func (l *Ledger) ApplyAtomic(ctx context.Context, entry Entry) (*entity.User, *entity.Transaction, error) {
	txCtx, err := l.uow.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}

	user, transaction, err := l.Apply(txCtx, entry)
	if err != nil {
		if rbErr := l.uow.Rollback(txCtx); rbErr != nil {
			l.logger.Error("Failed to rollback ledger transaction", map[string]any{
				"user_id": entry.UserID,
				"error":   rbErr.Error(),
			})
		}
		return nil, nil, err
	}

	if err := l.uow.Commit(txCtx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit ledger transaction: %w", err)
	}

	l.logger.Info("Ledger entry applied", map[string]any{
		"user_id":     entry.UserID,
		"type":        entry.Type,
		"delta":       entity.FormatCents(entry.DeltaCents),
		"new_balance": user.FormattedBalance(),
	})

	return user, transaction, nil
}
