package persistence

import (
	"context"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
)

// TransactionRepository defines methods to interact with the append-only
// ledger. Entries are created, never updated or deleted.
type TransactionRepository interface {
	// Create appends a ledger entry and fills in its generated ID
	//
	// Possible errors:
	// - ErrUserNotFound: If the referenced user does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByUser returns the user's most recent entries, newest first,
	// capped at limit
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)

	// ListByUserAndType returns the user's most recent entries of one type,
	// newest first, capped at limit. A limit <= 0 returns all entries.
	ListByUserAndType(ctx context.Context, userID string, transactionType entity.TransactionType, limit int) ([]*entity.Transaction, error)

	// SumAmountByUser returns the signed sum of all entry amounts for the
	// user. By the reconciliation invariant this equals the user's balance.
	SumAmountByUser(ctx context.Context, userID string) (int64, error)
}
