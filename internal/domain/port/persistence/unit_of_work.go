package persistence

import (
	"context"
)

// UnitOfWork coordinates writes across multiple repositories inside one
// database transaction. Settlement's multi-row write (session update, two
// balance updates, two ledger entries, stats increment) runs entirely inside
// a single unit: all writes succeed or none do.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetReaderRepository returns a reader repository bound to the current transaction
	GetReaderRepository(ctx context.Context) ReaderRepository

	// GetSessionRepository returns a session repository bound to the current transaction
	GetSessionRepository(ctx context.Context) SessionRepository

	// GetTransactionRepository returns a ledger repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository
}
