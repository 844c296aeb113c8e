package persistence

import (
	"context"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data.
// Balance-mutating methods are the ledger's write primitives and must run
// inside a UnitOfWork transaction when combined with other writes.
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByIDForUpdate retrieves a user and takes an exclusive row lock for
	// the duration of the surrounding transaction. Settlement locks both
	// participants up front, in ascending ID order, so concurrent
	// settlements over the same pair cannot deadlock.
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByIDForUpdate(ctx context.Context, id string) (*entity.User, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If user with same ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// AdjustBalance applies a signed delta to the user's balance as an
	// atomic read-modify-write under a row lock and returns the updated
	// user. A delta that would drive the balance negative is rejected.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrInsufficientBalance: If the delta would make the balance negative
	// - ErrDatabaseConnection: If database connection fails
	AdjustBalance(ctx context.Context, userID string, deltaCents int64) (*entity.User, error)
}
