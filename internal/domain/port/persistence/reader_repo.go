package persistence

import (
	"context"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
)

// ReaderRepository defines methods to interact with reader profiles
type ReaderRepository interface {
	// GetByUserID retrieves the reader profile for the given user
	//
	// Possible errors:
	// - ErrReaderNotFound: If no profile exists for the user
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID string) (*entity.ReaderProfile, error)

	// Create creates a new reader profile
	//
	// Possible errors:
	// - ErrDuplicateUser: If a profile already exists for the user
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, profile *entity.ReaderProfile) error

	// ListAvailable returns profiles of readers currently accepting sessions
	ListAvailable(ctx context.Context) ([]*entity.ReaderProfile, error)

	// UpdateStatus sets the reader's presence flags. A nil isAvailable
	// leaves the availability flag unchanged.
	//
	// Possible errors:
	// - ErrReaderNotFound: If no profile exists for the user
	// - ErrDatabaseConnection: If database connection fails
	UpdateStatus(ctx context.Context, userID string, isOnline bool, isAvailable *bool) (*entity.ReaderProfile, error)

	// IncrementTotalSessions bumps the reader's completed-session counter.
	// Called by settlement inside the same transaction as the balance writes.
	//
	// Possible errors:
	// - ErrReaderNotFound: If no profile exists for the user
	// - ErrDatabaseConnection: If database connection fails
	IncrementTotalSessions(ctx context.Context, userID string) error
}
