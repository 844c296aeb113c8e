package persistence

import (
	"context"
	"time"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
)

// SessionRepository defines methods to interact with reading sessions.
// Terminal writes are conditional on the current status so that the
// ACTIVE→COMPLETED transition happens exactly once even under concurrent
// end-session calls.
type SessionRepository interface {
	// Create saves a new session and fills in its generated ID
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, session *entity.ReadingSession) error

	// GetByID retrieves a session by ID
	//
	// Possible errors:
	// - ErrSessionNotFound: If session with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.ReadingSession, error)

	// ListActiveByUser returns ACTIVE sessions where the user is client or
	// reader, newest first
	ListActiveByUser(ctx context.Context, userID string) ([]*entity.ReadingSession, error)

	// ListActiveStartedBefore returns ACTIVE sessions whose start time is
	// older than the cutoff. Used by the stale-session sweep.
	ListActiveStartedBefore(ctx context.Context, cutoff time.Time) ([]*entity.ReadingSession, error)

	// ListCompletedByReader returns COMPLETED sessions for the reader,
	// newest first. A nil since returns the full history.
	ListCompletedByReader(ctx context.Context, readerID string, since *time.Time) ([]*entity.ReadingSession, error)

	// CompleteIfActive atomically transitions the session from ACTIVE to
	// COMPLETED and writes the terminal billing fields. The update is
	// conditional on the current status: if the session is no longer
	// ACTIVE, nothing is written.
	//
	// Possible errors:
	// - ErrSessionNotActive: If the session was not in ACTIVE status
	// - ErrDatabaseConnection: If database connection fails
	CompleteIfActive(ctx context.Context, sessionID uint64, endTime time.Time, totalMinutes int, totalAmountCents int64) error

	// CancelIfOpen atomically transitions the session from PENDING or
	// ACTIVE to CANCELLED and sets the end time. No monetary effect.
	//
	// Possible errors:
	// - ErrInvalidSessionState: If the session was already terminal
	// - ErrDatabaseConnection: If database connection fails
	CancelIfOpen(ctx context.Context, sessionID uint64, endTime time.Time) error
}
