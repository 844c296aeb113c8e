package entity

import (
	"time"

	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
)

// SessionType is the kind of reading being delivered
type SessionType string

// Session types
const (
	SessionTypeChat  SessionType = "CHAT"
	SessionTypePhone SessionType = "PHONE"
	SessionTypeVideo SessionType = "VIDEO"
)

// IsValidSessionType reports whether the given string is an allowed session type
func IsValidSessionType(sessionType string) bool {
	return sessionType == string(SessionTypeChat) ||
		sessionType == string(SessionTypePhone) ||
		sessionType == string(SessionTypeVideo)
}

// SessionStatus is the lifecycle state of a reading session
type SessionStatus string

// Session statuses. PENDING is reserved; session start goes straight to
// ACTIVE once the balance gate passes. COMPLETED and CANCELLED are terminal.
const (
	SessionStatusPending   SessionStatus = "PENDING"
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
	SessionStatusCancelled SessionStatus = "CANCELLED"
)

// MinimumBookableMinutes is the affordability gate applied at session start:
// the client must be able to afford this many minutes at the resolved rate.
// It is a pre-check only, not a reservation or a hold.
const MinimumBookableMinutes = 5

// ReadingSession represents one billable engagement between a client and a
// reader. RatePerMinute is frozen at creation and never re-resolved;
// TotalMinutes and TotalAmount are written exactly once, at settlement.
type ReadingSession struct {
	ID            uint64
	ClientID      string
	ReaderID      string
	SessionType   SessionType
	Status        SessionStatus
	StartTime     time.Time
	EndTime       *time.Time // nil until a terminal state
	RatePerMinute int64      // cents, immutable after creation
	TotalMinutes  int
	TotalAmount   int64 // cents actually charged, set at settlement
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewReadingSession creates an ACTIVE session with the rate snapshotted from
// the reader's profile. Callers must have run the rate and balance checks.
func NewReadingSession(clientID, readerID string, sessionType SessionType, ratePerMinute int64, timeProvider coreport.TimeProvider) (*ReadingSession, error) {
	if clientID == "" || readerID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if !IsValidSessionType(string(sessionType)) {
		return nil, errs.ErrInvalidSessionType
	}
	if ratePerMinute <= 0 {
		return nil, errs.ErrServiceNotOffered
	}

	now := timeProvider.Now()
	return &ReadingSession{
		ClientID:      clientID,
		ReaderID:      readerID,
		SessionType:   sessionType,
		Status:        SessionStatusActive,
		StartTime:     now,
		RatePerMinute: ratePerMinute,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsParticipant reports whether the given user is the session's client or reader
func (s *ReadingSession) IsParticipant(userID string) bool {
	return s.ClientID == userID || s.ReaderID == userID
}

// IsActive reports whether the session can still be ended or billed
func (s *ReadingSession) IsActive() bool {
	return s.Status == SessionStatusActive
}

// CanCancel reports whether the session may transition to CANCELLED.
// Only PENDING and ACTIVE sessions can be cancelled.
func (s *ReadingSession) CanCancel() bool {
	return s.Status == SessionStatusPending || s.Status == SessionStatusActive
}

// BillableMinutes computes the billed duration between the session start and
// the given end time. Partial minutes always round up (61 seconds bills as 2
// minutes), and the result is clamped to a minimum of 1 minute so clock skew
// can never produce a zero or negative charge.
func (s *ReadingSession) BillableMinutes(endTime time.Time) int {
	elapsed := endTime.Sub(s.StartTime)
	if elapsed <= 0 {
		return 1
	}

	minutes := int((elapsed + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		return 1
	}
	return minutes
}

// RequestedAmount is the full time-based charge in cents for the given
// billed duration at the frozen rate.
func (s *ReadingSession) RequestedAmount(durationMinutes int) int64 {
	return int64(durationMinutes) * s.RatePerMinute
}
