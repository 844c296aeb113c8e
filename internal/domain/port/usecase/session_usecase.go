package usecase

import (
	"context"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
)

// SessionSummary is returned when a session is started
type SessionSummary struct {
	ID            uint64               `json:"id"`
	SessionType   entity.SessionType   `json:"sessionType"`
	Status        entity.SessionStatus `json:"status"`
	StartTime     string               `json:"startTime"`
	RatePerMinute string               `json:"ratePerMinute"`
	ReaderName    string               `json:"readerName"`
}

// SettlementResult is the billing breakdown returned when a session ends.
// PlatformFee is derived (TotalAmount − ReaderEarnings); it has no ledger
// entry of its own. Warning is set on the partial-payment path.
type SettlementResult struct {
	SessionID       uint64               `json:"sessionId"`
	Status          entity.SessionStatus `json:"status"`
	DurationMinutes int                  `json:"durationMinutes"`
	TotalAmount     string               `json:"totalAmount"`
	ReaderEarnings  string               `json:"readerEarnings"`
	PlatformFee     string               `json:"platformFee"`
	Warning         string               `json:"warning,omitempty"`
}

// SessionUseCase defines the session lifecycle operations
type SessionUseCase interface {
	// StartSession resolves the reader's rate, applies the
	// minimum-affordability gate and creates an ACTIVE session with the
	// rate frozen. No balance is debited until settlement.
	StartSession(ctx context.Context, clientID, readerID string, sessionType string) (*SessionSummary, error)

	// EndSession computes the billed duration and settles the session
	// atomically. Only a participant may end a session; concurrent calls
	// settle exactly once.
	EndSession(ctx context.Context, sessionID uint64, callerID string) (*SettlementResult, error)

	// CancelSession moves a PENDING or ACTIVE session to CANCELLED with no
	// monetary effect
	CancelSession(ctx context.Context, sessionID uint64, callerID string) error

	// GetSession returns a session visible only to its participants
	GetSession(ctx context.Context, sessionID uint64, callerID string) (*entity.ReadingSession, error)

	// ListActiveSessions returns the caller's ACTIVE sessions
	ListActiveSessions(ctx context.Context, callerID string) ([]*entity.ReadingSession, error)

	// ListAvailableReaders returns profiles of readers accepting sessions
	ListAvailableReaders(ctx context.Context) ([]*entity.ReaderProfile, error)

	// UpdateReaderStatus toggles the caller's presence flags. Caller must
	// be a reader.
	UpdateReaderStatus(ctx context.Context, callerID string, isOnline bool, isAvailable *bool) (*entity.ReaderProfile, error)
}
