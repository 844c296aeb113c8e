package session

import (
	"context"
	"time"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/persistence"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/usecase"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/rate"
)

// Service implements the session lifecycle: start, end (settlement), cancel
// and the participant-scoped reads. Transitions are PENDING→ACTIVE→
// COMPLETED/CANCELLED; start skips PENDING and creates sessions ACTIVE once
// the affordability gate passes.
type Service struct {
	sessionRepo  persistence.SessionRepository
	userRepo     persistence.UserRepository
	readerRepo   persistence.ReaderRepository
	rateResolver *rate.Resolver
	settlement   *Engine
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the session lifecycle service
func NewService(
	sessionRepo persistence.SessionRepository,
	userRepo persistence.UserRepository,
	readerRepo persistence.ReaderRepository,
	rateResolver *rate.Resolver,
	settlement *Engine,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.SessionUseCase {
	return &Service{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		readerRepo:   readerRepo,
		rateResolver: rateResolver,
		settlement:   settlement,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// StartSession validates the reader, rate and client balance, then creates
// an ACTIVE session with the rate frozen. Nothing is debited here; the
// minimum-affordability gate is a pre-check, not a reservation.
func (s *Service) StartSession(ctx context.Context, clientID, readerID string, sessionType string) (*usecase.SessionSummary, error) {
	kind := entity.SessionType(sessionType)

	ratePerMinute, err := s.rateResolver.Resolve(ctx, readerID, kind)
	if err != nil {
		return nil, err
	}

	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	minimumBalance := ratePerMinute * entity.MinimumBookableMinutes
	if !client.CanAfford(minimumBalance) {
		return nil, errs.NewInsufficientBalanceError(
			clientID,
			entity.FormatCents(minimumBalance),
			client.FormattedBalance(),
		)
	}

	session, err := entity.NewReadingSession(clientID, readerID, kind, ratePerMinute, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Session started", map[string]any{
		"session_id":   session.ID,
		"client_id":    clientID,
		"reader_id":    readerID,
		"session_type": sessionType,
		"rate_per_min": entity.FormatCents(ratePerMinute),
	})

	readerName := ""
	if profile, err := s.readerRepo.GetByUserID(ctx, readerID); err == nil {
		readerName = profile.DisplayName
	}

	return &usecase.SessionSummary{
		ID:            session.ID,
		SessionType:   session.SessionType,
		Status:        session.Status,
		StartTime:     session.StartTime.Format(time.RFC3339),
		RatePerMinute: entity.FormatCents(session.RatePerMinute),
		ReaderName:    readerName,
	}, nil
}

// EndSession computes the billed duration and hands the session to the
// settlement engine. Concurrent calls on the same session settle exactly
// once: the losers fail with ErrSessionNotActive.
func (s *Service) EndSession(ctx context.Context, sessionID uint64, callerID string) (*usecase.SettlementResult, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsParticipant(callerID) {
		return nil, errs.ErrForbidden
	}

	if !session.IsActive() {
		// Fast path; the authoritative guard is the conditional terminal
		// write inside the settlement transaction.
		return nil, errs.NewSessionStateError(sessionID, string(session.Status), "end", errs.ErrSessionNotActive)
	}

	endTime := s.timeProvider.Now()
	durationMinutes := session.BillableMinutes(endTime)

	return s.settlement.Settle(ctx, session, durationMinutes, endTime)
}

// CancelSession moves a PENDING or ACTIVE session to CANCELLED. No balance
// changes and no ledger entry; the end time is recorded for audit.
func (s *Service) CancelSession(ctx context.Context, sessionID uint64, callerID string) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if !session.IsParticipant(callerID) {
		return errs.ErrForbidden
	}

	if !session.CanCancel() {
		return errs.NewSessionStateError(sessionID, string(session.Status), "cancel", errs.ErrInvalidSessionState)
	}

	if err := s.sessionRepo.CancelIfOpen(ctx, sessionID, s.timeProvider.Now()); err != nil {
		return err
	}

	s.logger.Info("Session cancelled", map[string]any{
		"session_id": sessionID,
		"caller_id":  callerID,
	})

	return nil
}

// GetSession returns a session, visible only to its client and reader
func (s *Service) GetSession(ctx context.Context, sessionID uint64, callerID string) (*entity.ReadingSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsParticipant(callerID) {
		return nil, errs.ErrForbidden
	}

	return session, nil
}

// ListActiveSessions returns the caller's ACTIVE sessions, newest first
func (s *Service) ListActiveSessions(ctx context.Context, callerID string) ([]*entity.ReadingSession, error) {
	return s.sessionRepo.ListActiveByUser(ctx, callerID)
}

// ListAvailableReaders returns profiles of readers accepting sessions
func (s *Service) ListAvailableReaders(ctx context.Context) ([]*entity.ReaderProfile, error) {
	return s.readerRepo.ListAvailable(ctx)
}

// UpdateReaderStatus toggles the caller's presence flags. A nil isAvailable
// leaves availability unchanged.
func (s *Service) UpdateReaderStatus(ctx context.Context, callerID string, isOnline bool, isAvailable *bool) (*entity.ReaderProfile, error) {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsReader() && caller.Role != entity.RoleAdmin {
		return nil, errs.ErrNotAReader
	}

	profile, err := s.readerRepo.UpdateStatus(ctx, callerID, isOnline, isAvailable)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reader status updated", map[string]any{
		"reader_id":    callerID,
		"is_online":    profile.IsOnline,
		"is_available": profile.IsAvailable,
	})

	return profile, nil
}
