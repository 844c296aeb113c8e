package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// SessionRepository implements the SessionRepository port using GORM
type SessionRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewSessionRepository creates a new SessionRepository instance
func NewSessionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *SessionRepository {
	return &SessionRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// modelToEntity converts a session model to an entity
func (r *SessionRepository) modelToEntity(sessionModel *model.ReadingSession) *entity.ReadingSession {
	return &entity.ReadingSession{
		ID:            sessionModel.ID,
		ClientID:      sessionModel.ClientID,
		ReaderID:      sessionModel.ReaderID,
		SessionType:   entity.SessionType(sessionModel.SessionType),
		Status:        entity.SessionStatus(sessionModel.Status),
		StartTime:     sessionModel.StartTime,
		EndTime:       sessionModel.EndTime,
		RatePerMinute: sessionModel.RatePerMinute,
		TotalMinutes:  sessionModel.TotalMinutes,
		TotalAmount:   sessionModel.TotalAmount,
		CreatedAt:     sessionModel.CreatedAt,
		UpdatedAt:     sessionModel.UpdatedAt,
	}
}

// modelsToEntities converts a slice of session models to entities
func (r *SessionRepository) modelsToEntities(sessionModels []model.ReadingSession) []*entity.ReadingSession {
	sessions := make([]*entity.ReadingSession, 0, len(sessionModels))
	for i := range sessionModels {
		sessions = append(sessions, r.modelToEntity(&sessionModels[i]))
	}
	return sessions
}

// handleDatabaseError standardizes database error handling
func (r *SessionRepository) handleDatabaseError(operation string, err error, sessionID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Session not found", map[string]any{
			"session_id": sessionID,
		})
		return errs.ErrSessionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"session_id": sessionID,
		"error":      err.Error(),
	})

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new session and fills in its generated ID
func (r *SessionRepository) Create(ctx context.Context, session *entity.ReadingSession) error {
	sessionModel := model.ReadingSession{
		ClientID:      session.ClientID,
		ReaderID:      session.ReaderID,
		SessionType:   string(session.SessionType),
		Status:        string(session.Status),
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		RatePerMinute: session.RatePerMinute,
		TotalMinutes:  session.TotalMinutes,
		TotalAmount:   session.TotalAmount,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&sessionModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating session", result.Error, 0)
	}

	session.ID = sessionModel.ID

	r.logger.Info("Session created", map[string]any{
		"session_id":   session.ID,
		"client_id":    session.ClientID,
		"reader_id":    session.ReaderID,
		"session_type": string(session.SessionType),
	})
	return nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id uint64) (*entity.ReadingSession, error) {
	var sessionModel model.ReadingSession
	result := r.db.WithContext(ctx).First(&sessionModel, "id = ?", id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting session", result.Error, id)
	}

	return r.modelToEntity(&sessionModel), nil
}

// ListActiveByUser returns ACTIVE sessions where the user is client or
// reader, newest first
func (r *SessionRepository) ListActiveByUser(ctx context.Context, userID string) ([]*entity.ReadingSession, error) {
	var sessionModels []model.ReadingSession
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.SessionStatusActive)).
		Where("client_id = ? OR reader_id = ?", userID, userID).
		Order("start_time desc").
		Find(&sessionModels)

	if result.Error != nil {
		return nil, r.handleDatabaseError("listing active sessions", result.Error, 0)
	}

	return r.modelsToEntities(sessionModels), nil
}

// ListActiveStartedBefore returns ACTIVE sessions whose start time is older
// than the cutoff
func (r *SessionRepository) ListActiveStartedBefore(ctx context.Context, cutoff time.Time) ([]*entity.ReadingSession, error) {
	var sessionModels []model.ReadingSession
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.SessionStatusActive)).
		Where("start_time < ?", cutoff).
		Order("start_time asc").
		Find(&sessionModels)

	if result.Error != nil {
		return nil, r.handleDatabaseError("listing stale sessions", result.Error, 0)
	}

	return r.modelsToEntities(sessionModels), nil
}

// ListCompletedByReader returns COMPLETED sessions for the reader, newest
// first. A nil since returns the full history.
func (r *SessionRepository) ListCompletedByReader(ctx context.Context, readerID string, since *time.Time) ([]*entity.ReadingSession, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", string(entity.SessionStatusCompleted)).
		Where("reader_id = ?", readerID)
	if since != nil {
		query = query.Where("end_time >= ?", *since)
	}

	var sessionModels []model.ReadingSession
	result := query.Order("end_time desc").Find(&sessionModels)

	if result.Error != nil {
		return nil, r.handleDatabaseError("listing completed sessions", result.Error, 0)
	}

	return r.modelsToEntities(sessionModels), nil
}

// CompleteIfActive atomically transitions the session from ACTIVE to
// COMPLETED and writes the terminal billing fields. The WHERE clause on the
// current status makes the transition happen exactly once: a concurrent
// settlement that lost the race sees zero rows affected.
func (r *SessionRepository) CompleteIfActive(ctx context.Context, sessionID uint64, endTime time.Time, totalMinutes int, totalAmountCents int64) error {
	result := r.db.WithContext(ctx).Model(&model.ReadingSession{}).
		Where("id = ? AND status = ?", sessionID, string(entity.SessionStatusActive)).
		Updates(map[string]interface{}{
			"status":        string(entity.SessionStatusCompleted),
			"end_time":      endTime,
			"total_minutes": totalMinutes,
			"total_amount":  totalAmountCents,
			"updated_at":    r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("completing session", result.Error, sessionID)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Session no longer active, skipping completion", map[string]any{
			"session_id": sessionID,
		})
		return errs.ErrSessionNotActive
	}

	r.logger.Info("Session completed", map[string]any{
		"session_id":    sessionID,
		"total_minutes": totalMinutes,
		"total_amount":  entity.FormatCents(totalAmountCents),
	})
	return nil
}

// CancelIfOpen atomically transitions the session from PENDING or ACTIVE to
// CANCELLED and sets the end time
func (r *SessionRepository) CancelIfOpen(ctx context.Context, sessionID uint64, endTime time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.ReadingSession{}).
		Where("id = ? AND status IN ?", sessionID, []string{
			string(entity.SessionStatusPending),
			string(entity.SessionStatusActive),
		}).
		Updates(map[string]interface{}{
			"status":     string(entity.SessionStatusCancelled),
			"end_time":   endTime,
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("cancelling session", result.Error, sessionID)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Session already terminal, skipping cancellation", map[string]any{
			"session_id": sessionID,
		})
		return errs.ErrInvalidSessionState
	}

	r.logger.Info("Session cancelled", map[string]any{
		"session_id": sessionID,
	})
	return nil
}
