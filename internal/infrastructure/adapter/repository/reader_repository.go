package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// ReaderRepository implements the ReaderRepository port using GORM
type ReaderRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewReaderRepository creates a new ReaderRepository instance
func NewReaderRepository(db *gorm.DB, logger coreport.Logger) *ReaderRepository {
	return &ReaderRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a reader profile model to an entity
func (r *ReaderRepository) modelToEntity(profileModel *model.ReaderProfile) *entity.ReaderProfile {
	return &entity.ReaderProfile{
		UserID:          profileModel.UserID,
		DisplayName:     profileModel.DisplayName,
		ChatRatePerMin:  profileModel.ChatRatePerMin,
		PhoneRatePerMin: profileModel.PhoneRatePerMin,
		VideoRatePerMin: profileModel.VideoRatePerMin,
		IsOnline:        profileModel.IsOnline,
		IsAvailable:     profileModel.IsAvailable,
		Rating:          profileModel.Rating,
		TotalReviews:    profileModel.TotalReviews,
		TotalSessions:   profileModel.TotalSessions,
		CreatedAt:       profileModel.CreatedAt,
		UpdatedAt:       profileModel.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *ReaderRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Reader profile not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrReaderNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUser
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByUserID retrieves the reader profile for the given user
func (r *ReaderRepository) GetByUserID(ctx context.Context, userID string) (*entity.ReaderProfile, error) {
	var profileModel model.ReaderProfile
	result := r.db.WithContext(ctx).First(&profileModel, "user_id = ?", userID)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting reader profile", result.Error, userID)
	}

	return r.modelToEntity(&profileModel), nil
}

// Create creates a new reader profile
func (r *ReaderRepository) Create(ctx context.Context, profile *entity.ReaderProfile) error {
	r.logger.Debug("Creating reader profile", map[string]any{
		"user_id": profile.UserID,
	})

	profileModel := model.ReaderProfile{
		UserID:          profile.UserID,
		DisplayName:     profile.DisplayName,
		ChatRatePerMin:  profile.ChatRatePerMin,
		PhoneRatePerMin: profile.PhoneRatePerMin,
		VideoRatePerMin: profile.VideoRatePerMin,
		IsOnline:        profile.IsOnline,
		IsAvailable:     profile.IsAvailable,
		Rating:          profile.Rating,
		TotalReviews:    profile.TotalReviews,
		TotalSessions:   profile.TotalSessions,
		CreatedAt:       profile.CreatedAt,
		UpdatedAt:       profile.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&profileModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating reader profile", result.Error, profile.UserID)
	}

	r.logger.Info("Reader profile created successfully", map[string]any{
		"user_id": profile.UserID,
	})
	return nil
}

// ListAvailable returns profiles of readers currently accepting sessions,
// highest rated first
func (r *ReaderRepository) ListAvailable(ctx context.Context) ([]*entity.ReaderProfile, error) {
	var profileModels []model.ReaderProfile
	result := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("rating desc, total_sessions desc").
		Find(&profileModels)

	if result.Error != nil {
		r.logger.Error("Database error when listing available readers", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	profiles := make([]*entity.ReaderProfile, 0, len(profileModels))
	for i := range profileModels {
		profiles = append(profiles, r.modelToEntity(&profileModels[i]))
	}

	return profiles, nil
}

// UpdateStatus sets the reader's presence flags. A nil isAvailable leaves
// the availability flag unchanged.
func (r *ReaderRepository) UpdateStatus(ctx context.Context, userID string, isOnline bool, isAvailable *bool) (*entity.ReaderProfile, error) {
	updates := map[string]interface{}{
		"is_online": isOnline,
	}
	if isAvailable != nil {
		updates["is_available"] = *isAvailable
	}

	result := r.db.WithContext(ctx).Model(&model.ReaderProfile{}).
		Where("user_id = ?", userID).
		Updates(updates)

	if result.Error != nil {
		return nil, r.handleDatabaseError("updating reader status", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Reader profile not found during status update", map[string]any{
			"user_id": userID,
		})
		return nil, errs.ErrReaderNotFound
	}

	r.logger.Info("Reader status updated", map[string]any{
		"user_id":   userID,
		"is_online": isOnline,
	})

	return r.GetByUserID(ctx, userID)
}

// IncrementTotalSessions bumps the reader's completed-session counter
func (r *ReaderRepository) IncrementTotalSessions(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Model(&model.ReaderProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("total_sessions", gorm.Expr("total_sessions + 1"))

	if result.Error != nil {
		return r.handleDatabaseError("incrementing session count", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrReaderNotFound
	}

	return nil
}
