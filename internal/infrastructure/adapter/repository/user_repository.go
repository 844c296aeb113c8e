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

// getOperationType returns "credit" for positive or zero changes and "debit" for negative changes
func getOperationType(balanceChange int64) string {
	if balanceChange >= 0 {
		return "credit"
	}
	return "debit"
}

// UserRepository implements the UserRepository port using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) (*entity.User, error) {
	user, err := entity.NewUser(
		userModel.ID,
		userModel.Email,
		userModel.Name,
		entity.Role(userModel.Role),
		entity.FormatCents(userModel.Balance),
		r.timeProvider,
	)
	if err != nil {
		r.logger.Error("Failed to create user entity", map[string]any{
			"user_id": userModel.ID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: failed to create user entity: %s", errs.ErrInternalServer, err.Error())
	}

	user.CreatedAt = userModel.CreatedAt
	user.UpdatedAt = userModel.UpdatedAt

	return user, nil
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
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

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, "id = ?", id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}

	return r.modelToEntity(&userModel)
}

// GetByIDForUpdate retrieves a user and takes an exclusive row lock.
// The lock is held for the duration of the surrounding transaction, so this
// must run inside a UnitOfWork.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&userModel, "id = ?", id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("locking user", result.Error, id)
	}

	return r.modelToEntity(&userModel)
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.logger.Debug("Creating new user", map[string]any{
		"user_id": user.ID,
		"role":    string(user.Role),
	})

	userModel := model.User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		Balance:   user.Balance(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.ID)
	}

	r.logger.Info("User created successfully", map[string]any{
		"user_id": user.ID,
		"role":    string(user.Role),
	})
	return nil
}

// AdjustBalance applies a signed delta to the user's balance as an atomic
// read-modify-write under a row lock and returns the updated user
func (r *UserRepository) AdjustBalance(ctx context.Context, userID string, deltaCents int64) (*entity.User, error) {
	r.logger.Debug("Adjusting balance", map[string]any{
		"user_id":        userID,
		"delta":          entity.FormatCents(deltaCents),
		"operation_type": getOperationType(deltaCents),
	})

	var userModel model.User
	result := r.db.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&userModel, "id = ?", userID)

	if result.Error != nil {
		return nil, r.handleDatabaseError("locking user for balance adjustment", result.Error, userID)
	}

	newBalance := userModel.Balance + deltaCents
	if newBalance < 0 {
		r.logger.Warn("Insufficient balance for adjustment", map[string]any{
			"user_id":          userID,
			"current_balance":  entity.FormatCents(userModel.Balance),
			"requested_change": entity.FormatCents(deltaCents),
		})
		return nil, errs.ErrInsufficientBalance
	}

	userModel.Balance = newBalance
	userModel.UpdatedAt = r.timeProvider.Now()

	result = r.db.WithContext(ctx).Model(&userModel).Updates(map[string]interface{}{
		"balance":    userModel.Balance,
		"updated_at": userModel.UpdatedAt,
	})
	if result.Error != nil {
		return nil, r.handleDatabaseError("adjusting balance", result.Error, userID)
	}

	user, err := r.modelToEntity(&userModel)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Balance adjusted", map[string]any{
		"user_id":        userID,
		"delta":          entity.FormatCents(deltaCents),
		"new_balance":    user.FormattedBalance(),
		"operation_type": getOperationType(deltaCents),
	})

	return user, nil
}
