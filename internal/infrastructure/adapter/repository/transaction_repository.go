package repository

import (
	"context"
	"fmt"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements the TransactionRepository port using GORM.
// The ledger is append-only: this repository never updates or deletes rows.
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(transactionModel *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:          transactionModel.ID,
		UserID:      transactionModel.UserID,
		ReaderID:    transactionModel.ReaderID,
		Type:        entity.TransactionType(transactionModel.Type),
		AmountCents: transactionModel.AmountCents,
		Description: transactionModel.Description,
		CreatedAt:   transactionModel.CreatedAt,
	}
}

// Create appends a ledger entry and fills in its generated ID
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.Transaction{
		UserID:      transaction.UserID,
		ReaderID:    transaction.ReaderID,
		Type:        string(transaction.Type),
		AmountCents: transaction.AmountCents,
		Description: transaction.Description,
		CreatedAt:   transaction.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		r.logger.Error("Failed to create ledger entry", map[string]any{
			"user_id": transaction.UserID,
			"type":    string(transaction.Type),
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transaction.ID = transactionModel.ID

	r.logger.Debug("Ledger entry created", map[string]any{
		"transaction_id": transaction.ID,
		"user_id":        transaction.UserID,
		"type":           string(transaction.Type),
		"amount":         transaction.FormattedAmount(),
	})
	return nil
}

// ListByUser returns the user's most recent entries, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&transactionModels)

	if result.Error != nil {
		r.logger.Error("Failed to list ledger entries", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelsToEntities(transactionModels), nil
}

// ListByUserAndType returns the user's most recent entries of one type,
// newest first. A limit <= 0 returns all entries.
func (r *TransactionRepository) ListByUserAndType(ctx context.Context, userID string, transactionType entity.TransactionType, limit int) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, string(transactionType)).
		Order("created_at desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var transactionModels []model.Transaction
	result := query.Find(&transactionModels)

	if result.Error != nil {
		r.logger.Error("Failed to list ledger entries by type", map[string]any{
			"user_id": userID,
			"type":    string(transactionType),
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelsToEntities(transactionModels), nil
}

// SumAmountByUser returns the signed sum of all entry amounts for the user.
// By the reconciliation invariant this equals the user's balance: every
// balance mutation writes a paired entry, and zero-charge settlements write
// neither a mutation nor an entry.
func (r *TransactionRepository) SumAmountByUser(ctx context.Context, userID string) (int64, error) {
	var sum int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&sum)

	if result.Error != nil {
		r.logger.Error("Failed to sum ledger entries", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return sum, nil
}

// modelsToEntities converts a slice of transaction models to entities
func (r *TransactionRepository) modelsToEntities(transactionModels []model.Transaction) []*entity.Transaction {
	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, r.modelToEntity(&transactionModels[i]))
	}
	return transactions
}
