package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/logger"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/model"
)

func TestNewTransactionRepository(t *testing.T) {
	t.Run("should wire the gorm handle and error classifier", func(t *testing.T) {
		// Arrange
		var db *gorm.DB

		// Act
		repo := NewTransactionRepository(db, logger.NewNoopLogger())

		// Assert
		assert.NotNil(t, repo)
		assert.NotNil(t, repo.errorClassifier)
	})
}

func TestTransactionRepository_ModelToEntity(t *testing.T) {
	repo := NewTransactionRepository(nil, logger.NewNoopLogger())

	t.Run("should map every ledger entry field", func(t *testing.T) {
		// Arrange
		createdAt := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
		transactionModel := &model.Transaction{
			ID:          42,
			UserID:      "client-1",
			ReaderID:    "reader-1",
			Type:        "SESSION_PAYMENT",
			AmountCents: -1500,
			Description: "CHAT session - 3 minutes",
			CreatedAt:   createdAt,
		}

		// Act
		transaction := repo.modelToEntity(transactionModel)

		// Assert
		assert.Equal(t, uint64(42), transaction.ID)
		assert.Equal(t, "client-1", transaction.UserID)
		assert.Equal(t, "reader-1", transaction.ReaderID)
		assert.Equal(t, entity.TransactionSessionPayment, transaction.Type)
		assert.Equal(t, int64(-1500), transaction.AmountCents)
		assert.Equal(t, "CHAT session - 3 minutes", transaction.Description)
		assert.Equal(t, createdAt, transaction.CreatedAt)
	})

	t.Run("should map an empty model slice to an empty entity slice", func(t *testing.T) {
		// Act
		transactions := repo.modelsToEntities(nil)

		// Assert
		assert.NotNil(t, transactions)
		assert.Empty(t, transactions)
	})
}
