package usecase

import (
	"context"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
)

// WalletUseCase defines client-facing balance operations. Top-up capture
// (card processing) is external; AddBalance is the credit leg the external
// processor invokes once payment has cleared.
type WalletUseCase interface {
	// GetProfile returns the caller's account including formatted balance
	GetProfile(ctx context.Context, userID string) (*entity.User, error)

	// GetBalance returns the caller's balance as a decimal string
	GetBalance(ctx context.Context, userID string) (string, error)

	// AddBalance credits the user's balance and records a BALANCE_ADD
	// ledger entry as one atomic unit. Amount must be between the
	// configured minimum and maximum top-up.
	AddBalance(ctx context.Context, userID string, amount string) (*entity.User, *entity.Transaction, error)

	// ListTransactions returns the caller's most recent ledger entries
	ListTransactions(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)
}
