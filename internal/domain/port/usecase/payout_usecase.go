package usecase

import (
	"context"
)

// PayoutResult is returned when a payout request is accepted. Status is
// always "pending": actual money movement happens on an external rail.
type PayoutResult struct {
	ID               uint64 `json:"id"`
	Amount           string `json:"amount"`
	Method           string `json:"method"`
	Status           string `json:"status"`
	RemainingBalance string `json:"remainingBalance"`
}

// PayoutUseCase defines reader withdrawal operations
type PayoutUseCase interface {
	// RequestPayout validates the reader's withdrawal against the minimum
	// threshold and current balance, then atomically debits the balance
	// and records a PAYOUT ledger entry.
	RequestPayout(ctx context.Context, readerID string, amount string, method string) (*PayoutResult, error)
}
