package payout

import (
	"context"
	"fmt"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/persistence"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/usecase"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/ledger"
)

// MinimumPayoutCents is the fixed payout floor: $15.00
const MinimumPayoutCents int64 = 1500

// Payout methods. The engine records the request and debits the balance;
// the actual transfer happens on an external rail, so the returned status
// is always "pending".
const (
	MethodStripe       = "STRIPE"
	MethodPayPal       = "PAYPAL"
	MethodBankTransfer = "BANK_TRANSFER"
)

// IsValidMethod reports whether the payout method is supported
func IsValidMethod(method string) bool {
	return method == MethodStripe || method == MethodPayPal || method == MethodBankTransfer
}

// Service validates reader withdrawal requests and settles them against the
// ledger primitives: one balance debit paired with one PAYOUT entry.
type Service struct {
	userRepo persistence.UserRepository
	ledger   *ledger.Ledger
	logger   coreport.Logger
}

// NewService creates the payout engine
func NewService(userRepo persistence.UserRepository, ldgr *ledger.Ledger, logger coreport.Logger) usecase.PayoutUseCase {
	return &Service{
		userRepo: userRepo,
		ledger:   ldgr,
		logger:   logger,
	}
}

// RequestPayout debits the reader's balance and records the withdrawal.
//
// Fails with ErrNotAReader, ErrBelowMinimumPayout, ErrInvalidAmount or a
// detailed insufficient-balance error carrying the current balance.
func (s *Service) RequestPayout(ctx context.Context, readerID string, amount string, method string) (*usecase.PayoutResult, error) {
	if method == "" {
		method = MethodStripe
	}
	if !IsValidMethod(method) {
		return nil, fmt.Errorf("%w: unsupported payout method %s", errs.ErrInvalidRequest, method)
	}

	amountCents, err := entity.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	if amountCents < MinimumPayoutCents {
		return nil, fmt.Errorf("%w: minimum payout is %s", errs.ErrBelowMinimumPayout, entity.FormatCents(MinimumPayoutCents))
	}

	reader, err := s.userRepo.GetByID(ctx, readerID)
	if err != nil {
		return nil, err
	}
	if !reader.IsReader() {
		return nil, errs.ErrNotAReader
	}

	// Pre-check for a friendly diagnostic; the authoritative guard is the
	// non-negative constraint inside the atomic ledger apply.
	if !reader.CanAfford(amountCents) {
		return nil, errs.NewInsufficientBalanceError(
			readerID,
			entity.FormatCents(amountCents),
			reader.FormattedBalance(),
		)
	}

	updated, transaction, err := s.ledger.ApplyAtomic(ctx, ledger.Entry{
		UserID:      readerID,
		ReaderID:    readerID,
		Type:        entity.TransactionPayout,
		DeltaCents:  -amountCents,
		Description: fmt.Sprintf("Payout request via %s - %s", method, entity.FormatCents(amountCents)),
	})
	if err != nil {
		if errs.IsInsufficientBalanceError(err) {
			return nil, errs.NewInsufficientBalanceError(
				readerID,
				entity.FormatCents(amountCents),
				reader.FormattedBalance(),
			)
		}
		return nil, err
	}

	s.logger.Info("Payout requested", map[string]any{
		"reader_id":         readerID,
		"amount":            entity.FormatCents(amountCents),
		"method":            method,
		"remaining_balance": updated.FormattedBalance(),
	})

	return &usecase.PayoutResult{
		ID:               transaction.ID,
		Amount:           entity.FormatCents(amountCents),
		Method:           method,
		Status:           "pending",
		RemainingBalance: updated.FormattedBalance(),
	}, nil
}
