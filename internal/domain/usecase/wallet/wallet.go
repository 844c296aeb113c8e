package wallet

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

// Top-up limits in cents. Card capture itself is handled by the external
// payment processor; this service only applies the credit leg.
const (
	MinTopUpCents int64 = 500
	MaxTopUpCents int64 = 100000
)

// DefaultTransactionLimit caps ledger listings when the caller gives no limit
const DefaultTransactionLimit = 50

// Service implements client-facing wallet operations over the ledger
type Service struct {
	userRepo        persistence.UserRepository
	transactionRepo persistence.TransactionRepository
	ledger          *ledger.Ledger
	logger          coreport.Logger
}

// NewService creates the wallet service
func NewService(
	userRepo persistence.UserRepository,
	transactionRepo persistence.TransactionRepository,
	ldgr *ledger.Ledger,
	logger coreport.Logger,
) usecase.WalletUseCase {
	return &Service{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		ledger:          ldgr,
		logger:          logger,
	}
}

// GetProfile returns the caller's account
func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetBalance returns the caller's balance as a decimal string
func (s *Service) GetBalance(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.FormattedBalance(), nil
}

// AddBalance credits the user and appends the BALANCE_ADD ledger entry as
// one atomic unit
func (s *Service) AddBalance(ctx context.Context, userID string, amount string) (*entity.User, *entity.Transaction, error) {
	amountCents, err := entity.ParseAmount(amount)
	if err != nil {
		return nil, nil, err
	}

	if amountCents < MinTopUpCents {
		return nil, nil, fmt.Errorf("%w: minimum add is %s", errs.ErrInvalidAmount, entity.FormatCents(MinTopUpCents))
	}
	if amountCents > MaxTopUpCents {
		return nil, nil, fmt.Errorf("%w: maximum add is %s", errs.ErrInvalidAmount, entity.FormatCents(MaxTopUpCents))
	}

	user, transaction, err := s.ledger.ApplyAtomic(ctx, ledger.Entry{
		UserID:      userID,
		Type:        entity.TransactionBalanceAdd,
		DeltaCents:  amountCents,
		Description: fmt.Sprintf("Added %s to balance", entity.FormatCents(amountCents)),
	})
	if err != nil {
		return nil, nil, err
	}

	return user, transaction, nil
}

// ListTransactions returns the caller's most recent ledger entries
func (s *Service) ListTransactions(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	return s.transactionRepo.ListByUser(ctx, userID, limit)
}
