package migration

import (
	"context"
	"errors"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	domainErr "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/persistence"
)

// defaultAccount describes a development seed account
type defaultAccount struct {
	id      string
	email   string
	name    string
	role    entity.Role
	balance string
	rates   [3]string // chat, phone, video per minute; empty means no profile
}

// Development-only seed data so the API is usable against a fresh database
var defaultAccounts = []defaultAccount{
	{
		id:      "00000000-0000-0000-0000-000000000001",
		email:   "client@example.com",
		name:    "Demo Client",
		role:    entity.RoleClient,
		balance: "50.00",
	},
	{
		id:      "00000000-0000-0000-0000-000000000002",
		email:   "reader@example.com",
		name:    "Demo Reader",
		role:    entity.RoleReader,
		balance: "0.00",
		rates:   [3]string{"3.99", "4.99", "5.99"},
	},
}

// CreateDefaultAccounts seeds demo accounts, skipping any that already exist.
// Non-zero starting balances get a paired BALANCE_ADD ledger entry so seeded
// accounts satisfy the balance-equals-entry-sum invariant from day one.
func CreateDefaultAccounts(
	ctx context.Context,
	userRepo persistence.UserRepository,
	readerRepo persistence.ReaderRepository,
	transactionRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
) error {
	for _, acct := range defaultAccounts {
		if _, err := userRepo.GetByID(ctx, acct.id); err == nil {
			continue
		} else if !errors.Is(err, domainErr.ErrUserNotFound) {
			return err
		}

		user, err := entity.NewUser(acct.id, acct.email, acct.name, acct.role, acct.balance, timeProvider)
		if err != nil {
			return err
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		if user.Balance() > 0 {
			seedEntry, err := entity.NewTransaction(
				acct.id,
				"",
				entity.TransactionBalanceAdd,
				user.Balance(),
				"Seeded starting balance",
				timeProvider,
			)
			if err != nil {
				return err
			}
			if err := transactionRepo.Create(ctx, seedEntry); err != nil {
				return err
			}
		}

		if acct.role != entity.RoleReader {
			continue
		}

		chatRate, err := entity.ParseAmount(acct.rates[0])
		if err != nil {
			return err
		}
		phoneRate, err := entity.ParseAmount(acct.rates[1])
		if err != nil {
			return err
		}
		videoRate, err := entity.ParseAmount(acct.rates[2])
		if err != nil {
			return err
		}

		now := timeProvider.Now()
		profile := &entity.ReaderProfile{
			UserID:          acct.id,
			DisplayName:     acct.name,
			ChatRatePerMin:  chatRate,
			PhoneRatePerMin: phoneRate,
			VideoRatePerMin: videoRate,
			IsOnline:        true,
			IsAvailable:     true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := readerRepo.Create(ctx, profile); err != nil {
			return err
		}
	}

	return nil
}
