package entity

import (
	"time"

	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
)

// Role identifies what a user is allowed to do on the platform
type Role string

// User roles
const (
	RoleClient Role = "CLIENT"
	RoleReader Role = "READER"
	RoleAdmin  Role = "ADMIN"
)

// IsValidRole reports whether the role is one of the allowed values
func IsValidRole(role string) bool {
	return role == string(RoleClient) || role == string(RoleReader) || role == string(RoleAdmin)
}

// User represents a platform account. Identity (ID, email, name) is owned by
// the external auth provider; the balance is owned by the ledger and is the
// only field with integrity invariants here.
type User struct {
	ID        string // Auth-provider identifier (UUID string)
	Email     string
	Name      string
	Role      Role
	balance   int64 // Balance in cents, never negative (private)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user with the given identity and starting balance
func NewUser(id, email, name string, role Role, initialBalance string, timeProvider coreport.TimeProvider) (*User, error) {
	if id == "" {
		return nil, errs.ErrInvalidUserID
	}
	if !IsValidRole(string(role)) {
		return nil, errs.ErrInvalidRole
	}

	balanceCents, err := ParseAmount(initialBalance)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      role,
		balance:   balanceCents,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance in cents
func (u *User) Balance() int64 {
	return u.balance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (u *User) FormattedBalance() string {
	return FormatCents(u.balance)
}

// SetBalance overwrites the balance directly (repository hydration only)
func (u *User) SetBalance(balanceCents int64, timeProvider coreport.TimeProvider) {
	u.balance = balanceCents
	u.UpdatedAt = timeProvider.Now()
}

// CanAfford reports whether the balance covers the given amount in cents
func (u *User) CanAfford(amountCents int64) bool {
	return u.balance >= amountCents
}

// Credit adds the amount to the balance
func (u *User) Credit(amountCents int64, timeProvider coreport.TimeProvider) {
	u.balance += amountCents
	u.UpdatedAt = timeProvider.Now()
}

// Debit subtracts the amount from the balance.
// Returns ErrInsufficientBalance if the balance would go negative.
func (u *User) Debit(amountCents int64, timeProvider coreport.TimeProvider) error {
	if u.balance < amountCents {
		return errs.ErrInsufficientBalance
	}

	u.balance -= amountCents
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// IsReader reports whether this user can offer reading sessions
func (u *User) IsReader() bool {
	return u.Role == RoleReader
}
