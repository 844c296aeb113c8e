package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	mockcore "github.com/EmilynnJ/VIBESEER26/mocks/port/core"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	timeProvider := &mockcore.FixedTimeProvider{Time: fixedTime}

	t.Run("should create a user with the parsed starting balance", func(t *testing.T) {
		user, err := NewUser("user-1", "client@example.com", "Client One", RoleClient, "50.00", timeProvider)

		assert.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, RoleClient, user.Role)
		assert.Equal(t, int64(5000), user.Balance())
		assert.Equal(t, "50.00", user.FormattedBalance())
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("should reject an empty ID", func(t *testing.T) {
		_, err := NewUser("", "a@example.com", "A", RoleClient, "0", timeProvider)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("should reject unknown roles", func(t *testing.T) {
		_, err := NewUser("user-1", "a@example.com", "A", Role("MODERATOR"), "0", timeProvider)
		assert.ErrorIs(t, err, errs.ErrInvalidRole)
	})

	t.Run("should reject an invalid starting balance", func(t *testing.T) {
		_, err := NewUser("user-1", "a@example.com", "A", RoleClient, "abc", timeProvider)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestUser_BalanceOperations(t *testing.T) {
	fixedTime := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	timeProvider := &mockcore.FixedTimeProvider{Time: fixedTime}

	newUser := func(balance string) *User {
		user, err := NewUser("user-1", "a@example.com", "A", RoleClient, balance, timeProvider)
		assert.NoError(t, err)
		return user
	}

	t.Run("should credit the balance", func(t *testing.T) {
		user := newUser("10.00")
		user.Credit(500, timeProvider)
		assert.Equal(t, int64(1500), user.Balance())
	})

	t.Run("should debit the balance when funds cover it", func(t *testing.T) {
		user := newUser("10.00")
		err := user.Debit(1000, timeProvider)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), user.Balance())
	})

	t.Run("should refuse a debit that would go negative", func(t *testing.T) {
		user := newUser("10.00")
		err := user.Debit(1001, timeProvider)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.Equal(t, int64(1000), user.Balance())
	})

	t.Run("should report affordability against the current balance", func(t *testing.T) {
		user := newUser("10.00")
		assert.True(t, user.CanAfford(1000))
		assert.False(t, user.CanAfford(1001))
	})
}

func TestUser_IsReader(t *testing.T) {
	t.Run("should be true only for the reader role", func(t *testing.T) {
		assert.True(t, (&User{Role: RoleReader}).IsReader())
		assert.False(t, (&User{Role: RoleClient}).IsReader())
		assert.False(t, (&User{Role: RoleAdmin}).IsReader())
	})
}
