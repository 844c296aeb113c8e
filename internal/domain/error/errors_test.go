package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Run("should map known errors to their codes", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{ErrInsufficientBalance, CodeInsufficientBalance},
			{ErrInvalidAmount, CodeInvalidAmount},
			{ErrNegativeAmount, CodeInvalidAmount},
			{ErrInvalidUserID, CodeInvalidUserID},
			{ErrServiceNotOffered, CodeServiceNotOffered},
			{ErrSessionNotActive, CodeSessionNotActive},
			{ErrInvalidSessionState, CodeInvalidSessionState},
			{ErrBelowMinimumPayout, CodeBelowMinimumPayout},
			{ErrReaderUnavailable, CodeReaderUnavailable},
			{ErrUnauthorized, CodeUnauthorized},
			{ErrForbidden, CodeForbidden},
			{ErrNotAReader, CodeForbidden},
			{ErrUserNotFound, CodeUserNotFound},
			{ErrReaderNotFound, CodeReaderNotFound},
			{ErrSessionNotFound, CodeSessionNotFound},
		}

		for _, tc := range cases {
			assert.Equal(t, tc.code, ErrorCode(tc.err), "error %v", tc.err)
		}
	})

	t.Run("should map wrapped errors through errors.Is", func(t *testing.T) {
		wrapped := fmt.Errorf("operation failed: %w", ErrInsufficientBalance)
		assert.Equal(t, CodeInsufficientBalance, ErrorCode(wrapped))
	})

	t.Run("should default unknown errors to the internal server code", func(t *testing.T) {
		assert.Equal(t, CodeInternalServer, ErrorCode(errors.New("boom")))
	})
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError("user-1", "15.00", "10.00")

	t.Run("should match ErrInsufficientBalance via errors.Is", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.Equal(t, CodeInsufficientBalance, ErrorCode(err))
	})

	t.Run("should carry the diagnostic amounts in its message", func(t *testing.T) {
		assert.Contains(t, err.Error(), "user-1")
		assert.Contains(t, err.Error(), "required 15.00")
		assert.Contains(t, err.Error(), "available 10.00")
	})

	t.Run("should expose structured log fields", func(t *testing.T) {
		var balanceErr *InsufficientBalanceError
		assert.True(t, errors.As(err, &balanceErr))

		fields := balanceErr.LogFields()
		assert.Equal(t, "user-1", fields["user_id"])
		assert.Equal(t, "15.00", fields["required_amount"])
		assert.Equal(t, "10.00", fields["current_balance"])
		assert.Equal(t, CodeInsufficientBalance, fields["error_code"])
	})
}

func TestSessionStateError(t *testing.T) {
	err := NewSessionStateError(42, "COMPLETED", "end", ErrSessionNotActive)

	t.Run("should unwrap to the underlying error", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrSessionNotActive)
		assert.Equal(t, CodeSessionNotActive, ErrorCode(err))
	})

	t.Run("should describe the rejected transition", func(t *testing.T) {
		assert.Contains(t, err.Error(), "cannot end session 42")
		assert.Contains(t, err.Error(), "COMPLETED")
	})
}

func TestSettlementError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewSettlementError(7, "charge client", cause)

	t.Run("should unwrap to the underlying error", func(t *testing.T) {
		assert.ErrorIs(t, err, cause)
	})

	t.Run("should name the failing step", func(t *testing.T) {
		assert.Contains(t, err.Error(), "settlement of session 7 failed at charge client")
	})
}

func TestErrorPredicates(t *testing.T) {
	t.Run("should recognize insufficient balance errors", func(t *testing.T) {
		assert.True(t, IsInsufficientBalanceError(ErrInsufficientBalance))
		assert.True(t, IsInsufficientBalanceError(NewInsufficientBalanceError("u", "1.00", "0.00")))
		assert.False(t, IsInsufficientBalanceError(ErrUserNotFound))
	})

	t.Run("should recognize not found errors", func(t *testing.T) {
		assert.True(t, IsNotFoundError(ErrUserNotFound))
		assert.True(t, IsNotFoundError(ErrReaderNotFound))
		assert.True(t, IsNotFoundError(ErrSessionNotFound))
		assert.False(t, IsNotFoundError(ErrForbidden))
	})

	t.Run("should recognize forbidden errors", func(t *testing.T) {
		assert.True(t, IsForbiddenError(ErrForbidden))
		assert.True(t, IsForbiddenError(ErrNotAReader))
		assert.False(t, IsForbiddenError(ErrUnauthorized))
	})

	t.Run("should recognize the settlement guard error", func(t *testing.T) {
		assert.True(t, IsSessionNotActiveError(ErrSessionNotActive))
		assert.True(t, IsSessionNotActiveError(NewSessionStateError(1, "COMPLETED", "end", ErrSessionNotActive)))
		assert.False(t, IsSessionNotActiveError(ErrInvalidSessionState))
	})
}
