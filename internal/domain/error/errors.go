package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeServiceNotOffered   = 4004
	CodeSessionNotActive    = 4005
	CodeInvalidSessionState = 4006
	CodeBelowMinimumPayout  = 4007
	CodeReaderUnavailable   = 4008
	CodeUnauthorized        = 4010
	CodeForbidden           = 4030
	CodeUserNotFound        = 4040
	CodeReaderNotFound      = 4041
	CodeSessionNotFound     = 4042

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a balance cannot cover a charge or payout
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when an amount is malformed or zero
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when an amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrNegativeBalance is returned when an operation would drive a balance negative
	ErrNegativeBalance = errors.New("balance cannot be negative")

	// ErrInvalidUserID is returned when a user identifier is empty
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrInvalidRole is returned when a role is not CLIENT, READER or ADMIN
	ErrInvalidRole = errors.New("invalid user role")

	// ErrInvalidSessionType is returned when a session type is not CHAT, PHONE or VIDEO
	ErrInvalidSessionType = errors.New("invalid session type")

	// ErrInvalidTransactionType is returned when a ledger entry type is unknown
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrReaderNotFound is returned when no reader profile exists for the given user
	ErrReaderNotFound = errors.New("reader not found")

	// ErrSessionNotFound is returned when the requested session doesn't exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrReaderUnavailable is returned when the reader is not accepting sessions
	ErrReaderUnavailable = errors.New("reader is not available")

	// ErrServiceNotOffered is returned when the reader has no rate for the requested type
	ErrServiceNotOffered = errors.New("reader does not offer this service type")

	// ErrSessionNotActive is returned when ending a session that is not ACTIVE
	ErrSessionNotActive = errors.New("session is not active")

	// ErrInvalidSessionState is returned on an illegal session state transition
	ErrInvalidSessionState = errors.New("invalid session state for this operation")

	// ErrNotAReader is returned when a non-reader attempts a reader-only operation
	ErrNotAReader = errors.New("only readers can perform this operation")

	// ErrBelowMinimumPayout is returned when a payout request is under the floor
	ErrBelowMinimumPayout = errors.New("payout amount is below the minimum")

	// ErrUnauthorized is returned when the caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller may not act on the resource
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem reaching the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateUser is returned when creating a user that already exists
	ErrDuplicateUser = errors.New("user already exists")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrServiceNotOffered):
		return CodeServiceNotOffered
	case errors.Is(err, ErrSessionNotActive):
		return CodeSessionNotActive
	case errors.Is(err, ErrInvalidSessionState):
		return CodeInvalidSessionState
	case errors.Is(err, ErrBelowMinimumPayout):
		return CodeBelowMinimumPayout
	case errors.Is(err, ErrReaderUnavailable):
		return CodeReaderUnavailable
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotAReader):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrReaderNotFound):
		return CodeReaderNotFound
	case errors.Is(err, ErrSessionNotFound):
		return CodeSessionNotFound
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError carries the diagnostic fields the API returns so
// clients can show how much is missing rather than an opaque failure.
type InsufficientBalanceError struct {
	UserID         string
	RequiredAmount string
	CurrentBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %s: required %s, available %s",
		e.UserID, e.RequiredAmount, e.CurrentBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"required_amount": e.RequiredAmount,
		"current_balance": e.CurrentBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a detailed insufficient balance error
func NewInsufficientBalanceError(userID, requiredAmount, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:         userID,
		RequiredAmount: requiredAmount,
		CurrentBalance: currentBalance,
	}
}

// SessionStateError reports an illegal lifecycle transition on a session
type SessionStateError struct {
	SessionID uint64
	Status    string
	Operation string
	Err       error
}

// Error implements the error interface
func (e *SessionStateError) Error() string {
	return fmt.Sprintf("cannot %s session %d in status %s: %v",
		e.Operation, e.SessionID, e.Status, e.Err)
}

// Unwrap returns the underlying error
func (e *SessionStateError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *SessionStateError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "session_state",
		"session_id": e.SessionID,
		"status":     e.Status,
		"operation":  e.Operation,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewSessionStateError creates a detailed session state error
func NewSessionStateError(sessionID uint64, status, operation string, err error) error {
	return &SessionStateError{
		SessionID: sessionID,
		Status:    status,
		Operation: operation,
		Err:       err,
	}
}

// SettlementError wraps a failure inside the atomic settlement unit. The
// session stays ACTIVE when this is returned, so the caller may safely retry.
type SettlementError struct {
	SessionID uint64
	Step      string
	Err       error
}

// Error implements the error interface
func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement of session %d failed at %s: %v", e.SessionID, e.Step, e.Err)
}

// Unwrap returns the underlying error
func (e *SettlementError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *SettlementError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "settlement",
		"session_id": e.SessionID,
		"step":       e.Step,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewSettlementError creates a settlement error for the given step
func NewSettlementError(sessionID uint64, step string, err error) error {
	return &SettlementError{SessionID: sessionID, Step: step, Err: err}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrReaderNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsForbiddenError checks if the error is an authorization failure
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotAReader)
}

// IsSessionNotActiveError checks if the error is the exactly-once settlement guard
func IsSessionNotActiveError(err error) bool {
	return errors.Is(err, ErrSessionNotActive)
}
