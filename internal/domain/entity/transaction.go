package entity

import (
	"time"

	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
)

// TransactionType classifies a ledger entry
type TransactionType string

// Transaction types
const (
	TransactionSessionPayment TransactionType = "SESSION_PAYMENT"
	TransactionBalanceAdd     TransactionType = "BALANCE_ADD"
	TransactionPayout         TransactionType = "PAYOUT"
)

// IsValidTransactionType reports whether the given string is an allowed type
func IsValidTransactionType(transactionType string) bool {
	return transactionType == string(TransactionSessionPayment) ||
		transactionType == string(TransactionBalanceAdd) ||
		transactionType == string(TransactionPayout)
}

// Transaction is an immutable, append-only ledger entry. Every balance
// mutation is paired with exactly one Transaction explaining it; entries are
// created, never updated or deleted. AmountCents is signed: negative is a
// debit, positive is a credit.
type Transaction struct {
	ID          uint64
	UserID      string // Whose balance this entry affects
	ReaderID    string // Session counterpart; equals UserID for reader-earning and payout entries
	Type        TransactionType
	AmountCents int64
	Description string
	CreatedAt   time.Time
}

// NewTransaction creates a ledger entry with basic validation
func NewTransaction(userID, readerID string, transactionType TransactionType, amountCents int64, description string, timeProvider coreport.TimeProvider) (*Transaction, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if !IsValidTransactionType(string(transactionType)) {
		return nil, errs.ErrInvalidTransactionType
	}
	if amountCents == 0 {
		return nil, errs.ErrInvalidAmount
	}

	return &Transaction{
		UserID:      userID,
		ReaderID:    readerID,
		Type:        transactionType,
		AmountCents: amountCents,
		Description: description,
		CreatedAt:   timeProvider.Now(),
	}, nil
}

// IsDebit reports whether this entry decreased the user's balance
func (t *Transaction) IsDebit() bool {
	return t.AmountCents < 0
}

// FormattedAmount returns the signed amount as a decimal string
func (t *Transaction) FormattedAmount() string {
	return FormatCents(t.AmountCents)
}
