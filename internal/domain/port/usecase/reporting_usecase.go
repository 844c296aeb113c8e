package usecase

import (
	"context"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
)

// SessionEarning is one completed session in a reader's earnings breakdown
type SessionEarning struct {
	Amount         string             `json:"amount"`
	ReaderEarnings string             `json:"readerEarnings"`
	Minutes        int                `json:"minutes"`
	Type           entity.SessionType `json:"type"`
	Date           string             `json:"date"`
}

// EarningsReport summarizes a reader's lifetime earnings. Platform revenue
// is recoverable from the session records (totalAmount − readerEarnings);
// it is derived here, never stored as its own ledger entry.
type EarningsReport struct {
	TotalEarned      string           `json:"totalEarned"`
	TotalPaidOut     string           `json:"totalPaidOut"`
	AvailableBalance string           `json:"availableBalance"`
	TotalSessions    int              `json:"totalSessions"`
	Sessions         []SessionEarning `json:"sessions"`
}

// TypeBreakdown groups analytics figures for one session type
type TypeBreakdown struct {
	Count    int    `json:"count"`
	Earnings string `json:"earnings"`
}

// AnalyticsReport covers a reader's last 30 days of completed sessions
type AnalyticsReport struct {
	Earnings             string                   `json:"earnings"`
	Sessions             int                      `json:"sessions"`
	AverageSessionLength float64                  `json:"averageSessionLength"`
	ByType               map[string]TypeBreakdown `json:"byType"`
}

// ReportingUseCase derives earnings and analytics views from the session and
// transaction logs. Read-only: no invariant-bearing logic lives here.
type ReportingUseCase interface {
	// GetEarnings returns the reader's lifetime earnings summary with a
	// per-session breakdown
	GetEarnings(ctx context.Context, readerID string) (*EarningsReport, error)

	// GetPayoutHistory returns the reader's most recent PAYOUT entries
	GetPayoutHistory(ctx context.Context, readerID string, limit int) ([]*entity.Transaction, error)

	// GetAnalytics returns earnings metrics over the trailing 30 days
	GetAnalytics(ctx context.Context, readerID string) (*AnalyticsReport, error)
}
