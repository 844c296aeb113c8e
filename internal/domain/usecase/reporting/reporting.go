package reporting

import (
	"context"
	"time"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/persistence"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/usecase"
)

// analyticsWindow is the trailing period covered by GetAnalytics
const analyticsWindow = 30 * 24 * time.Hour

// Service derives earnings and analytics views from the session and
// transaction logs. Everything here is a read over records settlement
// already wrote; reader earnings are recomputed with the same revenue split
// the settlement engine applied. Sessions settled at a zero charge (client
// balance was already empty) carry totalAmount=0 and no ledger pair; they
// count as sessions but contribute nothing to earnings.
type Service struct {
	sessionRepo     persistence.SessionRepository
	transactionRepo persistence.TransactionRepository
	userRepo        persistence.UserRepository
	readerRepo      persistence.ReaderRepository
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
}

// NewService creates the reporting service
func NewService(
	sessionRepo persistence.SessionRepository,
	transactionRepo persistence.TransactionRepository,
	userRepo persistence.UserRepository,
	readerRepo persistence.ReaderRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.ReportingUseCase {
	return &Service{
		sessionRepo:     sessionRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		readerRepo:      readerRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetEarnings returns the reader's lifetime earnings with a per-session
// breakdown and payout totals
func (s *Service) GetEarnings(ctx context.Context, readerID string) (*usecase.EarningsReport, error) {
	if _, err := s.readerRepo.GetByUserID(ctx, readerID); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.ListCompletedByReader(ctx, readerID, nil)
	if err != nil {
		return nil, err
	}

	var totalEarned int64
	earnings := make([]usecase.SessionEarning, 0, len(sessions))
	for _, sess := range sessions {
		readerShare, _ := entity.SplitRevenue(sess.TotalAmount)
		totalEarned += readerShare
		earnings = append(earnings, usecase.SessionEarning{
			Amount:         entity.FormatCents(sess.TotalAmount),
			ReaderEarnings: entity.FormatCents(readerShare),
			Minutes:        sess.TotalMinutes,
			Type:           sess.SessionType,
			Date:           sess.CreatedAt.Format(time.RFC3339),
		})
	}

	payouts, err := s.transactionRepo.ListByUserAndType(ctx, readerID, entity.TransactionPayout, 0)
	if err != nil {
		return nil, err
	}

	var totalPaidOut int64
	for _, p := range payouts {
		if p.AmountCents < 0 {
			totalPaidOut += -p.AmountCents
		} else {
			totalPaidOut += p.AmountCents
		}
	}

	reader, err := s.userRepo.GetByID(ctx, readerID)
	if err != nil {
		return nil, err
	}

	return &usecase.EarningsReport{
		TotalEarned:      entity.FormatCents(totalEarned),
		TotalPaidOut:     entity.FormatCents(totalPaidOut),
		AvailableBalance: reader.FormattedBalance(),
		TotalSessions:    len(sessions),
		Sessions:         earnings,
	}, nil
}

// GetPayoutHistory returns the reader's most recent PAYOUT entries
func (s *Service) GetPayoutHistory(ctx context.Context, readerID string, limit int) ([]*entity.Transaction, error) {
	return s.transactionRepo.ListByUserAndType(ctx, readerID, entity.TransactionPayout, limit)
}

// GetAnalytics returns earnings metrics over the trailing 30 days
func (s *Service) GetAnalytics(ctx context.Context, readerID string) (*usecase.AnalyticsReport, error) {
	since := s.timeProvider.Now().Add(-analyticsWindow)

	sessions, err := s.sessionRepo.ListCompletedByReader(ctx, readerID, &since)
	if err != nil {
		return nil, err
	}

	var earnedCents int64
	var totalMinutes int
	byType := make(map[string]usecase.TypeBreakdown)
	typeEarnings := make(map[string]int64)

	for _, sess := range sessions {
		readerShare, _ := entity.SplitRevenue(sess.TotalAmount)
		earnedCents += readerShare
		totalMinutes += sess.TotalMinutes

		key := string(sess.SessionType)
		typeEarnings[key] += readerShare
		entry := byType[key]
		entry.Count++
		byType[key] = entry
	}

	for key, entry := range byType {
		entry.Earnings = entity.FormatCents(typeEarnings[key])
		byType[key] = entry
	}

	average := 0.0
	if len(sessions) > 0 {
		average = float64(totalMinutes) / float64(len(sessions))
	}

	return &usecase.AnalyticsReport{
		Earnings:             entity.FormatCents(earnedCents),
		Sessions:             len(sessions),
		AverageSessionLength: average,
		ByType:               byType,
	}, nil
}
