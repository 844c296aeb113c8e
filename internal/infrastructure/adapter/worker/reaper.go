package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/persistence"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/usecase/session"
)

// SessionReaper force-settles sessions that stayed ACTIVE past the
// configured maximum. Abandoned sessions (dropped connections, crashed
// clients) would otherwise bill forever; the reaper closes them at the
// cutoff so the charge is bounded.
type SessionReaper struct {
	sessionRepo  persistence.SessionRepository
	engine       *session.Engine
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	maxActive    time.Duration
	interval     time.Duration
	stopChan     chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewSessionReaper creates a new stale-session reaper
func NewSessionReaper(
	sessionRepo persistence.SessionRepository,
	engine *session.Engine,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	maxActive time.Duration,
	interval time.Duration,
) *SessionReaper {
	return &SessionReaper{
		sessionRepo:  sessionRepo,
		engine:       engine,
		timeProvider: timeProvider,
		logger:       logger,
		maxActive:    maxActive,
		interval:     interval,
		stopChan:     make(chan struct{}),
	}
}

// Start begins the periodic sweep. A non-positive interval disables the
// reaper entirely.
func (r *SessionReaper) Start() {
	if r.interval <= 0 {
		r.logger.Info("Session reaper disabled", nil)
		return
	}

	r.logger.Info("Starting session reaper", map[string]any{
		"interval":   r.interval.String(),
		"max_active": r.maxActive.String(),
	})

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.sweep()
			case <-r.stopChan:
				return
			}
		}
	}()
}

// Stop stops the reaper and waits for an in-flight sweep to finish
func (r *SessionReaper) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
	r.wg.Wait()
}

// sweep settles every session that has been ACTIVE longer than maxActive.
// Each session settles independently; one failure does not stop the sweep.
func (r *SessionReaper) sweep() {
	ctx, cancel := r.timeProvider.WithTimeout(context.Background(), r.interval)
	defer cancel()

	cutoff := r.timeProvider.Now().Add(-r.maxActive)
	stale, err := r.sessionRepo.ListActiveStartedBefore(ctx, cutoff)
	if err != nil {
		r.logger.Error("Failed to list stale sessions", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if len(stale) == 0 {
		return
	}

	r.logger.Warn("Found stale active sessions", map[string]any{
		"count":  len(stale),
		"cutoff": cutoff,
	})

	for _, sess := range stale {
		r.settleStale(ctx, sess)
	}
}

// settleStale bills a stale session up to the cutoff, not the current time,
// so an abandoned session never charges more than maxActive worth of minutes
func (r *SessionReaper) settleStale(ctx context.Context, sess *entity.ReadingSession) {
	endTime := sess.StartTime.Add(r.maxActive)
	minutes := sess.BillableMinutes(endTime)

	result, err := r.engine.Settle(ctx, sess, minutes, endTime)
	if err != nil {
		// Lost the race against a regular end-session call, nothing to do
		if errors.Is(err, errs.ErrSessionNotActive) {
			r.logger.Debug("Stale session already settled", map[string]any{
				"session_id": sess.ID,
			})
			return
		}

		r.logger.Error("Failed to settle stale session", map[string]any{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
		return
	}

	r.logger.Warn("Force-settled stale session", map[string]any{
		"session_id":   result.SessionID,
		"minutes":      result.DurationMinutes,
		"total_amount": result.TotalAmount,
	})
}
