package rate

import (
	"context"
	"fmt"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/persistence"
)

// Resolver yields the applicable per-minute rate for a reader and session
// type, with availability and eligibility checks. Resolution is a pure read:
// the returned rate is frozen onto the session by the caller and never
// re-resolved afterwards.
type Resolver struct {
	readerRepo persistence.ReaderRepository
	logger     coreport.Logger
}

// NewResolver creates a rate resolver
func NewResolver(readerRepo persistence.ReaderRepository, logger coreport.Logger) *Resolver {
	return &Resolver{
		readerRepo: readerRepo,
		logger:     logger,
	}
}

// Resolve returns the reader's per-minute rate in cents for the session type.
//
// Fails with ErrReaderNotFound, ErrReaderUnavailable or ErrServiceNotOffered.
func (r *Resolver) Resolve(ctx context.Context, readerID string, sessionType entity.SessionType) (int64, error) {
	if !entity.IsValidSessionType(string(sessionType)) {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidSessionType, sessionType)
	}

	profile, err := r.readerRepo.GetByUserID(ctx, readerID)
	if err != nil {
		return 0, err
	}

	if !profile.IsAvailable {
		r.logger.Debug("Rate resolution rejected: reader unavailable", map[string]any{
			"reader_id": readerID,
		})
		return 0, errs.ErrReaderUnavailable
	}

	ratePerMinute, err := profile.RateFor(sessionType)
	if err != nil {
		return 0, err
	}

	if ratePerMinute <= 0 {
		r.logger.Debug("Rate resolution rejected: service not offered", map[string]any{
			"reader_id":    readerID,
			"session_type": sessionType,
		})
		return 0, errs.ErrServiceNotOffered
	}

	return ratePerMinute, nil
}
