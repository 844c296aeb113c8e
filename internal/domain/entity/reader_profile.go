package entity

import (
	"time"

	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
)

// ReaderProfile extends a READER user with per-service rates and presence.
// A rate of 0 means the service is not offered.
type ReaderProfile struct {
	UserID          string
	DisplayName     string
	ChatRatePerMin  int64 // cents per minute
	PhoneRatePerMin int64
	VideoRatePerMin int64
	IsOnline        bool
	IsAvailable     bool
	Rating          float64 // Aggregate, owned by the review subsystem
	TotalReviews    int
	TotalSessions   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RateFor returns the per-minute rate in cents for the given session type.
// Rates may legitimately be zero; the caller decides whether that means
// "service not offered".
func (p *ReaderProfile) RateFor(sessionType SessionType) (int64, error) {
	switch sessionType {
	case SessionTypeChat:
		return p.ChatRatePerMin, nil
	case SessionTypePhone:
		return p.PhoneRatePerMin, nil
	case SessionTypeVideo:
		return p.VideoRatePerMin, nil
	default:
		return 0, errs.ErrInvalidSessionType
	}
}

// OffersService reports whether the reader has a positive rate for the type
func (p *ReaderProfile) OffersService(sessionType SessionType) bool {
	rate, err := p.RateFor(sessionType)
	return err == nil && rate > 0
}
