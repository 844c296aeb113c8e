package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	mockcore "github.com/EmilynnJ/VIBESEER26/mocks/port/core"
)

func TestNewReadingSession(t *testing.T) {
	fixedTime := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	timeProvider := &mockcore.FixedTimeProvider{Time: fixedTime}

	t.Run("should create an active session with the rate frozen", func(t *testing.T) {
		session, err := NewReadingSession("client-1", "reader-1", SessionTypeChat, 399, timeProvider)

		assert.NoError(t, err)
		assert.Equal(t, "client-1", session.ClientID)
		assert.Equal(t, "reader-1", session.ReaderID)
		assert.Equal(t, SessionTypeChat, session.SessionType)
		assert.Equal(t, SessionStatusActive, session.Status)
		assert.Equal(t, int64(399), session.RatePerMinute)
		assert.Equal(t, fixedTime, session.StartTime)
		assert.Nil(t, session.EndTime)
	})

	t.Run("should reject empty client ID", func(t *testing.T) {
		_, err := NewReadingSession("", "reader-1", SessionTypeChat, 399, timeProvider)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("should reject empty reader ID", func(t *testing.T) {
		_, err := NewReadingSession("client-1", "", SessionTypeChat, 399, timeProvider)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("should reject unknown session types", func(t *testing.T) {
		_, err := NewReadingSession("client-1", "reader-1", SessionType("TAROT"), 399, timeProvider)
		assert.ErrorIs(t, err, errs.ErrInvalidSessionType)
	})

	t.Run("should reject a non-positive rate", func(t *testing.T) {
		_, err := NewReadingSession("client-1", "reader-1", SessionTypeVideo, 0, timeProvider)
		assert.ErrorIs(t, err, errs.ErrServiceNotOffered)
	})
}

func TestReadingSession_BillableMinutes(t *testing.T) {
	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	session := &ReadingSession{StartTime: start}

	t.Run("should bill exactly one minute for sixty seconds", func(t *testing.T) {
		assert.Equal(t, 1, session.BillableMinutes(start.Add(60*time.Second)))
	})

	t.Run("should round partial minutes up", func(t *testing.T) {
		assert.Equal(t, 2, session.BillableMinutes(start.Add(61*time.Second)))
		assert.Equal(t, 2, session.BillableMinutes(start.Add(120*time.Second)))
		assert.Equal(t, 3, session.BillableMinutes(start.Add(121*time.Second)))
	})

	t.Run("should clamp to one minute for instant sessions", func(t *testing.T) {
		assert.Equal(t, 1, session.BillableMinutes(start))
		assert.Equal(t, 1, session.BillableMinutes(start.Add(5*time.Second)))
	})

	t.Run("should clamp to one minute when the end time precedes the start", func(t *testing.T) {
		assert.Equal(t, 1, session.BillableMinutes(start.Add(-30*time.Second)))
	})
}

func TestReadingSession_CanCancel(t *testing.T) {
	t.Run("should allow cancelling pending and active sessions", func(t *testing.T) {
		assert.True(t, (&ReadingSession{Status: SessionStatusPending}).CanCancel())
		assert.True(t, (&ReadingSession{Status: SessionStatusActive}).CanCancel())
	})

	t.Run("should not allow cancelling terminal sessions", func(t *testing.T) {
		assert.False(t, (&ReadingSession{Status: SessionStatusCompleted}).CanCancel())
		assert.False(t, (&ReadingSession{Status: SessionStatusCancelled}).CanCancel())
	})
}

func TestReadingSession_IsParticipant(t *testing.T) {
	session := &ReadingSession{ClientID: "client-1", ReaderID: "reader-1"}

	t.Run("should recognize both participants", func(t *testing.T) {
		assert.True(t, session.IsParticipant("client-1"))
		assert.True(t, session.IsParticipant("reader-1"))
	})

	t.Run("should reject anyone else", func(t *testing.T) {
		assert.False(t, session.IsParticipant("stranger"))
	})
}

func TestReadingSession_RequestedAmount(t *testing.T) {
	t.Run("should multiply minutes by the frozen rate", func(t *testing.T) {
		session := &ReadingSession{RatePerMinute: 500}
		assert.Equal(t, int64(1500), session.RequestedAmount(3))
	})
}
