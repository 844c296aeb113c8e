package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	domainerr "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/usecase"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/dto"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SessionHandler handles session lifecycle HTTP requests
type SessionHandler struct {
	sessionService usecase.SessionUseCase
	logger         coreport.Logger
}

// NewSessionHandler creates a new session handler instance
func NewSessionHandler(sessionService usecase.SessionUseCase, logger coreport.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// StartSession handles the POST /api/sessions/start endpoint
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	callerID := middleware.CallerID(c)
	summary, err := h.sessionService.StartSession(c.Request.Context(), callerID, req.ReaderID, req.SessionType)
	if err != nil {
		writeError(c, h.logger, "start_session", err)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// EndSession handles the POST /api/sessions/:id/end endpoint
func (h *SessionHandler) EndSession(c *gin.Context) {
	sessionID, ok := h.sessionIDParam(c)
	if !ok {
		return
	}

	result, err := h.sessionService.EndSession(c.Request.Context(), sessionID, middleware.CallerID(c))
	if err != nil {
		writeError(c, h.logger, "end_session", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CancelSession handles the POST /api/sessions/:id/cancel endpoint
func (h *SessionHandler) CancelSession(c *gin.Context) {
	sessionID, ok := h.sessionIDParam(c)
	if !ok {
		return
	}

	if err := h.sessionService.CancelSession(c.Request.Context(), sessionID, middleware.CallerID(c)); err != nil {
		writeError(c, h.logger, "cancel_session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(entity.SessionStatusCancelled)})
}

// GetSession handles the GET /api/sessions/:id endpoint
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, ok := h.sessionIDParam(c)
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), sessionID, middleware.CallerID(c))
	if err != nil {
		writeError(c, h.logger, "get_session", err)
		return
	}

	c.JSON(http.StatusOK, toSessionResponse(session))
}

// ListActiveSessions handles the GET /api/sessions/active endpoint
func (h *SessionHandler) ListActiveSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListActiveSessions(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeError(c, h.logger, "list_active_sessions", err)
		return
	}

	responses := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, toSessionResponse(session))
	}

	c.JSON(http.StatusOK, responses)
}

// UpdateReaderStatus handles the PUT /api/sessions/reader/status endpoint
func (h *SessionHandler) UpdateReaderStatus(c *gin.Context) {
	var req dto.ReaderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	profile, err := h.sessionService.UpdateReaderStatus(c.Request.Context(), middleware.CallerID(c), req.IsOnline, req.IsAvailable)
	if err != nil {
		writeError(c, h.logger, "update_reader_status", err)
		return
	}

	c.JSON(http.StatusOK, toReaderResponse(profile))
}

// ListAvailableReaders handles the GET /api/readers endpoint
func (h *SessionHandler) ListAvailableReaders(c *gin.Context) {
	profiles, err := h.sessionService.ListAvailableReaders(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list_readers", err)
		return
	}

	responses := make([]dto.ReaderResponse, 0, len(profiles))
	for _, profile := range profiles {
		responses = append(responses, toReaderResponse(profile))
	}

	c.JSON(http.StatusOK, responses)
}

// sessionIDParam extracts and validates the :id path parameter
func (h *SessionHandler) sessionIDParam(c *gin.Context) (uint64, bool) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid session ID format",
		})
		return 0, false
	}
	return sessionID, true
}

// toSessionResponse converts a session entity to its API representation
func toSessionResponse(session *entity.ReadingSession) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:            session.ID,
		ClientID:      session.ClientID,
		ReaderID:      session.ReaderID,
		SessionType:   string(session.SessionType),
		Status:        string(session.Status),
		StartTime:     session.StartTime.Format(time.RFC3339),
		RatePerMinute: entity.FormatCents(session.RatePerMinute),
		TotalMinutes:  session.TotalMinutes,
		TotalAmount:   entity.FormatCents(session.TotalAmount),
	}
	if session.EndTime != nil {
		resp.EndTime = session.EndTime.Format(time.RFC3339)
	}
	return resp
}

// toReaderResponse converts a reader profile entity to its API representation
func toReaderResponse(profile *entity.ReaderProfile) dto.ReaderResponse {
	return dto.ReaderResponse{
		UserID:          profile.UserID,
		DisplayName:     profile.DisplayName,
		ChatRatePerMin:  entity.FormatCents(profile.ChatRatePerMin),
		PhoneRatePerMin: entity.FormatCents(profile.PhoneRatePerMin),
		VideoRatePerMin: entity.FormatCents(profile.VideoRatePerMin),
		IsOnline:        profile.IsOnline,
		IsAvailable:     profile.IsAvailable,
		Rating:          profile.Rating,
		TotalReviews:    profile.TotalReviews,
		TotalSessions:   profile.TotalSessions,
	}
}
