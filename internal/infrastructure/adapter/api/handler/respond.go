package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// writeError maps a domain error to an HTTP response. Internal errors are
// masked; everything else surfaces its own message and numeric code.
func writeError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status := statusForError(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"operation": operation,
			"path":      c.Request.URL.Path,
			"error":     err.Error(),
		})
		message = "Internal server error"
	} else {
		logger.Warn("Request rejected", map[string]any{
			"operation": operation,
			"path":      c.Request.URL.Path,
			"status":    status,
			"error":     err.Error(),
		})
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrUnauthorized):
		return http.StatusUnauthorized
	case domainerr.IsForbiddenError(err):
		return http.StatusForbidden
	case domainerr.IsInsufficientBalanceError(err),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrNegativeAmount),
		errors.Is(err, domainerr.ErrInvalidUserID),
		errors.Is(err, domainerr.ErrInvalidSessionType),
		errors.Is(err, domainerr.ErrInvalidRequest),
		errors.Is(err, domainerr.ErrBelowMinimumPayout),
		errors.Is(err, domainerr.ErrReaderUnavailable),
		errors.Is(err, domainerr.ErrServiceNotOffered),
		errors.Is(err, domainerr.ErrSessionNotActive),
		errors.Is(err, domainerr.ErrInvalidSessionState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeBindingError reports a request that failed validation
func writeBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: "Invalid request format: " + err.Error(),
	})
}
