package handler

import (
	"net/http"
	"strconv"

	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/usecase"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/dto"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// PayoutHandler handles reader withdrawal and earnings-reporting HTTP requests
type PayoutHandler struct {
	payoutService    usecase.PayoutUseCase
	reportingService usecase.ReportingUseCase
	logger           coreport.Logger
}

// NewPayoutHandler creates a new payout handler instance
func NewPayoutHandler(
	payoutService usecase.PayoutUseCase,
	reportingService usecase.ReportingUseCase,
	logger coreport.Logger,
) *PayoutHandler {
	return &PayoutHandler{
		payoutService:    payoutService,
		reportingService: reportingService,
		logger:           logger,
	}
}

// RequestPayout handles the POST /api/payouts/request endpoint
func (h *PayoutHandler) RequestPayout(c *gin.Context) {
	var req dto.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	result, err := h.payoutService.RequestPayout(c.Request.Context(), middleware.CallerID(c), req.Amount, req.Method)
	if err != nil {
		writeError(c, h.logger, "request_payout", err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetEarnings handles the GET /api/payouts/earnings endpoint
func (h *PayoutHandler) GetEarnings(c *gin.Context) {
	report, err := h.reportingService.GetEarnings(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeError(c, h.logger, "get_earnings", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetPayoutHistory handles the GET /api/payouts/history endpoint
func (h *PayoutHandler) GetPayoutHistory(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	payouts, err := h.reportingService.GetPayoutHistory(c.Request.Context(), middleware.CallerID(c), limit)
	if err != nil {
		writeError(c, h.logger, "get_payout_history", err)
		return
	}

	responses := make([]dto.TransactionResponse, 0, len(payouts))
	for _, payout := range payouts {
		responses = append(responses, toTransactionResponse(payout))
	}

	c.JSON(http.StatusOK, responses)
}

// GetAnalytics handles the GET /api/payouts/analytics endpoint
func (h *PayoutHandler) GetAnalytics(c *gin.Context) {
	report, err := h.reportingService.GetAnalytics(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeError(c, h.logger, "get_analytics", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// parseLimit parses an optional limit query parameter; 0 means "use default"
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
