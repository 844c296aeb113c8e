package handler

import (
	"net/http"
	"time"

	"github.com/EmilynnJ/VIBESEER26/internal/domain/entity"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/domain/port/usecase"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/dto"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles balance and ledger HTTP requests
type WalletHandler struct {
	walletService usecase.WalletUseCase
	logger        coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(walletService usecase.WalletUseCase, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger,
	}
}

// GetProfile handles the GET /api/user/me endpoint
func (h *WalletHandler) GetProfile(c *gin.Context) {
	user, err := h.walletService.GetProfile(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeError(c, h.logger, "get_profile", err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Role:    string(user.Role),
		Balance: user.FormattedBalance(),
	})
}

// GetBalance handles the GET /api/user/balance endpoint
func (h *WalletHandler) GetBalance(c *gin.Context) {
	callerID := middleware.CallerID(c)

	balance, err := h.walletService.GetBalance(c.Request.Context(), callerID)
	if err != nil {
		writeError(c, h.logger, "get_balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  callerID,
		Balance: balance,
	})
}

// AddBalance handles the POST /api/user/balance/add endpoint
func (h *WalletHandler) AddBalance(c *gin.Context) {
	var req dto.AddBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	user, transaction, err := h.walletService.AddBalance(c.Request.Context(), middleware.CallerID(c), req.Amount)
	if err != nil {
		writeError(c, h.logger, "add_balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.AddBalanceResponse{
		Balance:     user.FormattedBalance(),
		Transaction: toTransactionResponse(transaction),
	})
}

// ListTransactions handles the GET /api/user/transactions endpoint
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	transactions, err := h.walletService.ListTransactions(c.Request.Context(), middleware.CallerID(c), limit)
	if err != nil {
		writeError(c, h.logger, "list_transactions", err)
		return
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, toTransactionResponse(transaction))
	}

	c.JSON(http.StatusOK, responses)
}

// toTransactionResponse converts a ledger entry to its API representation
func toTransactionResponse(transaction *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          transaction.ID,
		Type:        string(transaction.Type),
		Amount:      transaction.FormattedAmount(),
		Description: transaction.Description,
		CreatedAt:   transaction.CreatedAt.Format(time.RFC3339),
	}
}
