package routes

import (
	"net/http"

	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/handler"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API. Everything under /api
// requires a valid bearer token.
func SetupRoutes(
	router *gin.Engine,
	sessionHandler *handler.SessionHandler,
	payoutHandler *handler.PayoutHandler,
	walletHandler *handler.WalletHandler,
	jwtSecret string,
	logger coreport.Logger,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.Auth(jwtSecret, logger))
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("/start", sessionHandler.StartSession)
			sessions.GET("/active", sessionHandler.ListActiveSessions)
			sessions.PUT("/reader/status", sessionHandler.UpdateReaderStatus)
			sessions.POST("/:id/end", sessionHandler.EndSession)
			sessions.POST("/:id/cancel", sessionHandler.CancelSession)
			sessions.GET("/:id", sessionHandler.GetSession)
		}

		payouts := api.Group("/payouts")
		{
			payouts.POST("/request", payoutHandler.RequestPayout)
			payouts.GET("/earnings", payoutHandler.GetEarnings)
			payouts.GET("/history", payoutHandler.GetPayoutHistory)
			payouts.GET("/analytics", payoutHandler.GetAnalytics)
		}

		user := api.Group("/user")
		{
			user.GET("/me", walletHandler.GetProfile)
			user.GET("/balance", walletHandler.GetBalance)
			user.POST("/balance/add", walletHandler.AddBalance)
			user.GET("/transactions", walletHandler.ListTransactions)
		}

		api.GET("/readers", sessionHandler.ListAvailableReaders)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
