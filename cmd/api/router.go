package api

import (
	"net/http"

	"lexora-backend/internal/auth/delivery"
	authUsecase "lexora-backend/internal/auth/usecase"
	promptDelivery "lexora-backend/internal/prompt/delivery"
	summaryDelivery "lexora-backend/internal/summary/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, authHandler *delivery.AuthHandler, summaryHandler *summaryDelivery.SummaryHandler, promptHandler *promptDelivery.PromptHandler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/google", authHandler.GoogleSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// Summarization (protected)
		api.POST("/summarize", delivery.AuthMiddleware(authUc), summaryHandler.Summarize)

		// Summary routes. The single-record GET is the public share path
		// and stays unauthenticated; everything else is owner-scoped.
		summaries := api.Group("/summaries")
		{
			summaries.GET("", delivery.AuthMiddleware(authUc), summaryHandler.ListSummaries)
			summaries.POST("/refine", delivery.AuthMiddleware(authUc), summaryHandler.RefineSummary)
			summaries.GET("/:id", summaryHandler.GetSharedSummary)
			summaries.GET("/:id/export", delivery.AuthMiddleware(authUc), summaryHandler.ExportSummary)
			summaries.PATCH("/:id", delivery.AuthMiddleware(authUc), summaryHandler.RenameSummary)
			summaries.PATCH("/:id/text", delivery.AuthMiddleware(authUc), summaryHandler.SaveSummaryText)
		}

		// Email share (protected)
		api.POST("/share", delivery.AuthMiddleware(authUc), summaryHandler.ShareByEmail)

		// Prompt template routes (protected)
		prompts := api.Group("/prompts")
		prompts.Use(delivery.AuthMiddleware(authUc))
		{
			prompts.GET("", promptHandler.ListPrompts)
			prompts.POST("", promptHandler.CreatePrompt)
			prompts.DELETE("/:id", promptHandler.DeletePrompt)
		}
	}
}
