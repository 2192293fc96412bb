package api

import (
	"net/http"

	authDelivery "lexora-backend/internal/auth/delivery"
	authUsecase "lexora-backend/internal/auth/usecase"
	promptDelivery "lexora-backend/internal/prompt/delivery"
	promptUsecasePkg "lexora-backend/internal/prompt/usecase"
	summaryDelivery "lexora-backend/internal/summary/delivery"
	summaryUsecasePkg "lexora-backend/internal/summary/usecase"
	"lexora-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	authUsecase    authUsecase.AuthUsecase
	authHandler    *authDelivery.AuthHandler
	summaryHandler *summaryDelivery.SummaryHandler
	promptHandler  *promptDelivery.PromptHandler
	config         *config.Config
	logger         zerolog.Logger
}

func NewHandler(authUc authUsecase.AuthUsecase, summaryUc summaryUsecasePkg.SummaryUsecase, promptUc promptUsecasePkg.PromptUsecase, cfg *config.Config, logger zerolog.Logger) *Handler {
	return &Handler{
		authUsecase:    authUc,
		authHandler:    authDelivery.NewAuthHandler(authUc),
		summaryHandler: summaryDelivery.NewSummaryHandler(summaryUc),
		promptHandler:  promptDelivery.NewPromptHandler(promptUc),
		config:         cfg,
		logger:         logger,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Request logging
	r.Use(func(c *gin.Context) {
		c.Next()
		h.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("request")
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.summaryHandler, h.promptHandler)

	h.logger.Info().Str("addr", addr).Msg("server listening")
	return r.Run(addr)
}
