package main

import (
	api "lexora-backend/cmd/api"
	authdomain "lexora-backend/internal/auth/domain"
	authRepo "lexora-backend/internal/auth/repository"
	authUsecase "lexora-backend/internal/auth/usecase"
	promptdomain "lexora-backend/internal/prompt/domain"
	promptRepo "lexora-backend/internal/prompt/repository"
	promptUsecase "lexora-backend/internal/prompt/usecase"
	summarydomain "lexora-backend/internal/summary/domain"
	summaryRepo "lexora-backend/internal/summary/repository"
	summaryUsecase "lexora-backend/internal/summary/usecase"
	"lexora-backend/pkg/ai"
	"lexora-backend/pkg/config"
	"lexora-backend/pkg/database"
	"lexora-backend/pkg/gmail"
	"lexora-backend/pkg/logging"
)

func main() {
	logger := logging.New("lexora-backend")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}, &summarydomain.Summary{}, &promptdomain.PromptTemplate{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	summaryRepository := summaryRepo.NewSummaryRepository(db)
	promptRepository := promptRepo.NewPromptRepository(db)

	// Seed the built-in prompt templates on first boot
	if err := promptRepository.SeedDefaults(promptUsecase.DefaultTemplates()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed default prompt templates")
	}

	// Initialize AI service via the provider factory
	aiService, err := ai.NewService(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize AI service")
	}
	logger.Info().Str("provider", cfg.AIProvider).Msg("AI service initialized")

	// Initialize Gmail service for email sharing
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)

	// Initialize use cases (dependency injection)
	authUc := authUsecase.NewAuthUsecase(userRepository, cfg)
	summaryUc := summaryUsecase.NewSummaryUsecase(summaryRepository, userRepository, aiService, gmailService, logger)
	promptUc := promptUsecase.NewPromptUsecase(promptRepository)

	// Initialize HTTP handler and start the server
	handler := api.NewHandler(authUc, summaryUc, promptUc, cfg, logger)

	if err := handler.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
