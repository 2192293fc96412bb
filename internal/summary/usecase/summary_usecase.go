package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authdomain "lexora-backend/internal/auth/domain"
	authrepo "lexora-backend/internal/auth/repository"
	summarydomain "lexora-backend/internal/summary/domain"
	"lexora-backend/internal/summary/repository"
	"lexora-backend/pkg/ai"
	"lexora-backend/pkg/extract"
	"lexora-backend/pkg/gmail"
	"lexora-backend/pkg/shareid"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	// defaultTitle is used when the best-effort title call fails.
	defaultTitle = "Untitled Summary"

	// titleExcerptLimit bounds the transcript prefix sent to the title
	// call, to cap cost and latency.
	titleExcerptLimit = 1000

	shareSubject = "Your LexoraAI Meeting Summary"
)

// MailSender is the mail collaborator contract, satisfied by
// gmail.Service.
type MailSender interface {
	SendSummary(ctx context.Context, accessToken, refreshToken, fromEmail, to, subject, body string, onTokenRefresh gmail.TokenUpdateFunc) error
}

// summaryUsecase implements SummaryUsecase.
type summaryUsecase struct {
	repo     repository.SummaryRepository
	userRepo authrepo.UserRepository
	aiSvc    ai.Service
	mailSvc  MailSender
	logger   zerolog.Logger
}

func NewSummaryUsecase(repo repository.SummaryRepository, userRepo authrepo.UserRepository, aiSvc ai.Service, mailSvc MailSender, logger zerolog.Logger) SummaryUsecase {
	return &summaryUsecase{
		repo:     repo,
		userRepo: userRepo,
		aiSvc:    aiSvc,
		mailSvc:  mailSvc,
		logger:   logger.With().Str("component", "summary").Logger(),
	}
}

func (u *summaryUsecase) Summarize(ctx context.Context, ownerID, prompt string, source extract.Source) (*summarydomain.Summary, error) {
	transcript, err := source.Text()
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedMediaType):
			return nil, summarydomain.ErrUnsupportedFileType
		case errors.Is(err, extract.ErrEmpty):
			return nil, summarydomain.ErrMissingInput
		default:
			return nil, fmt.Errorf("extract transcript: %w", err)
		}
	}

	if strings.TrimSpace(prompt) == "" || strings.TrimSpace(transcript) == "" {
		return nil, summarydomain.ErrMissingInput
	}

	// Title generation is decorative: any failure falls back to the
	// default title and the request proceeds.
	title := defaultTitle
	if generated, err := u.aiSvc.GenerateTitle(ctx, titleExcerpt(transcript)); err != nil {
		u.logger.Warn().Err(err).Msg("could not generate AI title, using default")
	} else if t := strings.TrimSpace(generated); t != "" {
		title = t
	}

	// The summary call is mandatory; its failure aborts the request before
	// anything is persisted.
	summaryText, err := u.aiSvc.Summarize(ctx, prompt, transcript)
	if err != nil {
		u.logger.Error().Err(err).Msg("summary generation failed")
		return nil, fmt.Errorf("%w: %v", summarydomain.ErrAIGenerationFailed, err)
	}

	shareID, err := shareid.New()
	if err != nil {
		return nil, err
	}

	summary := &summarydomain.Summary{
		OwnerID:         ownerID,
		Title:           title,
		OriginalContent: transcript,
		Prompt:          prompt,
		SummaryText:     summaryText,
		ShareID:         shareID,
	}
	if err := u.repo.Create(summary); err != nil {
		return nil, err
	}

	u.logger.Info().Str("summary_id", summary.ID).Str("owner_id", ownerID).Msg("summary created")
	return summary, nil
}

// titleExcerpt truncates the transcript to its first characters, rune-safe.
func titleExcerpt(transcript string) string {
	runes := []rune(transcript)
	if len(runes) <= titleExcerptLimit {
		return transcript
	}
	return string(runes[:titleExcerptLimit])
}

func (u *summaryUsecase) ListByOwner(ownerID string) ([]*summarydomain.Summary, error) {
	return u.repo.ListByOwner(ownerID)
}

func (u *summaryUsecase) GetByShareID(shareID string) (*summarydomain.Summary, error) {
	summary, err := u.repo.GetByShareID(shareID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, summarydomain.ErrNotFound
	}
	return summary, nil
}

func (u *summaryUsecase) GetByIDForOwner(id, ownerID string) (*summarydomain.Summary, error) {
	summary, err := u.repo.GetByIDForOwner(id, ownerID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, summarydomain.ErrNotFoundOrForbidden
	}
	return summary, nil
}

func (u *summaryUsecase) Rename(id, ownerID, newTitle string) (*summarydomain.Summary, error) {
	if strings.TrimSpace(newTitle) == "" {
		return nil, summarydomain.ErrMissingInput
	}
	return u.repo.Rename(id, ownerID, newTitle)
}

func (u *summaryUsecase) SaveRefinedText(id, ownerID, newText string) (*summarydomain.Summary, error) {
	if strings.TrimSpace(newText) == "" {
		return nil, summarydomain.ErrMissingInput
	}
	return u.repo.SaveRefinedText(id, ownerID, newText)
}

func (u *summaryUsecase) Refine(ctx context.Context, currentSummary, refinementPrompt string) (string, error) {
	if strings.TrimSpace(currentSummary) == "" || strings.TrimSpace(refinementPrompt) == "" {
		return "", summarydomain.ErrMissingInput
	}

	refined, err := u.aiSvc.Refine(ctx, currentSummary, refinementPrompt)
	if err != nil {
		u.logger.Error().Err(err).Msg("refinement failed")
		return "", fmt.Errorf("%w: %v", summarydomain.ErrRefinementFailed, err)
	}
	return refined, nil
}

func (u *summaryUsecase) ShareByEmail(ctx context.Context, user *authdomain.User, recipient, summaryText string) error {
	if strings.TrimSpace(recipient) == "" || strings.TrimSpace(summaryText) == "" {
		return summarydomain.ErrMissingInput
	}

	if user.GoogleAccessToken == "" {
		return fmt.Errorf("%w: email sharing requires Google sign-in", summarydomain.ErrEmailSendFailed)
	}

	onRefresh := func(t *oauth2.Token) error {
		return u.userRepo.UpdateGoogleTokens(user.ID, t.AccessToken, t.RefreshToken)
	}

	err := u.mailSvc.SendSummary(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, user.Email, recipient, shareSubject, summaryText, onRefresh)
	if err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID).Msg("email share failed")
		return fmt.Errorf("%w: %v", summarydomain.ErrEmailSendFailed, err)
	}

	u.logger.Info().Str("user_id", user.ID).Msg("summary shared by email")
	return nil
}
