package usecase

import (
	"context"

	authdomain "lexora-backend/internal/auth/domain"
	summarydomain "lexora-backend/internal/summary/domain"
	"lexora-backend/pkg/extract"
)

// SummaryUsecase defines the summarization business logic.
type SummaryUsecase interface {
	// Summarize runs the full orchestration: extract the transcript,
	// generate a title (best effort), generate the summary (mandatory) and
	// persist the record with a fresh share token.
	Summarize(ctx context.Context, ownerID, prompt string, source extract.Source) (*summarydomain.Summary, error)

	// ListByOwner returns the caller's summaries, newest first.
	ListByOwner(ownerID string) ([]*summarydomain.Summary, error)

	// GetByShareID is the unauthenticated public read path.
	GetByShareID(shareID string) (*summarydomain.Summary, error)

	// GetByIDForOwner returns a summary for the owner, for export.
	GetByIDForOwner(id, ownerID string) (*summarydomain.Summary, error)

	// Rename updates the title; owner only.
	Rename(id, ownerID, newTitle string) (*summarydomain.Summary, error)

	// SaveRefinedText overwrites the summary text; owner only.
	SaveRefinedText(id, ownerID, newText string) (*summarydomain.Summary, error)

	// Refine is a stateless AI transform; it never touches the store.
	Refine(ctx context.Context, currentSummary, refinementPrompt string) (string, error)

	// ShareByEmail sends summary text from the user's own Gmail.
	ShareByEmail(ctx context.Context, user *authdomain.User, recipient, summaryText string) error
}
