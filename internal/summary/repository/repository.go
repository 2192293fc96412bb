package repository

import (
	summarydomain "lexora-backend/internal/summary/domain"
)

// SummaryRepository defines persistence for summary records. Mutations are
// owner-checked at write time; that ownership filter is the only
// concurrency-safety mechanism for the store.
type SummaryRepository interface {
	// Create persists a new summary. ID and CreatedAt are assigned here.
	Create(summary *summarydomain.Summary) error

	// ListByOwner returns the owner's summaries, newest first.
	ListByOwner(ownerID string) ([]*summarydomain.Summary, error)

	// GetByShareID returns the summary with the given public share token,
	// or (nil, nil) when absent. No ownership filter: this is the public
	// read path.
	GetByShareID(shareID string) (*summarydomain.Summary, error)

	// GetByIDForOwner returns the summary iff it belongs to ownerID, or
	// (nil, nil) when absent or owned by someone else.
	GetByIDForOwner(id, ownerID string) (*summarydomain.Summary, error)

	// Rename updates the title iff the record exists and belongs to
	// ownerID, returning the updated record.
	Rename(id, ownerID, newTitle string) (*summarydomain.Summary, error)

	// SaveRefinedText overwrites the summary text under the same ownership
	// rule as Rename.
	SaveRefinedText(id, ownerID, newText string) (*summarydomain.Summary, error)
}
