package usecase

import (
	"strings"

	promptdomain "lexora-backend/internal/prompt/domain"
	"lexora-backend/internal/prompt/repository"
)

// DefaultTemplates are seeded once at startup; they have no owner and
// cannot be deleted.
func DefaultTemplates() []*promptdomain.PromptTemplate {
	return []*promptdomain.PromptTemplate{
		{
			Title:      "General Summary",
			PromptText: "Summarize the meeting transcript in clear bullet points, highlighting key decisions and open questions.",
		},
		{
			Title:      "Action Items",
			PromptText: "Extract every action item from the transcript as a checklist, including the owner and due date when mentioned.",
		},
		{
			Title:      "Executive Brief",
			PromptText: "Write a one-paragraph executive summary of the meeting for someone who did not attend.",
		},
	}
}

// PromptUsecase defines prompt template business logic.
type PromptUsecase interface {
	List(ownerID string) ([]*promptdomain.PromptTemplate, error)
	Create(ownerID, title, promptText string) (*promptdomain.PromptTemplate, error)
	Delete(id, ownerID string) error
}

type promptUsecase struct {
	repo repository.PromptRepository
}

func NewPromptUsecase(repo repository.PromptRepository) PromptUsecase {
	return &promptUsecase{
		repo: repo,
	}
}

func (u *promptUsecase) List(ownerID string) ([]*promptdomain.PromptTemplate, error) {
	return u.repo.ListVisible(ownerID)
}

func (u *promptUsecase) Create(ownerID, title, promptText string) (*promptdomain.PromptTemplate, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(promptText) == "" {
		return nil, promptdomain.ErrMissingFields
	}

	template := &promptdomain.PromptTemplate{
		OwnerID:    &ownerID,
		Title:      title,
		PromptText: promptText,
	}
	if err := u.repo.Create(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (u *promptUsecase) Delete(id, ownerID string) error {
	return u.repo.Delete(id, ownerID)
}
