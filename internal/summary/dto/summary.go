package dto

import (
	"mime/multipart"

	summarydomain "lexora-backend/internal/summary/domain"
)

// SummarizeRequest is the multipart form for POST /api/summarize.
// Exactly one of Transcript or File must carry the content.
type SummarizeRequest struct {
	Prompt     string                `form:"prompt"`
	Transcript string                `form:"transcript"`
	File       *multipart.FileHeader `form:"file"`
}

type SummariesResponse struct {
	Summaries []*summarydomain.Summary `json:"summaries"`
}

type RenameRequest struct {
	Title string `json:"title" binding:"required"`
}

type SaveTextRequest struct {
	SummaryText string `json:"summaryText" binding:"required"`
}

type RefineRequest struct {
	CurrentSummary   string `json:"currentSummary" binding:"required"`
	RefinementPrompt string `json:"refinementPrompt" binding:"required"`
}

type RefineResponse struct {
	RefinedText string `json:"refinedText"`
}

type ShareRequest struct {
	Summary   string `json:"summary" binding:"required"`
	Recipient string `json:"recipient" binding:"required,email"`
}
