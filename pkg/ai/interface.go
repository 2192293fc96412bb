package ai

import "context"

// Service is the interface for the AI text-generation collaborator.
// Implement this interface to add new providers (Gemini, Ollama, etc.).
type Service interface {
	// GenerateTitle produces a short title (at most 7 words) for a
	// transcript excerpt. Callers treat failures as non-fatal.
	GenerateTitle(ctx context.Context, excerpt string) (string, error)

	// Summarize produces the summary of a full transcript following the
	// user's instruction.
	Summarize(ctx context.Context, instruction, transcript string) (string, error)

	// Refine rewrites an existing summary according to a follow-up
	// instruction. Stateless: every call carries the full current text.
	Refine(ctx context.Context, currentSummary, instruction string) (string, error)
}

// ProviderType represents the AI provider type.
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
