package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const generateURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

// Service calls the Gemini REST API. gemini-2.5-flash keeps summarization
// latency low enough for the synchronous request path.
type Service struct {
	apiKey string
	client *http.Client
}

func NewService(apiKey string) *Service {
	return &Service{
		apiKey: apiKey,
		client: &http.Client{},
	}
}

// GenerateTitle asks for a short title over a transcript excerpt.
func (g *Service) GenerateTitle(ctx context.Context, excerpt string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert at creating short, descriptive titles.
Analyze the following text and create a concise title for it, no more than 7 words.
Return only the title, nothing else.

Text: %q

Title:`, excerpt)

	out, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(strings.TrimSpace(out), `"`, ""), nil
}

// Summarize produces the summary for the full transcript.
func (g *Service) Summarize(ctx context.Context, instruction, transcript string) (string, error) {
	prompt := fmt.Sprintf(`You are a helpful assistant that summarizes meeting transcripts.

Instruction: %q

Transcript:
%s

Summary:`, instruction, transcript)

	out, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Refine rewrites an existing summary following the instruction.
func (g *Service) Refine(ctx context.Context, currentSummary, instruction string) (string, error) {
	prompt := fmt.Sprintf(`You are a helpful assistant that refines meeting summaries.
Rewrite the summary below according to the instruction. Return only the revised summary.

Instruction: %q

Summary:
%s

Revised summary:`, instruction, currentSummary)

	out, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *Service) generate(ctx context.Context, prompt string) (string, error) {
	url := generateURL + "?key=" + g.apiKey

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no text returned")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
