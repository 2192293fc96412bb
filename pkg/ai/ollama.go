package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaService implements Service using an Ollama local LLM.
type OllamaService struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaService creates a new Ollama service.
func NewOllamaService(baseURL, model string) *OllamaService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &OllamaService{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// GenerateTitle implements Service.
// Same prompts as the Gemini provider so output stays consistent.
func (o *OllamaService) GenerateTitle(ctx context.Context, excerpt string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert at creating short, descriptive titles.
Analyze the following text and create a concise title for it, no more than 7 words.
Return only the title, nothing else.

Text: %q

Title:`, excerpt)

	out, err := o.generate(ctx, prompt, 0.3, 30)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(strings.TrimSpace(out), `"`, ""), nil
}

// Summarize implements Service.
func (o *OllamaService) Summarize(ctx context.Context, instruction, transcript string) (string, error) {
	prompt := fmt.Sprintf(`You are a helpful assistant that summarizes meeting transcripts.

Instruction: %q

Transcript:
%s

Summary:`, instruction, transcript)

	out, err := o.generate(ctx, prompt, 0.3, 0)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Refine implements Service.
func (o *OllamaService) Refine(ctx context.Context, currentSummary, instruction string) (string, error) {
	prompt := fmt.Sprintf(`You are a helpful assistant that refines meeting summaries.
Rewrite the summary below according to the instruction. Return only the revised summary.

Instruction: %q

Summary:
%s

Revised summary:`, instruction, currentSummary)

	out, err := o.generate(ctx, prompt, 0.3, 0)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OllamaService) generate(ctx context.Context, prompt string, temperature float64, numPredict int) (string, error) {
	url := o.baseURL + "/api/generate"

	options := map[string]interface{}{
		"temperature": temperature,
	}
	if numPredict > 0 {
		options["num_predict"] = numPredict
	}
	payload := map[string]interface{}{
		"model":   o.model,
		"prompt":  prompt,
		"stream":  false,
		"options": options,
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

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Response, nil
}
