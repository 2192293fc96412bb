// Package client is the Go SDK for the Lexora API. It wraps the HTTP
// surface and, in state.go, provides the session state manager the UI
// layer drives.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	promptdomain "lexora-backend/internal/prompt/domain"
	summarydomain "lexora-backend/internal/summary/domain"
	summarydto "lexora-backend/internal/summary/dto"
	"lexora-backend/pkg/export"
)

// FileUpload carries an uploaded transcript file for Summarize. When
// set it takes precedence over pasted text.
type FileUpload struct {
	Name      string
	MediaType string
	Data      []byte
}

// Client talks to a Lexora backend. It is safe for concurrent use once
// the token is set.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

type apiError struct {
	Message string `json:"error"`
}

// Error is a non-2xx API response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ae apiError
		_ = json.NewDecoder(resp.Body).Decode(&ae)
		return &Error{StatusCode: resp.StatusCode, Message: ae.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// ListSummaries returns the caller's summaries, newest first.
func (c *Client) ListSummaries(ctx context.Context) ([]*summarydomain.Summary, error) {
	var out []*summarydomain.Summary
	if err := c.do(ctx, http.MethodGet, "/api/summaries", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetShared fetches a summary by its public share token. No auth needed.
func (c *Client) GetShared(ctx context.Context, shareID string) (*summarydomain.Summary, error) {
	var out summarydomain.Summary
	if err := c.do(ctx, http.MethodGet, "/api/summaries/"+shareID, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summarize submits a transcript for summarization. file, when non-nil,
// wins over the pasted transcript.
func (c *Client) Summarize(ctx context.Context, prompt, transcript string, file *FileUpload) (*summarydomain.Summary, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("prompt", prompt); err != nil {
		return nil, err
	}
	if file != nil {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name)}
		mediaType := file.MediaType
		if mediaType == "" {
			mediaType = "application/octet-stream"
		}
		h["Content-Type"] = []string{mediaType}
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, err
		}
	} else {
		if err := w.WriteField("transcript", transcript); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out summarydomain.Summary
	if err := c.do(ctx, http.MethodPost, "/api/summarize", &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Rename updates a summary's title.
func (c *Client) Rename(ctx context.Context, id, title string) (*summarydomain.Summary, error) {
	var out summarydomain.Summary
	err := c.doJSON(ctx, http.MethodPatch, "/api/summaries/"+id, summarydto.RenameRequest{Title: title}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveText persists edited summary text.
func (c *Client) SaveText(ctx context.Context, id, text string) (*summarydomain.Summary, error) {
	var out summarydomain.Summary
	err := c.doJSON(ctx, http.MethodPatch, "/api/summaries/"+id+"/text", summarydto.SaveTextRequest{SummaryText: text}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Refine runs one stateless refinement turn and returns the new text.
// Nothing is persisted server-side.
func (c *Client) Refine(ctx context.Context, currentSummary, instruction string) (string, error) {
	var out summarydto.RefineResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/summaries/refine", summarydto.RefineRequest{
		CurrentSummary:   currentSummary,
		RefinementPrompt: instruction,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.RefinedText, nil
}

// Share sends summaryText to recipient from the caller's own Gmail.
func (c *Client) Share(ctx context.Context, summaryText, recipient string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/share", summarydto.ShareRequest{
		Summary:   summaryText,
		Recipient: recipient,
	}, nil)
}

// Export downloads a summary in the given format. The returned name is
// the server-suggested filename.
func (c *Client) Export(ctx context.Context, id, format string) (data []byte, name string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/summaries/"+id+"/export?format="+format, nil)
	if err != nil {
		return nil, "", err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		_ = json.NewDecoder(resp.Body).Decode(&ae)
		return nil, "", &Error{StatusCode: resp.StatusCode, Message: ae.Message}
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	if _, params, perr := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); perr == nil {
		name = params["filename"]
	}
	return data, name, nil
}

// ShareLink builds the public URL for a summary, e.g.
// https://app.example.com/share/aBc123XyZ0.
func ShareLink(origin, shareID string) string {
	return strings.TrimRight(origin, "/") + "/share/" + shareID
}

// ExportText renders a summary as plain text locally, with no server
// round trip. The bytes are the stored summary text verbatim.
func ExportText(w io.Writer, s *summarydomain.Summary) error {
	return export.Write(w, export.FormatText, s.Title, s.SummaryText)
}

// ExportMarkdown renders a summary as Markdown locally. PDF always goes
// through the Export endpoint.
func ExportMarkdown(w io.Writer, s *summarydomain.Summary) error {
	return export.Write(w, export.FormatMarkdown, s.Title, s.SummaryText)
}

// ListPrompts returns built-in defaults followed by the caller's own
// templates.
func (c *Client) ListPrompts(ctx context.Context) ([]*promptdomain.PromptTemplate, error) {
	var out []*promptdomain.PromptTemplate
	if err := c.do(ctx, http.MethodGet, "/api/prompts", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePrompt saves a custom template.
func (c *Client) CreatePrompt(ctx context.Context, title, promptText string) (*promptdomain.PromptTemplate, error) {
	var out promptdomain.PromptTemplate
	err := c.doJSON(ctx, http.MethodPost, "/api/prompts", map[string]string{
		"title":      title,
		"promptText": promptText,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePrompt removes one of the caller's own templates. Built-in
// defaults cannot be deleted.
func (c *Client) DeletePrompt(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/prompts/"+id, nil, "", nil)
}
