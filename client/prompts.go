package client

import (
	"context"
	"sync"

	promptdomain "lexora-backend/internal/prompt/domain"
)

// PromptState holds the prompt templates available to the session. The
// server lists built-in defaults first, then the user's own templates.
type PromptState struct {
	mu sync.Mutex

	client   *Client
	prompts  []*promptdomain.PromptTemplate
	activeID string
}

func NewPromptState(c *Client) *PromptState {
	return &PromptState{client: c}
}

// Load fetches the visible templates. If no active template is set, or
// the previously active one is gone, the first template (the first
// built-in default) becomes active.
func (p *PromptState) Load(ctx context.Context) error {
	list, err := p.client.ListPrompts(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = list
	if p.lookupLocked(p.activeID) == nil {
		p.activeID = ""
		if len(list) > 0 {
			p.activeID = list[0].ID
		}
	}
	return nil
}

// Templates returns a copy of the loaded templates.
func (p *PromptState) Templates() []*promptdomain.PromptTemplate {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*promptdomain.PromptTemplate, len(p.prompts))
	copy(out, p.prompts)
	return out
}

// Active returns the currently selected template, or nil when none is
// loaded.
func (p *PromptState) Active() *promptdomain.PromptTemplate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lookupLocked(p.activeID)
}

// SetActive selects a template by id. Unknown ids are ignored.
func (p *PromptState) SetActive(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lookupLocked(id) != nil {
		p.activeID = id
	}
}

// Save creates a custom template and appends it to the list.
func (p *PromptState) Save(ctx context.Context, title, promptText string) (*promptdomain.PromptTemplate, error) {
	created, err := p.client.CreatePrompt(ctx, title, promptText)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, created)
	return created, nil
}

// Delete removes one of the user's own templates. If the deleted
// template was active, selection falls back to the first template.
func (p *PromptState) Delete(ctx context.Context, id string) error {
	if err := p.client.DeletePrompt(ctx, id); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i, tpl := range p.prompts {
		if tpl.ID == id {
			p.prompts = append(p.prompts[:i], p.prompts[i+1:]...)
			break
		}
	}
	if p.activeID == id {
		p.activeID = ""
		if len(p.prompts) > 0 {
			p.activeID = p.prompts[0].ID
		}
	}
	return nil
}

// lookupLocked finds a template by id. Caller holds p.mu.
func (p *PromptState) lookupLocked(id string) *promptdomain.PromptTemplate {
	if id == "" {
		return nil
	}
	for _, tpl := range p.prompts {
		if tpl.ID == id {
			return tpl
		}
	}
	return nil
}
