package client

import (
	"context"
	"strings"
	"sync"

	summarydomain "lexora-backend/internal/summary/domain"
)

// RefineTurn records one applied refinement so it can be undone.
// PreviousText is the working text as it was before this turn.
type RefineTurn struct {
	Instruction  string
	Result       string
	PreviousText string
}

// SummaryState holds the session's summaries and the refinement session
// for the active one. All methods are safe for concurrent use.
//
// Mutations are optimistic where the UI benefits: Rename applies the new
// title immediately and rolls back on server failure. SaveChanges keeps
// the local text on failure so the user's edits are not lost.
type SummaryState struct {
	mu sync.Mutex

	client *Client

	history    []*summarydomain.Summary
	active     *summarydomain.Summary
	activeText string
	turns      []RefineTurn

	searchTerm string
	loading    bool
	refining   bool
	fetchSeq   uint64
}

func NewSummaryState(c *Client) *SummaryState {
	return &SummaryState{client: c}
}

// LoadHistory refreshes the summary list. When several loads overlap
// (login races, rapid account switches) only the most recently started
// one may write its result; stale responses are discarded.
func (s *SummaryState) LoadHistory(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.loading = true
	s.mu.Unlock()

	list, err := s.client.ListSummaries(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fetchSeq {
		// A newer load started after this one; drop the response.
		return nil
	}
	s.loading = false
	if err != nil {
		return err
	}
	s.history = list
	return nil
}

// History returns a copy of the current list, newest first.
func (s *SummaryState) History() []*summarydomain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*summarydomain.Summary, len(s.history))
	copy(out, s.history)
	return out
}

// Loading reports whether a history fetch is in flight.
func (s *SummaryState) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetActive selects a summary to work on and resets the refinement
// session.
func (s *SummaryState) SetActive(summary *summarydomain.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = summary
	s.turns = nil
	if summary != nil {
		s.activeText = summary.SummaryText
	} else {
		s.activeText = ""
	}
}

// Active returns the currently selected summary, or nil.
func (s *SummaryState) Active() *summarydomain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ActiveText returns the working text, including unsaved refinements.
func (s *SummaryState) ActiveText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeText
}

// Logout clears all session state.
func (s *SummaryState) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchSeq++ // invalidate any in-flight load
	s.history = nil
	s.active = nil
	s.activeText = ""
	s.turns = nil
	s.searchTerm = ""
	s.loading = false
	s.refining = false
}

// Summarize submits a new transcript and prepends the result to the
// history.
func (s *SummaryState) Summarize(ctx context.Context, prompt, transcript string, file *FileUpload) (*summarydomain.Summary, error) {
	summary, err := s.client.Summarize(ctx, prompt, transcript, file)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]*summarydomain.Summary{summary}, s.history...)
	s.active = summary
	s.activeText = summary.SummaryText
	s.turns = nil
	return summary, nil
}

// optimistic is the three-phase mutation helper: snapshot the local
// record, apply the change immediately, then either commit the server's
// confirmed state or revert to the snapshot when the call fails.
func (s *SummaryState) optimistic(id string, apply func(*summarydomain.Summary), call func() (*summarydomain.Summary, error), commit func(local, server *summarydomain.Summary)) error {
	s.mu.Lock()
	target := s.findLocked(id)
	if target == nil {
		s.mu.Unlock()
		return &Error{StatusCode: 404, Message: "summary not found"}
	}
	snapshot := *target
	apply(target)
	s.mu.Unlock()

	updated, err := call()

	s.mu.Lock()
	defer s.mu.Unlock()
	target = s.findLocked(id)
	if target == nil {
		return err
	}
	if err != nil {
		*target = snapshot
		return err
	}
	commit(target, updated)
	return nil
}

// Rename updates a summary's title optimistically: the new title shows
// immediately and is rolled back if the server rejects the change.
func (s *SummaryState) Rename(ctx context.Context, id, title string) error {
	return s.optimistic(id,
		func(local *summarydomain.Summary) { local.Title = title },
		func() (*summarydomain.Summary, error) { return s.client.Rename(ctx, id, title) },
		func(local, server *summarydomain.Summary) { local.Title = server.Title },
	)
}

// Refine runs one refinement turn against the working text and records
// it so UndoLast can walk back.
func (s *SummaryState) Refine(ctx context.Context, instruction string) (string, error) {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return "", &Error{StatusCode: 400, Message: "no active summary"}
	}
	current := s.activeText
	s.refining = true
	s.mu.Unlock()

	result, err := s.client.Refine(ctx, current, instruction)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refining = false
	if err != nil {
		return "", err
	}
	s.turns = append(s.turns, RefineTurn{
		Instruction:  instruction,
		Result:       result,
		PreviousText: current,
	})
	s.activeText = result
	return result, nil
}

// Refining reports whether a refinement call is in flight.
func (s *SummaryState) Refining() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refining
}

// Turns returns the refinement turns applied since the summary was
// selected or last saved.
func (s *SummaryState) Turns() []RefineTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RefineTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// UndoLast reverts the most recent refinement turn. It reports whether
// anything was undone; with no turns recorded it is a no-op.
func (s *SummaryState) UndoLast() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.turns) == 0 {
		return false
	}
	last := s.turns[len(s.turns)-1]
	s.turns = s.turns[:len(s.turns)-1]
	s.activeText = last.PreviousText
	return true
}

// SaveChanges persists the working text to the active summary. On
// success the refinement session resets; on failure the local text is
// kept so nothing the user refined is lost.
func (s *SummaryState) SaveChanges(ctx context.Context) error {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return &Error{StatusCode: 400, Message: "no active summary"}
	}
	id := s.active.ID
	text := s.activeText
	s.mu.Unlock()

	updated, err := s.client.SaveText(ctx, id, text)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.ID == id {
		s.active = updated
		s.activeText = updated.SummaryText
		s.turns = nil
	}
	if target := s.findLocked(id); target != nil {
		target.SummaryText = updated.SummaryText
	}
	return nil
}

// SetSearchTerm sets the history filter term.
func (s *SummaryState) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

// FilterHistory returns the summaries matching the current search term,
// case-insensitively, against title, prompt and summary text. An empty
// term matches everything.
func (s *SummaryState) FilterHistory() []*summarydomain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(s.searchTerm))
	if term == "" {
		out := make([]*summarydomain.Summary, len(s.history))
		copy(out, s.history)
		return out
	}

	var out []*summarydomain.Summary
	for _, sum := range s.history {
		if strings.Contains(strings.ToLower(sum.Title), term) ||
			strings.Contains(strings.ToLower(sum.Prompt), term) ||
			strings.Contains(strings.ToLower(sum.SummaryText), term) {
			out = append(out, sum)
		}
	}
	return out
}

// findLocked locates a summary by id. Caller holds s.mu.
func (s *SummaryState) findLocked(id string) *summarydomain.Summary {
	for _, sum := range s.history {
		if sum.ID == id {
			return sum
		}
	}
	if s.active != nil && s.active.ID == id {
		return s.active
	}
	return nil
}
