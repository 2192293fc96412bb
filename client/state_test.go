package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	summarydomain "lexora-backend/internal/summary/domain"
	summarydto "lexora-backend/internal/summary/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory() []*summarydomain.Summary {
	return []*summarydomain.Summary{
		{ID: "s1", Title: "Budget Review", Prompt: "Summarize the meeting", SummaryText: "We discussed Q3 spend.", ShareID: "share-s1"},
		{ID: "s2", Title: "Weekly Sync", Prompt: "Action items only", SummaryText: "Ship the beta.", ShareID: "share-s2"},
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// loadedState returns a SummaryState whose history was fetched from the
// given mux, mounted behind the list endpoint.
func loadedState(t *testing.T, mux *http.ServeMux) (*SummaryState, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	c.SetToken("test-token")
	state := NewSummaryState(c)
	require.NoError(t, state.LoadHistory(context.Background()))
	return state, srv
}

func listMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/summaries", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, seedHistory())
	})
	return mux
}

func TestRenameAppliesOptimisticallyAndCommits(t *testing.T) {
	mux := listMux(t)

	var titleDuringRequest atomic.Value
	var state *SummaryState
	mux.HandleFunc("PATCH /api/summaries/{id}", func(w http.ResponseWriter, r *http.Request) {
		// The new title must already be visible locally while the
		// request is still in flight.
		titleDuringRequest.Store(state.History()[0].Title)

		var req summarydto.RenameRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(t, w, http.StatusOK, &summarydomain.Summary{ID: r.PathValue("id"), Title: req.Title})
	})

	state, _ = loadedState(t, mux)

	require.NoError(t, state.Rename(context.Background(), "s1", "Q3 Budget Review"))

	assert.Equal(t, "Q3 Budget Review", titleDuringRequest.Load())
	assert.Equal(t, "Q3 Budget Review", state.History()[0].Title)
}

func TestRenameRollsBackOnServerFailure(t *testing.T) {
	mux := listMux(t)
	mux.HandleFunc("PATCH /api/summaries/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "summary not found"})
	})

	state, _ := loadedState(t, mux)

	err := state.Rename(context.Background(), "s1", "Hijacked Title")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	// The optimistic title is rolled back.
	assert.Equal(t, "Budget Review", state.History()[0].Title)
}

func TestUndoWalksBackRefinementChain(t *testing.T) {
	mux := listMux(t)
	mux.HandleFunc("POST /api/summaries/refine", func(w http.ResponseWriter, r *http.Request) {
		var req summarydto.RefineRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(t, w, http.StatusOK, summarydto.RefineResponse{
			RefinedText: req.CurrentSummary + " [" + req.RefinementPrompt + "]",
		})
	})

	state, _ := loadedState(t, mux)
	state.SetActive(state.History()[0])
	original := state.ActiveText()

	_, err := state.Refine(context.Background(), "shorter")
	require.NoError(t, err)
	afterFirst := state.ActiveText()
	assert.Equal(t, original+" [shorter]", afterFirst)

	_, err = state.Refine(context.Background(), "bullet points")
	require.NoError(t, err)
	assert.Equal(t, afterFirst+" [bullet points]", state.ActiveText())
	assert.Len(t, state.Turns(), 2)

	// Two undos walk back both turns in order.
	assert.True(t, state.UndoLast())
	assert.Equal(t, afterFirst, state.ActiveText())
	assert.True(t, state.UndoLast())
	assert.Equal(t, original, state.ActiveText())

	// Nothing left to undo.
	assert.False(t, state.UndoLast())
	assert.Equal(t, original, state.ActiveText())
}

func TestRefineFailureLeavesTextUntouched(t *testing.T) {
	mux := listMux(t)
	mux.HandleFunc("POST /api/summaries/refine", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "AI service unavailable"})
	})

	state, _ := loadedState(t, mux)
	state.SetActive(state.History()[0])
	original := state.ActiveText()

	_, err := state.Refine(context.Background(), "shorter")
	require.Error(t, err)
	assert.Equal(t, original, state.ActiveText())
	assert.Empty(t, state.Turns())
}

func TestSaveChangesResetsRefinementSession(t *testing.T) {
	mux := listMux(t)
	mux.HandleFunc("POST /api/summaries/refine", func(w http.ResponseWriter, r *http.Request) {
		var req summarydto.RefineRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(t, w, http.StatusOK, summarydto.RefineResponse{RefinedText: "refined text"})
	})
	mux.HandleFunc("PATCH /api/summaries/{id}/text", func(w http.ResponseWriter, r *http.Request) {
		var req summarydto.SaveTextRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(t, w, http.StatusOK, &summarydomain.Summary{ID: r.PathValue("id"), SummaryText: req.SummaryText})
	})

	state, _ := loadedState(t, mux)
	state.SetActive(state.History()[0])

	_, err := state.Refine(context.Background(), "shorter")
	require.NoError(t, err)

	require.NoError(t, state.SaveChanges(context.Background()))

	assert.Equal(t, "refined text", state.ActiveText())
	assert.Equal(t, "refined text", state.History()[0].SummaryText)
	assert.Empty(t, state.Turns(), "saving commits the chain")
	assert.False(t, state.UndoLast())
}

func TestSaveChangesKeepsLocalTextOnFailure(t *testing.T) {
	mux := listMux(t)
	mux.HandleFunc("POST /api/summaries/refine", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, summarydto.RefineResponse{RefinedText: "refined text"})
	})
	mux.HandleFunc("PATCH /api/summaries/{id}/text", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "database error"})
	})

	state, _ := loadedState(t, mux)
	state.SetActive(state.History()[0])

	_, err := state.Refine(context.Background(), "shorter")
	require.NoError(t, err)

	require.Error(t, state.SaveChanges(context.Background()))

	// Unlike rename, a failed save does not roll back: the refined
	// text stays so the user can retry.
	assert.Equal(t, "refined text", state.ActiveText())
	assert.Len(t, state.Turns(), 1)
}

func TestFilterHistoryMatchesCaseInsensitively(t *testing.T) {
	state, _ := loadedState(t, listMux(t))

	state.SetSearchTerm("budget")
	filtered := state.FilterHistory()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Budget Review", filtered[0].Title)

	// Matches summary text too.
	state.SetSearchTerm("BETA")
	filtered = state.FilterHistory()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Weekly Sync", filtered[0].Title)

	state.SetSearchTerm("nothing matches this")
	assert.Empty(t, state.FilterHistory())

	state.SetSearchTerm("")
	assert.Len(t, state.FilterHistory(), 2)
}

func TestStaleHistoryResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/summaries", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-release
			writeJSON(t, w, http.StatusOK, []*summarydomain.Summary{{ID: "old", Title: "Stale List"}})
			return
		}
		writeJSON(t, w, http.StatusOK, []*summarydomain.Summary{{ID: "new", Title: "Fresh List"}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	state := NewSummaryState(c)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- state.LoadHistory(context.Background())
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	// The second load starts after the first and finishes first.
	require.NoError(t, state.LoadHistory(context.Background()))
	require.Len(t, state.History(), 1)
	assert.Equal(t, "Fresh List", state.History()[0].Title)

	close(release)
	require.NoError(t, <-firstDone)

	// The late first response must not overwrite the fresher list.
	require.Len(t, state.History(), 1)
	assert.Equal(t, "Fresh List", state.History()[0].Title)
}

func TestLogoutClearsSession(t *testing.T) {
	state, _ := loadedState(t, listMux(t))
	state.SetActive(state.History()[0])
	state.SetSearchTerm("budget")

	state.Logout()

	assert.Empty(t, state.History())
	assert.Nil(t, state.Active())
	assert.Empty(t, state.ActiveText())
	assert.Len(t, state.FilterHistory(), 0)
}

func TestSummarizePrependsToHistory(t *testing.T) {
	mux := listMux(t)
	mux.HandleFunc("POST /api/summarize", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Summarize this", r.FormValue("prompt"))
		assert.Equal(t, "we met and talked", r.FormValue("transcript"))
		writeJSON(t, w, http.StatusOK, &summarydomain.Summary{
			ID: "s3", Title: "New Meeting", SummaryText: "A short recap.", ShareID: "share-s3",
		})
	})

	state, _ := loadedState(t, mux)

	created, err := state.Summarize(context.Background(), "Summarize this", "we met and talked", nil)
	require.NoError(t, err)

	assert.Equal(t, "s3", created.ID)
	require.Len(t, state.History(), 3)
	assert.Equal(t, "s3", state.History()[0].ID)
	assert.Equal(t, created, state.Active())
	assert.Equal(t, "A short recap.", state.ActiveText())
}
