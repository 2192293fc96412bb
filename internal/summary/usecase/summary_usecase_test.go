package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	authdomain "lexora-backend/internal/auth/domain"
	summarydomain "lexora-backend/internal/summary/domain"
	"lexora-backend/pkg/extract"
	"lexora-backend/pkg/gmail"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAI scripts the two AI calls independently so title and summary
// failures can be tested in isolation.
type fakeAI struct {
	title      string
	titleErr   error
	summary    string
	summaryErr error
	refined    string
	refineErr  error

	titleCalls   int
	summaryCalls int
}

func (f *fakeAI) GenerateTitle(ctx context.Context, excerpt string) (string, error) {
	f.titleCalls++
	return f.title, f.titleErr
}

func (f *fakeAI) Summarize(ctx context.Context, instruction, transcript string) (string, error) {
	f.summaryCalls++
	return f.summary, f.summaryErr
}

func (f *fakeAI) Refine(ctx context.Context, currentSummary, instruction string) (string, error) {
	return f.refined, f.refineErr
}

// memRepo is an in-memory SummaryRepository.
type memRepo struct {
	records map[string]*summarydomain.Summary
	nextID  int
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[string]*summarydomain.Summary)}
}

func (m *memRepo) Create(s *summarydomain.Summary) error {
	m.nextID++
	s.ID = time.Now().Format("20060102") + "-" + string(rune('a'+m.nextID))
	s.CreatedAt = time.Now().Add(time.Duration(m.nextID) * time.Second)
	cp := *s
	m.records[s.ID] = &cp
	return nil
}

func (m *memRepo) ListByOwner(ownerID string) ([]*summarydomain.Summary, error) {
	var out []*summarydomain.Summary
	for _, s := range m.records {
		if s.OwnerID == ownerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) GetByShareID(shareID string) (*summarydomain.Summary, error) {
	for _, s := range m.records {
		if s.ShareID == shareID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) GetByIDForOwner(id, ownerID string) (*summarydomain.Summary, error) {
	s, ok := m.records[id]
	if !ok || s.OwnerID != ownerID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memRepo) Rename(id, ownerID, newTitle string) (*summarydomain.Summary, error) {
	s, ok := m.records[id]
	if !ok || s.OwnerID != ownerID {
		return nil, summarydomain.ErrNotFoundOrForbidden
	}
	s.Title = newTitle
	cp := *s
	return &cp, nil
}

func (m *memRepo) SaveRefinedText(id, ownerID, newText string) (*summarydomain.Summary, error) {
	s, ok := m.records[id]
	if !ok || s.OwnerID != ownerID {
		return nil, summarydomain.ErrNotFoundOrForbidden
	}
	s.SummaryText = newText
	cp := *s
	return &cp, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(*authdomain.User) error                       { return nil }
func (fakeUserRepo) FindByEmail(string) (*authdomain.User, error)        { return nil, nil }
func (fakeUserRepo) FindByID(string) (*authdomain.User, error)           { return nil, nil }
func (fakeUserRepo) Update(*authdomain.User) error                       { return nil }
func (fakeUserRepo) UpdateGoogleTokens(string, string, string) error     { return nil }
func (fakeUserRepo) SaveRefreshToken(*authdomain.RefreshToken) error     { return nil }
func (fakeUserRepo) FindRefreshToken(string) (*authdomain.RefreshToken, error) {
	return nil, nil
}
func (fakeUserRepo) DeleteRefreshToken(string) error { return nil }

type fakeMailSender struct {
	sent []string
	err  error
}

func (f *fakeMailSender) SendSummary(ctx context.Context, accessToken, refreshToken, fromEmail, to, subject, body string, onTokenRefresh gmail.TokenUpdateFunc) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestUsecase(aiSvc *fakeAI, repo *memRepo, mail *fakeMailSender) SummaryUsecase {
	if mail == nil {
		mail = &fakeMailSender{}
	}
	return NewSummaryUsecase(repo, fakeUserRepo{}, aiSvc, mail, zerolog.Nop())
}

func TestSummarizeHappyPath(t *testing.T) {
	aiSvc := &fakeAI{title: "Weekly Sync", summary: "The team agreed to ship Friday."}
	repo := newMemRepo()
	uc := newTestUsecase(aiSvc, repo, nil)

	got, err := uc.Summarize(context.Background(), "user-a", "Summarize the meeting", extract.Pasted("Alice: ship Friday?"))
	require.NoError(t, err)

	assert.Equal(t, "Weekly Sync", got.Title)
	assert.Equal(t, "The team agreed to ship Friday.", got.SummaryText)
	assert.Equal(t, "user-a", got.OwnerID)
	assert.Equal(t, "Alice: ship Friday?", got.OriginalContent)
	assert.Equal(t, "Summarize the meeting", got.Prompt)
	assert.NotEmpty(t, got.ShareID)
	assert.Equal(t, 1, aiSvc.titleCalls)
	assert.Equal(t, 1, aiSvc.summaryCalls)
	assert.Len(t, repo.records, 1)
}

func TestSummarizeUniqueShareIDs(t *testing.T) {
	aiSvc := &fakeAI{title: "T", summary: "S"}
	repo := newMemRepo()
	uc := newTestUsecase(aiSvc, repo, nil)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		got, err := uc.Summarize(context.Background(), "user-a", "p", extract.Pasted("transcript"))
		require.NoError(t, err)
		require.False(t, seen[got.ShareID], "share id %q issued twice", got.ShareID)
		seen[got.ShareID] = true
	}
}

func TestSummarizeTitleFailureFallsBack(t *testing.T) {
	aiSvc := &fakeAI{titleErr: errors.New("model overloaded"), summary: "the summary"}
	uc := newTestUsecase(aiSvc, newMemRepo(), nil)

	got, err := uc.Summarize(context.Background(), "user-a", "p", extract.Pasted("transcript"))
	require.NoError(t, err)
	assert.Equal(t, "Untitled Summary", got.Title)
	assert.Equal(t, "the summary", got.SummaryText)
}

func TestSummarizeSummaryFailureIsFatal(t *testing.T) {
	aiSvc := &fakeAI{title: "T", summaryErr: errors.New("model down")}
	repo := newMemRepo()
	uc := newTestUsecase(aiSvc, repo, nil)

	_, err := uc.Summarize(context.Background(), "user-a", "p", extract.Pasted("transcript"))
	assert.ErrorIs(t, err, summarydomain.ErrAIGenerationFailed)
	assert.Empty(t, repo.records, "no record may be persisted on summary failure")
}

func TestSummarizeMissingInput(t *testing.T) {
	aiSvc := &fakeAI{title: "T", summary: "S"}
	uc := newTestUsecase(aiSvc, newMemRepo(), nil)

	_, err := uc.Summarize(context.Background(), "user-a", "", extract.Pasted("transcript"))
	assert.ErrorIs(t, err, summarydomain.ErrMissingInput)

	_, err = uc.Summarize(context.Background(), "user-a", "p", extract.Pasted("  "))
	assert.ErrorIs(t, err, summarydomain.ErrMissingInput)

	assert.Zero(t, aiSvc.titleCalls)
	assert.Zero(t, aiSvc.summaryCalls)
}

func TestSummarizeUnsupportedUploadShortCircuits(t *testing.T) {
	aiSvc := &fakeAI{title: "T", summary: "S"}
	uc := newTestUsecase(aiSvc, newMemRepo(), nil)

	_, err := uc.Summarize(context.Background(), "user-a", "p", extract.Uploaded([]byte{1, 2, 3}, "image/png"))
	assert.ErrorIs(t, err, summarydomain.ErrUnsupportedFileType)
	assert.Zero(t, aiSvc.titleCalls, "no AI call may happen for an unsupported upload")
	assert.Zero(t, aiSvc.summaryCalls)
}

func TestTitleExcerptTruncation(t *testing.T) {
	long := make([]rune, titleExcerptLimit+500)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, []rune(titleExcerpt(string(long))), titleExcerptLimit)
	assert.Equal(t, "short", titleExcerpt("short"))
}

func TestRenameOwnership(t *testing.T) {
	aiSvc := &fakeAI{title: "T", summary: "S"}
	repo := newMemRepo()
	uc := newTestUsecase(aiSvc, repo, nil)

	created, err := uc.Summarize(context.Background(), "user-a", "p", extract.Pasted("transcript"))
	require.NoError(t, err)

	// Non-owner rename fails and leaves the record untouched.
	_, err = uc.Rename(created.ID, "user-b", "Hijacked")
	assert.ErrorIs(t, err, summarydomain.ErrNotFoundOrForbidden)
	stored, err := uc.GetByIDForOwner(created.ID, "user-a")
	require.NoError(t, err)
	assert.Equal(t, "T", stored.Title)

	// Owner rename succeeds.
	renamed, err := uc.Rename(created.ID, "user-a", "Budget Review")
	require.NoError(t, err)
	assert.Equal(t, "Budget Review", renamed.Title)
}

func TestSaveRefinedTextOwnership(t *testing.T) {
	aiSvc := &fakeAI{title: "T", summary: "S"}
	uc := newTestUsecase(aiSvc, newMemRepo(), nil)

	created, err := uc.Summarize(context.Background(), "user-a", "p", extract.Pasted("transcript"))
	require.NoError(t, err)

	_, err = uc.SaveRefinedText(created.ID, "user-b", "tampered")
	assert.ErrorIs(t, err, summarydomain.ErrNotFoundOrForbidden)

	updated, err := uc.SaveRefinedText(created.ID, "user-a", "refined text")
	require.NoError(t, err)
	assert.Equal(t, "refined text", updated.SummaryText)
}

func TestGetByShareIDPublicRead(t *testing.T) {
	aiSvc := &fakeAI{title: "T", summary: "S"}
	uc := newTestUsecase(aiSvc, newMemRepo(), nil)

	created, err := uc.Summarize(context.Background(), "user-a", "p", extract.Pasted("transcript"))
	require.NoError(t, err)

	got, err := uc.GetByShareID(created.ShareID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.GetByShareID("nope")
	assert.ErrorIs(t, err, summarydomain.ErrNotFound)
}

func TestListByOwnerNewestFirst(t *testing.T) {
	aiSvc := &fakeAI{title: "T", summary: "S"}
	uc := newTestUsecase(aiSvc, newMemRepo(), nil)

	first, err := uc.Summarize(context.Background(), "user-a", "p", extract.Pasted("one"))
	require.NoError(t, err)
	second, err := uc.Summarize(context.Background(), "user-a", "p", extract.Pasted("two"))
	require.NoError(t, err)
	_, err = uc.Summarize(context.Background(), "user-b", "p", extract.Pasted("other owner"))
	require.NoError(t, err)

	list, err := uc.ListByOwner("user-a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestRefineStateless(t *testing.T) {
	aiSvc := &fakeAI{refined: "shorter text"}
	repo := newMemRepo()
	uc := newTestUsecase(aiSvc, repo, nil)

	refined, err := uc.Refine(context.Background(), "long text", "make it shorter")
	require.NoError(t, err)
	assert.Equal(t, "shorter text", refined)
	assert.Empty(t, repo.records, "refinement must not persist anything")
}

func TestRefineFailure(t *testing.T) {
	aiSvc := &fakeAI{refineErr: errors.New("model down")}
	uc := newTestUsecase(aiSvc, newMemRepo(), nil)

	_, err := uc.Refine(context.Background(), "text", "instruction")
	assert.ErrorIs(t, err, summarydomain.ErrRefinementFailed)
}

func TestShareByEmail(t *testing.T) {
	aiSvc := &fakeAI{}
	mail := &fakeMailSender{}
	uc := newTestUsecase(aiSvc, newMemRepo(), mail)

	user := &authdomain.User{ID: "u1", Email: "a@example.com", GoogleAccessToken: "tok"}

	require.NoError(t, uc.ShareByEmail(context.Background(), user, "b@example.com", "the summary"))
	assert.Equal(t, []string{"b@example.com"}, mail.sent)

	// Missing recipient
	err := uc.ShareByEmail(context.Background(), user, "", "the summary")
	assert.ErrorIs(t, err, summarydomain.ErrMissingInput)

	// No Google credentials on the account
	err = uc.ShareByEmail(context.Background(), &authdomain.User{ID: "u2", Email: "c@example.com"}, "b@example.com", "text")
	assert.ErrorIs(t, err, summarydomain.ErrEmailSendFailed)
}

func TestShareByEmailDownstreamFailure(t *testing.T) {
	mail := &fakeMailSender{err: errors.New("gmail 500")}
	uc := newTestUsecase(&fakeAI{}, newMemRepo(), mail)

	user := &authdomain.User{ID: "u1", Email: "a@example.com", GoogleAccessToken: "tok"}
	err := uc.ShareByEmail(context.Background(), user, "b@example.com", "text")
	assert.ErrorIs(t, err, summarydomain.ErrEmailSendFailed)
}
