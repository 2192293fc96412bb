package delivery

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	authdomain "lexora-backend/internal/auth/domain"
	summarydomain "lexora-backend/internal/summary/domain"
	summarydto "lexora-backend/internal/summary/dto"
	"lexora-backend/internal/summary/usecase"
	"lexora-backend/pkg/export"
	"lexora-backend/pkg/extract"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	summaryUsecase usecase.SummaryUsecase
}

func NewSummaryHandler(summaryUsecase usecase.SummaryUsecase) *SummaryHandler {
	return &SummaryHandler{
		summaryUsecase: summaryUsecase,
	}
}

func currentUser(c *gin.Context) (*authdomain.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, false
	}
	userData, ok := user.(*authdomain.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user data"})
		return nil, false
	}
	return userData, true
}

// statusFor maps the domain error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, summarydomain.ErrMissingInput),
		errors.Is(err, summarydomain.ErrUnsupportedFileType):
		return http.StatusBadRequest
	case errors.Is(err, summarydomain.ErrNotFound),
		errors.Is(err, summarydomain.ErrNotFoundOrForbidden):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// GET /api/summaries
func (h *SummaryHandler) ListSummaries(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	summaries, err := h.summaryUsecase.ListByOwner(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if summaries == nil {
		summaries = []*summarydomain.Summary{}
	}
	c.JSON(http.StatusOK, summaries)
}

// GET /api/summaries/:id - public, no auth. The path value is the share
// token, not the record id.
func (h *SummaryHandler) GetSharedSummary(c *gin.Context) {
	summary, err := h.summaryUsecase.GetByShareID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// POST /api/summarize - multipart: prompt + (file or transcript)
func (h *SummaryHandler) Summarize(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req summarydto.SummarizeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// An uploaded file takes precedence over pasted text, matching the
	// form contract.
	source := extract.Pasted(req.Transcript)
	if req.File != nil {
		f, err := req.File.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}
		source = extract.Uploaded(data, req.File.Header.Get("Content-Type"))
	}

	summary, err := h.summaryUsecase.Summarize(c.Request.Context(), user.ID, req.Prompt, source)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// PATCH /api/summaries/:id
func (h *SummaryHandler) RenameSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req summarydto.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	summary, err := h.summaryUsecase.Rename(c.Param("id"), user.ID, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// PATCH /api/summaries/:id/text
func (h *SummaryHandler) SaveSummaryText(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req summarydto.SaveTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "summaryText is required"})
		return
	}

	summary, err := h.summaryUsecase.SaveRefinedText(c.Param("id"), user.ID, req.SummaryText)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// POST /api/summaries/refine
func (h *SummaryHandler) RefineSummary(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var req summarydto.RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refined, err := h.summaryUsecase.Refine(c.Request.Context(), req.CurrentSummary, req.RefinementPrompt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summarydto.RefineResponse{RefinedText: refined})
}

// POST /api/share
func (h *SummaryHandler) ShareByEmail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req summarydto.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "summary and recipient are required"})
		return
	}

	if err := h.summaryUsecase.ShareByEmail(c.Request.Context(), user, req.Recipient, req.Summary); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully!"})
}

// GET /api/summaries/:id/export?format=txt|md|pdf
func (h *SummaryHandler) ExportSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	format, err := export.ParseFormat(c.DefaultQuery("format", "txt"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.summaryUsecase.GetByIDForOwner(c.Param("id"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(summary.Title, format)))
	c.Header("Content-Type", format.MediaType())
	c.Status(http.StatusOK)

	if err := export.Write(c.Writer, format, summary.Title, summary.SummaryText); err != nil {
		// Headers are already out; nothing sensible left to send.
		_ = c.Error(err)
	}
}
