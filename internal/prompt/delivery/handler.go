package delivery

import (
	"errors"
	"net/http"

	authdomain "lexora-backend/internal/auth/domain"
	promptdomain "lexora-backend/internal/prompt/domain"
	"lexora-backend/internal/prompt/usecase"

	"github.com/gin-gonic/gin"
)

type PromptHandler struct {
	promptUsecase usecase.PromptUsecase
}

func NewPromptHandler(promptUsecase usecase.PromptUsecase) *PromptHandler {
	return &PromptHandler{
		promptUsecase: promptUsecase,
	}
}

type createPromptRequest struct {
	Title      string `json:"title" binding:"required"`
	PromptText string `json:"promptText" binding:"required"`
}

func userFrom(c *gin.Context) (*authdomain.User, bool) {
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

// GET /api/prompts
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	user, ok := userFrom(c)
	if !ok {
		return
	}

	prompts, err := h.promptUsecase.List(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if prompts == nil {
		prompts = []*promptdomain.PromptTemplate{}
	}
	c.JSON(http.StatusOK, prompts)
}

// POST /api/prompts
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
	user, ok := userFrom(c)
	if !ok {
		return
	}

	var req createPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and promptText are required"})
		return
	}

	prompt, err := h.promptUsecase.Create(user.ID, req.Title, req.PromptText)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, promptdomain.ErrMissingFields) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, prompt)
}

// DELETE /api/prompts/:id
func (h *PromptHandler) DeletePrompt(c *gin.Context) {
	user, ok := userFrom(c)
	if !ok {
		return
	}

	if err := h.promptUsecase.Delete(c.Param("id"), user.ID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, promptdomain.ErrNotFoundOrForbidden) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "prompt deleted"})
}
