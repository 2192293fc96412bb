package domain

import (
	"errors"
	"time"
)

// PromptTemplate is a reusable summarization instruction. A nil OwnerID
// marks a built-in default: visible to everyone, deletable by no one.
type PromptTemplate struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	OwnerID    *string   `json:"owner_id,omitempty" gorm:"index"`
	Title      string    `json:"title"`
	PromptText string    `json:"promptText" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (PromptTemplate) TableName() string {
	return "prompt_templates"
}

// IsDefault reports whether the template is a built-in default.
func (p *PromptTemplate) IsDefault() bool {
	return p.OwnerID == nil
}

var (
	ErrMissingFields       = errors.New("title and promptText are required")
	ErrNotFoundOrForbidden = errors.New("prompt not found or you do not have permission to delete it")
)
