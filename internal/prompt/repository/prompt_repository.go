package repository

import (
	"time"

	promptdomain "lexora-backend/internal/prompt/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromptRepository defines persistence for prompt templates.
type PromptRepository interface {
	// ListVisible returns built-in defaults plus the owner's own templates,
	// defaults first.
	ListVisible(ownerID string) ([]*promptdomain.PromptTemplate, error)

	// Create persists a user-owned template.
	Create(template *promptdomain.PromptTemplate) error

	// Delete removes a template iff it is owned by ownerID. Defaults have
	// no owner and therefore never match.
	Delete(id, ownerID string) error

	// SeedDefaults inserts the built-in templates when none exist yet.
	SeedDefaults(defaults []*promptdomain.PromptTemplate) error
}

// promptRepository implements PromptRepository on GORM.
type promptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{
		db: db,
	}
}

func (r *promptRepository) ListVisible(ownerID string) ([]*promptdomain.PromptTemplate, error) {
	var templates []*promptdomain.PromptTemplate
	err := r.db.
		Where("owner_id IS NULL OR owner_id = ?", ownerID).
		Order("owner_id IS NULL DESC, created_at ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *promptRepository) Create(template *promptdomain.PromptTemplate) error {
	template.ID = uuid.New().String()
	template.CreatedAt = time.Now()
	return r.db.Create(template).Error
}

func (r *promptRepository) Delete(id, ownerID string) error {
	res := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&promptdomain.PromptTemplate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return promptdomain.ErrNotFoundOrForbidden
	}
	return nil
}

func (r *promptRepository) SeedDefaults(defaults []*promptdomain.PromptTemplate) error {
	var count int64
	if err := r.db.Model(&promptdomain.PromptTemplate{}).Where("owner_id IS NULL").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, tpl := range defaults {
		tpl.ID = uuid.New().String()
		tpl.CreatedAt = time.Now()
	}
	return r.db.Create(&defaults).Error
}
