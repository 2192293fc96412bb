package repository

import (
	"errors"
	"time"

	summarydomain "lexora-backend/internal/summary/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// summaryRepository implements SummaryRepository on GORM.
type summaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{
		db: db,
	}
}

func (r *summaryRepository) Create(summary *summarydomain.Summary) error {
	summary.ID = uuid.New().String()
	summary.CreatedAt = time.Now()
	return r.db.Create(summary).Error
}

func (r *summaryRepository) ListByOwner(ownerID string) ([]*summarydomain.Summary, error) {
	var summaries []*summarydomain.Summary
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *summaryRepository) GetByShareID(shareID string) (*summarydomain.Summary, error) {
	var summary summarydomain.Summary
	err := r.db.Where("share_id = ?", shareID).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) GetByIDForOwner(id, ownerID string) (*summarydomain.Summary, error) {
	var summary summarydomain.Summary
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) Rename(id, ownerID, newTitle string) (*summarydomain.Summary, error) {
	return r.updateOwned(id, ownerID, func(s *summarydomain.Summary) {
		s.Title = newTitle
	})
}

func (r *summaryRepository) SaveRefinedText(id, ownerID, newText string) (*summarydomain.Summary, error) {
	return r.updateOwned(id, ownerID, func(s *summarydomain.Summary) {
		s.SummaryText = newText
	})
}

// updateOwned loads the record under the ownership filter, applies the
// mutation and saves. A miss on either id or owner surfaces as the single
// conflated not-found-or-forbidden error.
func (r *summaryRepository) updateOwned(id, ownerID string, mutate func(*summarydomain.Summary)) (*summarydomain.Summary, error) {
	var summary summarydomain.Summary
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, summarydomain.ErrNotFoundOrForbidden
		}
		return nil, err
	}

	mutate(&summary)
	if err := r.db.Save(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}
