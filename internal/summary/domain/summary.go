package domain

import "time"

// Summary is the persisted result of one summarization request.
// Title and SummaryText are the only fields mutable after creation, and
// only by the owner.
type Summary struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	OwnerID         string    `json:"owner_id" gorm:"index;not null"`
	Title           string    `json:"title"`
	OriginalContent string    `json:"originalContent" gorm:"type:text"`
	Prompt          string    `json:"prompt" gorm:"type:text"`
	SummaryText     string    `json:"summaryText" gorm:"type:text"`
	ShareID         string    `json:"shareId" gorm:"uniqueIndex;not null"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Summary) TableName() string {
	return "summaries"
}
