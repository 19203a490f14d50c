package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID         string `gorm:"primaryKey;size:64" json:"_id"`
	Title      string `gorm:"column:title;not null" json:"title"`
	Difficulty string `gorm:"column:difficulty;not null;default:'medium'" json:"difficulty"`
	// LanguageID references Language.ID.
	LanguageID string `gorm:"column:language_id;index;size:64" json:"languageId"`

	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Question) TableName() string { return "questions" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
