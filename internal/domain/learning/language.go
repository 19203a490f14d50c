package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Language struct {
	ID          string `gorm:"primaryKey;size:64" json:"_id"`
	Name        string `gorm:"column:name;not null;uniqueIndex;size:64" json:"name"`
	Description string `gorm:"column:description" json:"description,omitempty"`
	Icon        string `gorm:"column:icon" json:"icon,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Language) TableName() string { return "languages" }

func (l *Language) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
