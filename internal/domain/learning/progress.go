package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Progress is one user/question attempt outcome.
type Progress struct {
	ID          string     `gorm:"primaryKey;size:64" json:"_id"`
	UserID      string     `gorm:"column:user_id;not null;index;size:64" json:"userId"`
	QuestionID  string     `gorm:"column:question_id;not null;index;size:64" json:"questionId"`
	IsCorrect   bool       `gorm:"column:is_correct;not null;default:false" json:"isCorrect"`
	Status      string     `gorm:"column:status" json:"status,omitempty"`
	Attempts    int        `gorm:"column:attempts;not null;default:0" json:"attempts"`
	Points      int        `gorm:"column:points;not null;default:0" json:"points"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submittedAt,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updatedAt"`
}

func (Progress) TableName() string { return "progress" }

func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
