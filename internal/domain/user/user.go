package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User mirrors the platform's user document. JSON names follow the public API
// so rows can be fed to the dashboard engine unchanged.
type User struct {
	ID            string         `gorm:"primaryKey;size:64" json:"_id"`
	Username      string         `gorm:"uniqueIndex;not null;size:128" json:"username"`
	Email         string         `gorm:"column:email" json:"-"`
	Role          string         `gorm:"column:role;not null;default:'user'" json:"role"`
	CurrentStreak int            `gorm:"column:current_streak;not null;default:0" json:"currentStreak"`
	Badges        datatypes.JSON `gorm:"column:badges" json:"badges"`
	Certificates  datatypes.JSON `gorm:"column:certificates" json:"certificates"`
	Languages     datatypes.JSON `gorm:"column:languages" json:"languages"`

	CreatedAt time.Time      `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
