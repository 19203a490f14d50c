package db

import (
	types "github.com/yungbote/codequest-backend/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrateAll creates the dashboard tables. Used for local sqlite databases
// and tests; the platform owns the production schema.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.Language{},
		&types.Question{},
		&types.Progress{},
	)
}
