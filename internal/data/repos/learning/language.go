package learning

import (
	"context"

	types "github.com/yungbote/codequest-backend/internal/domain"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type LanguageRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Language, error)
}

type languageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLanguageRepo(db *gorm.DB, baseLog *logger.Logger) LanguageRepo {
	return &languageRepo{db: db, log: baseLog.With("repo", "LanguageRepo")}
}

func (r *languageRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Language, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Language
	if err := transaction.WithContext(ctx).Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
