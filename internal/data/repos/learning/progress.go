package learning

import (
	"context"

	types "github.com/yungbote/codequest-backend/internal/domain"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ProgressRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Progress, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

// ListAll returns every record in insertion order; callers rely on that order
// to break ties between equal timestamps.
func (r *progressRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Progress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Progress
	if err := transaction.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
