package learning

import (
	"context"

	types "github.com/yungbote/codequest-backend/internal/domain"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type QuestionRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Question, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Question
	if err := transaction.WithContext(ctx).Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
