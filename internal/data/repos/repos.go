package repos

import (
	"github.com/yungbote/codequest-backend/internal/data/repos/learning"
	"github.com/yungbote/codequest-backend/internal/data/repos/user"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo

type QuestionRepo = learning.QuestionRepo
type ProgressRepo = learning.ProgressRepo
type LanguageRepo = learning.LanguageRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return learning.NewQuestionRepo(db, baseLog)
}
func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return learning.NewProgressRepo(db, baseLog)
}
func NewLanguageRepo(db *gorm.DB, baseLog *logger.Logger) LanguageRepo {
	return learning.NewLanguageRepo(db, baseLog)
}
