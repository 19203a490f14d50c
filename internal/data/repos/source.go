package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/codequest-backend/internal/platform/logger"
)

// Source serves the dashboard collections straight from the database. Rows are
// re-encoded through their JSON form so the dashboard sees the same shapes the
// REST API returns.
type Source struct {
	users     UserRepo
	questions QuestionRepo
	progress  ProgressRepo
	languages LanguageRepo
}

func NewSource(db *gorm.DB, baseLog *logger.Logger) *Source {
	return &Source{
		users:     NewUserRepo(db, baseLog),
		questions: NewQuestionRepo(db, baseLog),
		progress:  NewProgressRepo(db, baseLog),
		languages: NewLanguageRepo(db, baseLog),
	}
}

func (s *Source) ListUsers(ctx context.Context) (any, error) {
	rows, err := s.users.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return asJSON(rows)
}

func (s *Source) GetProfile(ctx context.Context, username string) (any, error) {
	row, err := s.users.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("get profile %q: %w", username, err)
	}
	return asJSON(row)
}

func (s *Source) ListQuestions(ctx context.Context) (any, error) {
	rows, err := s.questions.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return asJSON(rows)
}

func (s *Source) ListProgress(ctx context.Context) (any, error) {
	rows, err := s.progress.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return asJSON(rows)
}

func (s *Source) ListLanguages(ctx context.Context) (any, error) {
	rows, err := s.languages.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return asJSON(rows)
}

func asJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode rows: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return out, nil
}
