package testutil

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/codequest-backend/internal/data/db"
	types "github.com/yungbote/codequest-backend/internal/domain"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a migrated database for one test: Postgres when TEST_POSTGRES_DSN
// is set, otherwise a private in-memory sqlite database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	var dialector gorm.Dialector
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username, role string, createdAt time.Time) *types.User {
	tb.Helper()
	u := &types.User{
		Username:     username,
		Role:         role,
		Badges:       datatypes.JSON([]byte(`["first-solve"]`)),
		Certificates: datatypes.JSON([]byte(`[]`)),
		Languages:    datatypes.JSON([]byte(`[]`)),
		CreatedAt:    createdAt,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedLanguage(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Language {
	tb.Helper()
	l := &types.Language{Name: name}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed language: %v", err)
	}
	return l
}

func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, title, difficulty, languageID string) *types.Question {
	tb.Helper()
	q := &types.Question{Title: title, Difficulty: difficulty, LanguageID: languageID}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

func SeedProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, questionID string, correct bool, at time.Time) *types.Progress {
	tb.Helper()
	p := &types.Progress{
		UserID:     userID,
		QuestionID: questionID,
		IsCorrect:  correct,
		Attempts:   1,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed progress: %v", err)
	}
	return p
}
