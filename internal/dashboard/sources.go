package dashboard

import (
	"context"
	"time"
)

// The sources return decoded JSON as-is (maps, slices, strings, float64, bool,
// nil). Envelope handling and field normalization happen in this package.

type UserSource interface {
	ListUsers(ctx context.Context) (any, error)
	GetProfile(ctx context.Context, username string) (any, error)
}

type QuestionSource interface {
	ListQuestions(ctx context.Context) (any, error)
}

type ProgressSource interface {
	ListProgress(ctx context.Context) (any, error)
}

type LanguageSource interface {
	ListLanguages(ctx context.Context) (any, error)
}

// Observer receives per-aggregate timings. A nil Observer is allowed.
type Observer interface {
	ObserveAggregate(view, outcome string, dur time.Duration)
	IncAggregateFallback(view string)
}
