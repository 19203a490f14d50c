package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/codequest-backend/internal/platform/logger"
)

// Aggregator derives display-ready dashboard statistics. None of the data
// operations fail: on any fetch or derivation error they log and return the
// view's fixed default.
type Aggregator interface {
	UserDashboardStats(ctx context.Context, userID, username string) UserStats
	RecentQuestions(ctx context.Context, userID string) []RecentQuestion
	UserAchievements(ctx context.Context, username string) Achievements
	AdminDashboardStats(ctx context.Context) AdminStats
	LanguageDistribution(ctx context.Context) Distribution
	// SolvedQuestions is RecentQuestions without the cut-off.
	SolvedQuestions(ctx context.Context, userID string) []RecentQuestion
}

type Deps struct {
	Log       *logger.Logger
	Users     UserSource
	Questions QuestionSource
	Progress  ProgressSource
	Languages LanguageSource
	// Now defaults to time.Now.
	Now func() time.Time
	// Location decides calendar days for streaks and "today"; defaults to time.Local.
	Location *time.Location
	Observer Observer
}

type aggregator struct {
	log       *logger.Logger
	users     UserSource
	questions QuestionSource
	progress  ProgressSource
	languages LanguageSource
	now       func() time.Time
	loc       *time.Location
	obs       Observer
	tracer    trace.Tracer
}

var errNoSource = errors.New("source not configured")

func New(d Deps) Aggregator {
	a := &aggregator{
		log:       d.Log.With("service", "DashboardAggregator"),
		users:     d.Users,
		questions: d.Questions,
		progress:  d.Progress,
		languages: d.Languages,
		now:       d.Now,
		loc:       d.Location,
		obs:       d.Observer,
		tracer:    otel.Tracer("codequest/dashboard"),
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.loc == nil {
		a.loc = time.Local
	}
	return a
}

// run executes one aggregate inside a span, converting panics into errors and
// reporting the outcome.
func (a *aggregator) run(ctx context.Context, view string, fn func(ctx context.Context) error) (err error) {
	ctx, span := a.tracer.Start(ctx, "dashboard."+view, trace.WithAttributes(attribute.String("dashboard.view", view)))
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		outcome := "ok"
		if err != nil {
			outcome = "fallback"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			a.log.Error("Dashboard aggregate failed, serving default", "view", view, "error", err)
			if a.obs != nil {
				a.obs.IncAggregateFallback(view)
			}
		}
		if a.obs != nil {
			a.obs.ObserveAggregate(view, outcome, time.Since(start))
		}
		span.End()
	}()
	return fn(ctx)
}

type need uint8

const (
	needProfile need = 1 << iota
	needUsers
	needQuestions
	needProgress
	needLanguages
)

// bundle holds raw upstream responses; each field is written by exactly one
// fetch goroutine and read after Wait.
type bundle struct {
	profile   any
	users     any
	questions any
	progress  any
	languages any
}

// fetch issues the requested calls concurrently. The first failure cancels the
// rest and fails the whole fetch.
func (a *aggregator) fetch(ctx context.Context, n need, username string) (bundle, error) {
	var b bundle
	g, gctx := errgroup.WithContext(ctx)
	spawn := func(name string, call func(context.Context) (any, error), dst *any) {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s: panic: %v", name, r)
				}
			}()
			v, err := call(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = v
			return nil
		})
	}
	if n&needProfile != 0 {
		spawn("get profile", func(ctx context.Context) (any, error) {
			if a.users == nil {
				return nil, errNoSource
			}
			return a.users.GetProfile(ctx, username)
		}, &b.profile)
	}
	if n&needUsers != 0 {
		spawn("list users", func(ctx context.Context) (any, error) {
			if a.users == nil {
				return nil, errNoSource
			}
			return a.users.ListUsers(ctx)
		}, &b.users)
	}
	if n&needQuestions != 0 {
		spawn("list questions", func(ctx context.Context) (any, error) {
			if a.questions == nil {
				return nil, errNoSource
			}
			return a.questions.ListQuestions(ctx)
		}, &b.questions)
	}
	if n&needProgress != 0 {
		spawn("list progress", func(ctx context.Context) (any, error) {
			if a.progress == nil {
				return nil, errNoSource
			}
			return a.progress.ListProgress(ctx)
		}, &b.progress)
	}
	if n&needLanguages != 0 {
		spawn("list languages", func(ctx context.Context) (any, error) {
			if a.languages == nil {
				return nil, errNoSource
			}
			return a.languages.ListLanguages(ctx)
		}, &b.languages)
	}
	if err := g.Wait(); err != nil {
		return bundle{}, err
	}
	return b, nil
}

func (a *aggregator) parseProgress(raw any) []Progress {
	recs := Records(raw)
	out := make([]Progress, 0, len(recs))
	for _, m := range recs {
		out = append(out, ParseProgress(m, a.loc))
	}
	return out
}

func parseQuestions(raw any) []Question {
	recs := Records(raw)
	out := make([]Question, 0, len(recs))
	for _, m := range recs {
		out = append(out, ParseQuestion(m))
	}
	return out
}

func parseLanguages(raw any) []LanguageEntry {
	recs := Records(raw)
	out := make([]LanguageEntry, 0, len(recs))
	for _, m := range recs {
		out = append(out, ParseLanguage(m))
	}
	return out
}
