package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"
)

func (a *aggregator) UserDashboardStats(ctx context.Context, userID, username string) UserStats {
	var out UserStats
	err := a.run(ctx, "user_stats", func(ctx context.Context) error {
		b, err := a.fetch(ctx, needProfile|needProgress|needQuestions|needLanguages, username)
		if err != nil {
			return err
		}
		profile := ParseProfile(b.profile)
		if strings.TrimSpace(userID) == "" {
			userID = profile.ID
		}
		solved := SolvedBy(a.parseProgress(b.progress), userID)

		streak := profile.CurrentStreak
		if streak <= 0 {
			streak = CalculateStreak(solved, a.loc)
		}
		out = UserStats{
			CurrentStreak:     FormatStreak(streak),
			TotalLanguages:    profile.Certificates,
			AllLanguagesCount: len(ExtractSequence(b.languages)),
			TotalQuestions:    len(ExtractSequence(b.questions)),
			SolvedQuestions:   len(solved),
		}
		return nil
	})
	if err != nil {
		return DefaultUserStats()
	}
	return out
}

func (a *aggregator) RecentQuestions(ctx context.Context, userID string) []RecentQuestion {
	return a.solvedQuestions(ctx, "recent_questions", userID, MaxRecentQuestions)
}

func (a *aggregator) SolvedQuestions(ctx context.Context, userID string) []RecentQuestion {
	return a.solvedQuestions(ctx, "solved_questions", userID, 0)
}

// solvedQuestions lists the user's solved records newest first, keeping fetch
// order among equal times. limit <= 0 means no cut-off.
func (a *aggregator) solvedQuestions(ctx context.Context, view, userID string, limit int) []RecentQuestion {
	var out []RecentQuestion
	err := a.run(ctx, view, func(ctx context.Context) error {
		b, err := a.fetch(ctx, needProgress|needQuestions|needLanguages, "")
		if err != nil {
			return err
		}
		solved := SolvedBy(a.parseProgress(b.progress), userID)
		sort.SliceStable(solved, func(i, j int) bool { return solved[i].At.After(solved[j].At) })
		if limit > 0 && len(solved) > limit {
			solved = solved[:limit]
		}

		byID := map[string]Question{}
		for _, q := range parseQuestions(b.questions) {
			if q.ID != "" {
				byID[q.ID] = q
			}
		}
		names := languageNames(parseLanguages(b.languages))
		now := a.now()
		out = make([]RecentQuestion, 0, len(solved))
		for _, p := range solved {
			out = append(out, displayQuestion(p, byID, names, now))
		}
		return nil
	})
	if err != nil {
		return []RecentQuestion{}
	}
	return out
}

func displayQuestion(p Progress, byID map[string]Question, names map[string]string, now time.Time) RecentQuestion {
	q, ok := byID[p.Question.ID]
	if !ok {
		q = p.Embedded
	}
	title := q.Title
	if title == "" {
		title = p.Embedded.Title
	}
	if title == "" {
		title = UntitledQuestion
	}
	lang := q.Language
	if lang.IsZero() {
		lang = p.Embedded.Language
	}
	difficulty := q.Difficulty
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	var at any
	if p.HasAt {
		at = p.At
	}
	return RecentQuestion{
		Title:      title,
		Time:       FormatRelative(at, now),
		Difficulty: string(difficulty),
		Language:   languageLabel(lang, names),
	}
}

// languageLabel resolves a question's language to its canonical display name.
// A bare string is first looked up as a language id in names.
func languageLabel(ref LanguageRef, names map[string]string) string {
	if ref.Name != "" {
		return CanonicalLanguage(ref.Name)
	}
	if ref.ID != "" {
		if n, ok := names[ref.ID]; ok {
			return CanonicalLanguage(n)
		}
	}
	if ref.Raw != "" {
		if n, ok := names[ref.Raw]; ok {
			return CanonicalLanguage(n)
		}
		return CanonicalLanguage(ref.Raw)
	}
	return UnknownLanguage
}

func (a *aggregator) UserAchievements(ctx context.Context, username string) Achievements {
	var out Achievements
	err := a.run(ctx, "achievements", func(ctx context.Context) error {
		b, err := a.fetch(ctx, needProfile, username)
		if err != nil {
			return err
		}
		profile := ParseProfile(b.profile)
		out = Achievements{BadgesEarned: profile.Badges, Certificates: profile.Certificates}
		return nil
	})
	if err != nil {
		return DefaultAchievements()
	}
	return out
}
