package dashboard

import (
	"context"
	"sort"
	"time"
)

func (a *aggregator) AdminDashboardStats(ctx context.Context) AdminStats {
	var out AdminStats
	err := a.run(ctx, "admin_stats", func(ctx context.Context) error {
		b, err := a.fetch(ctx, needUsers|needQuestions|needProgress|needLanguages, "")
		if err != nil {
			return err
		}
		midnight := StartOfDay(a.now(), a.loc)

		var admins, newToday int
		for _, m := range Records(b.users) {
			acct := ParseAccount(m, a.loc)
			if acct.IsAdmin() {
				admins++
			}
			if acct.HasCreate && !acct.CreatedAt.Before(midnight) {
				newToday++
			}
		}
		out = AdminStats{
			TotalUsers:     len(ExtractSequence(b.users)),
			ActiveToday:    activeSince(a.parseProgress(b.progress), midnight),
			TotalLanguages: len(ExtractSequence(b.languages)),
			TotalQuestions: len(ExtractSequence(b.questions)),
			TotalAdmins:    admins,
			NewUsersToday:  newToday,
		}
		return nil
	})
	if err != nil {
		return DefaultAdminStats()
	}
	return out
}

// activeSince counts distinct users whose latest event is at or after since.
func activeSince(records []Progress, since time.Time) int {
	latest := map[string]time.Time{}
	for _, p := range records {
		if p.User.ID == "" || !p.HasAt {
			continue
		}
		if cur, ok := latest[p.User.ID]; !ok || p.At.After(cur) {
			latest[p.User.ID] = p.At
		}
	}
	n := 0
	for _, t := range latest {
		if !t.Before(since) {
			n++
		}
	}
	return n
}

func (a *aggregator) LanguageDistribution(ctx context.Context) Distribution {
	var out Distribution
	err := a.run(ctx, "language_distribution", func(ctx context.Context) error {
		b, err := a.fetch(ctx, needQuestions|needLanguages, "")
		if err != nil {
			return err
		}
		out = distribution(parseQuestions(b.questions), parseLanguages(b.languages))
		return nil
	})
	if err != nil {
		return FallbackDistribution()
	}
	return out
}

// distribution counts questions per canonical language. Every listed language
// appears, zero if it has no questions. Ordered by count, then label.
func distribution(questions []Question, languages []LanguageEntry) Distribution {
	names := languageNames(languages)
	counts := map[string]int{}
	for _, l := range languages {
		if l.Name != "" {
			counts[CanonicalLanguage(l.Name)] += 0
		}
	}
	for _, q := range questions {
		counts[languageLabel(q.Language, names)]++
	}

	type pair struct {
		label string
		n     int
	}
	pairs := make([]pair, 0, len(counts))
	for label, n := range counts {
		pairs = append(pairs, pair{label, n})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].n != pairs[j].n {
			return pairs[i].n > pairs[j].n
		}
		return pairs[i].label < pairs[j].label
	})
	if len(pairs) > MaxDistribution {
		pairs = pairs[:MaxDistribution]
	}
	out := Distribution{Labels: make([]string, 0, len(pairs)), Data: make([]int, 0, len(pairs))}
	for _, p := range pairs {
		out.Labels = append(out.Labels, p.label)
		out.Data = append(out.Data, p.n)
	}
	return out
}

// languageNames maps language ids to their display names.
func languageNames(languages []LanguageEntry) map[string]string {
	names := make(map[string]string, len(languages))
	for _, l := range languages {
		if l.ID != "" && l.Name != "" {
			names[l.ID] = l.Name
		}
	}
	return names
}
