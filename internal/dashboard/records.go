package dashboard

import (
	"strings"
	"time"
)

// Ref is a normalized reference to another record. Name is only set when the
// raw reference carried a display name.
type Ref struct {
	ID   string
	Name string
}

// LanguageRef is a question's language reference. Raw holds the bare string
// form, which may be a language name or a language id.
type LanguageRef struct {
	ID   string
	Name string
	Raw  string
}

func (r LanguageRef) IsZero() bool { return r.ID == "" && r.Name == "" && r.Raw == "" }

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(v any) Difficulty {
	s, _ := v.(string)
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	default:
		return DifficultyMedium
	}
}

type Question struct {
	ID         string
	Title      string
	Difficulty Difficulty
	Language   LanguageRef
}

type Progress struct {
	User     Ref
	Question Ref
	// Embedded is whatever question data travels with the record itself,
	// either nested under "question" or flattened onto the record.
	Embedded  Question
	IsCorrect bool
	Status    string
	Solved    bool
	Attempts  int
	Points    int
	At        time.Time
	HasAt     bool
}

// Profile is the per-user view used by the user dashboard.
type Profile struct {
	ID            string
	Username      string
	CurrentStreak int
	Badges        int
	Certificates  int
	Languages     int
}

// Account is the per-user view used by the admin dashboard.
type Account struct {
	ID        string
	Username  string
	Roles     []string
	CreatedAt time.Time
	HasCreate bool
}

func (a Account) IsAdmin() bool {
	for _, r := range a.Roles {
		if strings.Contains(strings.ToLower(r), "admin") {
			return true
		}
	}
	return false
}

type LanguageEntry struct {
	ID   string
	Name string
}

func parseUserRef(v any) Ref {
	if m, ok := v.(map[string]any); ok {
		return Ref{ID: idString(m), Name: firstString(m, "username", "name")}
	}
	return Ref{ID: idString(v)}
}

func parseLanguageRef(v any) LanguageRef {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return LanguageRef{Raw: s}
	case map[string]any:
		return LanguageRef{ID: idString(t), Name: firstString(t, "name", "title", "slug")}
	default:
		return LanguageRef{}
	}
}

func ParseQuestion(m map[string]any) Question {
	if m == nil {
		return Question{Difficulty: DifficultyMedium}
	}
	lang := parseLanguageRef(m["language"])
	if lang.IsZero() {
		lang = parseLanguageRef(m["languageId"])
	}
	return Question{
		ID:         idString(m),
		Title:      firstString(m, "title", "name"),
		Difficulty: ParseDifficulty(m["difficulty"]),
		Language:   lang,
	}
}

// progressTimeKeys are tried in order; the first parseable one is the event time.
var progressTimeKeys = []string{"updatedAt", "createdAt", "submittedAt"}

func ParseProgress(m map[string]any, loc *time.Location) Progress {
	p := Progress{
		IsCorrect: isTrue(m["isCorrect"]),
		Solved:    isTrue(m["solved"]),
		Attempts:  count(m["attempts"]),
		Points:    count(m["points"]),
	}
	p.Status, _ = m["status"].(string)

	for _, key := range []string{"user", "userId", "user_id"} {
		if ref := parseUserRef(m[key]); ref.ID != "" {
			p.User = ref
			break
		}
	}

	if nested, ok := m["question"].(map[string]any); ok {
		p.Embedded = ParseQuestion(nested)
		p.Question = Ref{ID: p.Embedded.ID, Name: p.Embedded.Title}
	} else {
		p.Embedded = ParseQuestion(map[string]any{
			"title":      m["questionTitle"],
			"difficulty": m["difficulty"],
			"language":   m["language"],
		})
		if t := firstString(m, "title"); t != "" && p.Embedded.Title == "" {
			p.Embedded.Title = t
		}
		for _, key := range []string{"question", "questionId", "question_id"} {
			if id := idString(m[key]); id != "" {
				p.Question = Ref{ID: id}
				break
			}
		}
		p.Embedded.ID = p.Question.ID
	}

	for _, key := range progressTimeKeys {
		if ts, ok := ParseTime(m[key], loc); ok {
			p.At, p.HasAt = ts, true
			break
		}
	}
	return p
}

func ParseProfile(v any) Profile {
	m, _ := ExtractItem(v).(map[string]any)
	if m == nil {
		return Profile{}
	}
	if inner, ok := m["user"].(map[string]any); ok && m["username"] == nil {
		m = inner
	}
	return Profile{
		ID:            idString(m),
		Username:      firstString(m, "username"),
		CurrentStreak: count(m["currentStreak"]),
		Badges:        seqLen(m["badges"]),
		Certificates:  seqLen(m["certificates"]),
		Languages:     seqLen(m["languages"]),
	}
}

func ParseAccount(m map[string]any, loc *time.Location) Account {
	a := Account{ID: idString(m), Username: firstString(m, "username")}
	a.Roles = append(stringsOf(m["role"]), stringsOf(m["roles"])...)
	for _, key := range []string{"createdAt", "created_at", "joinedAt"} {
		if ts, ok := ParseTime(m[key], loc); ok {
			a.CreatedAt, a.HasCreate = ts, true
			break
		}
	}
	return a
}

func ParseLanguage(m map[string]any) LanguageEntry {
	return LanguageEntry{ID: idString(m), Name: firstString(m, "name", "title", "slug")}
}
