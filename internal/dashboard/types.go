package dashboard

// UserStats is the user dashboard summary. TotalLanguages counts earned
// certificates, not distinct languages attempted.
type UserStats struct {
	CurrentStreak     string `json:"currentStreak"`
	TotalLanguages    int    `json:"totalLanguages"`
	AllLanguagesCount int    `json:"allLanguagesCount"`
	TotalQuestions    int    `json:"totalQuestions"`
	SolvedQuestions   int    `json:"solvedQuestions"`
}

type RecentQuestion struct {
	Title      string `json:"title"`
	Time       string `json:"time"`
	Difficulty string `json:"difficulty"`
	Language   string `json:"language"`
}

type Achievements struct {
	BadgesEarned int `json:"badgesEarned"`
	Certificates int `json:"certificates"`
}

type AdminStats struct {
	TotalUsers     int `json:"totalUsers"`
	ActiveToday    int `json:"activeToday"`
	TotalLanguages int `json:"totalLanguages"`
	TotalQuestions int `json:"totalQuestions"`
	TotalAdmins    int `json:"totalAdmins"`
	NewUsersToday  int `json:"newUsersToday"`
}

// Distribution is chart data; Labels and Data are parallel.
type Distribution struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

const (
	MaxRecentQuestions = 3
	MaxDistribution    = 10
	UntitledQuestion   = "Untitled Question"
)

func DefaultUserStats() UserStats {
	return UserStats{CurrentStreak: FormatStreak(0)}
}

func DefaultAchievements() Achievements { return Achievements{} }

func DefaultAdminStats() AdminStats { return AdminStats{} }

// FallbackDistribution is served when the distribution cannot be computed so
// the chart is never blank.
func FallbackDistribution() Distribution {
	return Distribution{
		Labels: []string{"JavaScript", "Python", "Java", "C++", "Go"},
		Data:   []int{45, 38, 25, 18, 12},
	}
}
