package dashboard

import "strings"

// Correct reports whether the record signals a correct answer through any of
// isCorrect, status == "solved" or solved.
func (p Progress) Correct() bool {
	return p.IsCorrect || p.Solved || strings.EqualFold(strings.TrimSpace(p.Status), "solved")
}

// IsSolved is the one definition of "this user solved this record". Every
// aggregate filters through it.
func IsSolved(p Progress, userID string) bool {
	userID = strings.TrimSpace(userID)
	if userID == "" || p.User.ID == "" {
		return false
	}
	return p.User.ID == userID && p.Correct()
}

// SolvedBy returns the records solved by userID, preserving input order.
func SolvedBy(records []Progress, userID string) []Progress {
	out := make([]Progress, 0, len(records))
	for _, p := range records {
		if IsSolved(p, userID) {
			out = append(out, p)
		}
	}
	return out
}
