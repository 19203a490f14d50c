package dashboard

import (
	"testing"
	"time"
)

func TestIsSolvedSignalsAndReferenceShapes(t *testing.T) {
	cases := []struct {
		name string
		rec  map[string]any
		user string
		want bool
	}{
		{"isCorrect bare id", map[string]any{"user": "u1", "isCorrect": true}, "u1", true},
		{"status nested _id", map[string]any{"user": map[string]any{"_id": "u1"}, "status": "solved"}, "u1", true},
		{"solved flag flattened", map[string]any{"userId": "u1", "solved": true}, "u1", true},
		{"status case", map[string]any{"user": map[string]any{"id": "u1"}, "status": "Solved"}, "u1", true},
		{"numeric id", map[string]any{"user": 42.0, "isCorrect": true}, "42", true},
		{"wrong user", map[string]any{"user": "u2", "isCorrect": true}, "u1", false},
		{"not correct", map[string]any{"user": "u1", "status": "attempted"}, "u1", false},
		{"empty user id", map[string]any{"user": "", "isCorrect": true}, "", false},
		{"truthy string is not true", map[string]any{"user": "u1", "isCorrect": "true"}, "u1", false},
	}
	for _, tc := range cases {
		p := ParseProgress(tc.rec, time.UTC)
		if got := IsSolved(p, tc.user); got != tc.want {
			t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
		}
	}
}

func TestSolvedByKeepsOrderAndDoesNotMutate(t *testing.T) {
	in := []Progress{
		{User: Ref{ID: "u1"}, IsCorrect: true, Question: Ref{ID: "a"}},
		{User: Ref{ID: "u2"}, IsCorrect: true, Question: Ref{ID: "b"}},
		{User: Ref{ID: "u1"}, Solved: true, Question: Ref{ID: "c"}},
	}
	got := SolvedBy(in, "u1")
	if len(got) != 2 || got[0].Question.ID != "a" || got[1].Question.ID != "c" {
		t.Fatalf("unexpected solved set: %+v", got)
	}
	if in[1].Question.ID != "b" || len(in) != 3 {
		t.Fatalf("input mutated: %+v", in)
	}
}
