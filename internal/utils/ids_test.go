package utils

import (
	"regexp"
	"testing"
)

func TestPrefixedIDs(t *testing.T) {
	cases := []struct {
		name    string
		newID   func() string
		pattern string
	}{
		{"exam", NewExamID, `^E[0-9A-F]{8}$`},
		{"submission", NewSubmissionID, `^S[0-9A-F]{8}$`},
		{"result", NewResultID, `^R[0-9A-F]{8}$`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			re := regexp.MustCompile(tc.pattern)
			id := tc.newID()
			if !re.MatchString(id) {
				t.Errorf("Expected id matching %s, got %q", tc.pattern, id)
			}
			if tc.newID() == id {
				t.Errorf("Expected ids to be random, got %q twice", id)
			}
		})
	}
}

func TestNewQuestionID(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, "Q001"},
		{1, "Q002"},
		{9, "Q010"},
		{99, "Q100"},
		{999, "Q1000"},
	}
	for _, tc := range cases {
		if got := NewQuestionID(tc.count); got != tc.want {
			t.Errorf("NewQuestionID(%d) = %q, want %q", tc.count, got, tc.want)
		}
	}
}
