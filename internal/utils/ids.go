package utils

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Entity identifiers are type-prefixed: E for exams, S for submissions, R for
// results, each followed by 8 uppercase hex characters drawn from a random
// UUID. Question ids are ordinal within their exam: Q001, Q002, ...

func newPrefixedID(prefix string) string {
	u := uuid.New()
	return prefix + strings.ToUpper(hex.EncodeToString(u[:4]))
}

func NewExamID() string { return newPrefixedID("E") }

func NewSubmissionID() string { return newPrefixedID("S") }

func NewResultID() string { return newPrefixedID("R") }

// NewQuestionID returns the id for the next question given the current
// question count of the exam.
func NewQuestionID(currentCount int) string {
	return fmt.Sprintf("Q%03d", currentCount+1)
}
