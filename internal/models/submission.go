package models

import (
	"fmt"
	"time"

	apperrors "github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/errors"
)

// Submission is one student's set of answers for one exam. It is created once
// per attempt and not updated afterwards in the normal flow. Answers map
// question_id to a single choice letter.
//
// No referential check is made against the exam at creation time; a submission
// may reference an exam that has since been deleted, in which case grading
// fails with "not found" at the exam lookup.
type Submission struct {
	SubmissionID string            `json:"submission_id"`
	ExamID       string            `json:"exam_id"`
	StudentID    string            `json:"student_id"`
	SubmittedAt  time.Time         `json:"submitted_at"`
	Answers      map[string]string `json:"answers"`
}

// NewSubmission builds a submission. A nil answers map is replaced by an empty
// one so the stored record always carries the field.
func NewSubmission(submissionID, examID, studentID string, answers map[string]string) *Submission {
	if answers == nil {
		answers = map[string]string{}
	}
	return &Submission{
		SubmissionID: submissionID,
		ExamID:       examID,
		StudentID:    studentID,
		SubmittedAt:  time.Now().UTC(),
		Answers:      answers,
	}
}

// SaveAnswer records an answer for a question, rejecting anything that is not
// a bare choice letter. Bulk answers supplied at construction bypass this
// check and are normalized at grading time instead.
func (s *Submission) SaveAnswer(questionID, answer string) error {
	if !IsValidChoiceLabel(answer) {
		return apperrors.NewValidationError("answer", "Đáp án phải là A, B, C hoặc D", answer)
	}
	if s.Answers == nil {
		s.Answers = map[string]string{}
	}
	s.Answers[questionID] = answer
	return nil
}

// Validate checks identifiers and that every present answer is a choice letter.
func (s *Submission) Validate() error {
	if s.SubmissionID == "" {
		return apperrors.NewValidationError("submission_id", "Mã bài làm không được để trống", s.SubmissionID)
	}
	if s.ExamID == "" {
		return apperrors.NewValidationError("exam_id", "Mã đề thi không được để trống", s.ExamID)
	}
	if s.StudentID == "" {
		return apperrors.NewValidationError("student_id", "Mã học sinh không được để trống", s.StudentID)
	}
	for questionID, answer := range s.Answers {
		if !IsValidChoiceLabel(answer) {
			return apperrors.NewValidationError("answers",
				fmt.Sprintf("Câu trả lời cho câu %s không hợp lệ", questionID), answer)
		}
	}
	return nil
}
