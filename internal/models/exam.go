package models

import (
	"fmt"
	"time"

	apperrors "github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/errors"
)

// Exam is a named, teacher-owned collection of multiple-choice questions.
// Questions are appended in call order and never removed; insertion order is
// the display and grading order.
type Exam struct {
	ExamID    string     `json:"exam_id"`
	Title     string     `json:"title"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	Questions []Question `json:"questions"`
}

// NewExam builds an exam with no questions yet. The result does not pass
// Validate until at least one question is added.
func NewExam(examID, title, createdBy string) *Exam {
	return &Exam{
		ExamID:    examID,
		Title:     title,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
		Questions: []Question{},
	}
}

// AddQuestion validates the question, rejects a duplicate question_id, and
// appends it at the end.
func (e *Exam) AddQuestion(q Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	for _, existing := range e.Questions {
		if existing.QuestionID == q.QuestionID {
			return apperrors.NewValidationError("question_id",
				fmt.Sprintf("Câu hỏi với mã %s đã tồn tại", q.QuestionID), q.QuestionID)
		}
	}
	e.Questions = append(e.Questions, q)
	return nil
}

// Validate checks the exam-level rules: non-empty identifiers and title, at
// least one question, and every question individually valid.
func (e *Exam) Validate() error {
	if e.ExamID == "" {
		return apperrors.NewValidationError("exam_id", "Mã đề thi không được để trống", e.ExamID)
	}
	if e.Title == "" {
		return apperrors.NewValidationError("title", "Tên đề thi không được để trống", e.Title)
	}
	if e.CreatedBy == "" {
		return apperrors.NewValidationError("created_by", "Mã giáo viên không được để trống", e.CreatedBy)
	}
	if len(e.Questions) == 0 {
		return apperrors.NewValidationError("questions", "Đề thi phải có ít nhất một câu hỏi", nil)
	}
	seen := make(map[string]bool, len(e.Questions))
	for i := range e.Questions {
		q := &e.Questions[i]
		if err := q.Validate(); err != nil {
			return apperrors.NewValidationError("questions",
				fmt.Sprintf("Câu hỏi %s: %s", q.QuestionID, err.Error()), q.QuestionID)
		}
		if seen[q.QuestionID] {
			return apperrors.NewValidationError("questions",
				fmt.Sprintf("Câu hỏi với mã %s đã tồn tại", q.QuestionID), q.QuestionID)
		}
		seen[q.QuestionID] = true
	}
	return nil
}

// QuestionCount returns the number of questions currently in the exam.
func (e *Exam) QuestionCount() int {
	return len(e.Questions)
}
