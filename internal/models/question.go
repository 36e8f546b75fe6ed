package models

import (
	apperrors "github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/errors"
)

// ChoiceLabel is one of the four fixed answer labels of a multiple-choice question.
type ChoiceLabel string

const (
	ChoiceA ChoiceLabel = "A"
	ChoiceB ChoiceLabel = "B"
	ChoiceC ChoiceLabel = "C"
	ChoiceD ChoiceLabel = "D"
)

// ChoiceLabels lists the labels in display order.
var ChoiceLabels = []ChoiceLabel{ChoiceA, ChoiceB, ChoiceC, ChoiceD}

// IsValidChoiceLabel reports whether s is exactly one of A, B, C, D.
func IsValidChoiceLabel(s string) bool {
	switch ChoiceLabel(s) {
	case ChoiceA, ChoiceB, ChoiceC, ChoiceD:
		return true
	}
	return false
}

// Choices holds the four option texts of a question. The fixed slots make the
// "exactly A, B, C, D" rule a property of the type instead of a runtime check
// on map keys.
type Choices struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Get returns the option text for a label.
func (c Choices) Get(label ChoiceLabel) string {
	switch label {
	case ChoiceA:
		return c.A
	case ChoiceB:
		return c.B
	case ChoiceC:
		return c.C
	case ChoiceD:
		return c.D
	}
	return ""
}

// Question is one four-choice item with exactly one correct label.
// Immutable once validated; owned exclusively by its parent Exam.
type Question struct {
	QuestionID    string      `json:"question_id" validate:"required"`
	Content       string      `json:"content" validate:"required"`
	Choices       Choices     `json:"choices"`
	CorrectAnswer ChoiceLabel `json:"correct_answer" validate:"required,choice_label"`
}

// Validate checks structural validity. Malformed data is reported as a
// ValidationError with a user-facing Vietnamese message, never a panic.
func (q *Question) Validate() error {
	if q.QuestionID == "" {
		return apperrors.NewValidationError("question_id", "Mã câu hỏi không được để trống", q.QuestionID)
	}
	if q.Content == "" {
		return apperrors.NewValidationError("content", "Nội dung câu hỏi không được để trống", q.Content)
	}
	for _, label := range ChoiceLabels {
		if q.Choices.Get(label) == "" {
			return apperrors.NewValidationError("choices", "Lựa chọn "+string(label)+" không được để trống", nil)
		}
	}
	if !IsValidChoiceLabel(string(q.CorrectAnswer)) {
		return apperrors.NewValidationError("correct_answer", "Đáp án đúng phải là A, B, C hoặc D", q.CorrectAnswer)
	}
	return nil
}
