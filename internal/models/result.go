package models

import (
	"time"

	apperrors "github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/errors"
)

// ResultDetail is the per-question breakdown entry of a grading run, in the
// exam's stored question order.
type ResultDetail struct {
	QuestionID    string `json:"question_id"`
	StudentAnswer string `json:"student_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// Result is the computed outcome of grading one submission against its exam.
// A result is written exactly once and never mutated; grading the same
// submission again produces a new result with a new identifier.
type Result struct {
	ResultID       string         `json:"result_id"`
	SubmissionID   string         `json:"submission_id"`
	ExamID         string         `json:"exam_id"`
	StudentID      string         `json:"student_id"`
	Score          float64        `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	CorrectAnswers int            `json:"correct_answers"`
	WrongAnswers   int            `json:"wrong_answers"`
	GradedAt       time.Time      `json:"graded_at"`
	Details        []ResultDetail `json:"details"`
}

// Validate checks the score range and the counting invariants:
// correct + wrong == total, both within [0, total].
func (r *Result) Validate() error {
	if r.ResultID == "" {
		return apperrors.NewValidationError("result_id", "Mã kết quả không được để trống", r.ResultID)
	}
	if r.SubmissionID == "" {
		return apperrors.NewValidationError("submission_id", "Mã bài làm không được để trống", r.SubmissionID)
	}
	if r.ExamID == "" {
		return apperrors.NewValidationError("exam_id", "Mã đề thi không được để trống", r.ExamID)
	}
	if r.StudentID == "" {
		return apperrors.NewValidationError("student_id", "Mã học sinh không được để trống", r.StudentID)
	}
	if r.Score < 0 || r.Score > 10 {
		return apperrors.NewValidationError("score", "Điểm số phải nằm trong khoảng 0-10", r.Score)
	}
	if r.TotalQuestions <= 0 {
		return apperrors.NewValidationError("total_questions", "Tổng số câu hỏi phải lớn hơn 0", r.TotalQuestions)
	}
	if r.CorrectAnswers < 0 || r.CorrectAnswers > r.TotalQuestions {
		return apperrors.NewValidationError("correct_answers", "Số câu đúng không hợp lệ", r.CorrectAnswers)
	}
	if r.WrongAnswers < 0 || r.WrongAnswers > r.TotalQuestions {
		return apperrors.NewValidationError("wrong_answers", "Số câu sai không hợp lệ", r.WrongAnswers)
	}
	if r.CorrectAnswers+r.WrongAnswers != r.TotalQuestions {
		return apperrors.NewValidationError("total_questions",
			"Tổng số câu đúng và sai phải bằng tổng số câu hỏi", r.TotalQuestions)
	}
	return nil
}
