package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/events"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
)

// fourQuestionExam seeds the sample exam whose answer key is B, C, C, C.
func fourQuestionExam(t *testing.T, sm ServiceManager) *models.Exam {
	t.Helper()
	ctx := context.Background()
	exam := mustCreateExam(t, sm)

	questions := []AddQuestionRequest{
		{Content: "1 + 1 = ?", Choices: models.Choices{A: "1", B: "2", C: "3", D: "4"}, CorrectAnswer: "B"},
		{Content: "2 + 2 = ?", Choices: models.Choices{A: "2", B: "3", C: "4", D: "5"}, CorrectAnswer: "C"},
		{Content: "3 + 3 = ?", Choices: models.Choices{A: "4", B: "5", C: "6", D: "7"}, CorrectAnswer: "C"},
		{Content: "4 + 4 = ?", Choices: models.Choices{A: "6", B: "7", C: "8", D: "9"}, CorrectAnswer: "C"},
	}
	for i := range questions {
		if _, err := sm.Exam().AddQuestion(ctx, exam.ExamID, &questions[i]); err != nil {
			t.Fatalf("Failed to add question: %v", err)
		}
	}
	return exam
}

func submitAnswers(t *testing.T, sm ServiceManager, examID, studentID string, letters []string) *models.Submission {
	t.Helper()
	answers := make(map[string]string, len(letters))
	for i, letter := range letters {
		if letter == "" {
			continue
		}
		answers[fmt.Sprintf("Q%03d", i+1)] = letter
	}
	submission, err := sm.Submission().Submit(context.Background(), &SubmitRequest{
		ExamID:    examID,
		StudentID: studentID,
		Answers:   answers,
	})
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}
	return submission
}

func TestGradeSubmission(t *testing.T) {
	sm, publisher := newTestManager(t)
	ctx := context.Background()
	exam := fourQuestionExam(t, sm)

	cases := []struct {
		name    string
		student string
		letters []string
		score   float64
		correct int
	}{
		{"all correct", "HS001", []string{"B", "C", "C", "C"}, 10.0, 4},
		{"three correct", "HS002", []string{"A", "C", "C", "C"}, 7.5, 3},
		{"two correct", "HS003", []string{"A", "A", "C", "C"}, 5.0, 2},
		{"none correct", "HS004", []string{"A", "A", "A", "A"}, 0.0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			submission := submitAnswers(t, sm, exam.ExamID, tc.student, tc.letters)

			result, err := sm.Grading().GradeSubmission(ctx, submission.SubmissionID)
			if err != nil {
				t.Fatalf("Failed to grade: %v", err)
			}
			if result.Score != tc.score {
				t.Errorf("Expected score %.2f, got %.2f", tc.score, result.Score)
			}
			if result.CorrectAnswers != tc.correct {
				t.Errorf("Expected %d correct, got %d", tc.correct, result.CorrectAnswers)
			}
			if result.WrongAnswers != 4-tc.correct {
				t.Errorf("Expected %d wrong, got %d", 4-tc.correct, result.WrongAnswers)
			}
			if len(result.Details) != 4 {
				t.Fatalf("Expected 4 detail entries, got %d", len(result.Details))
			}
			// Details follow the exam's question order.
			for i, detail := range result.Details {
				expectedID := fmt.Sprintf("Q%03d", i+1)
				if detail.QuestionID != expectedID {
					t.Errorf("Detail %d: expected question %s, got %s", i, expectedID, detail.QuestionID)
				}
			}
		})
	}

	t.Run("unanswered question counts as wrong", func(t *testing.T) {
		submission := submitAnswers(t, sm, exam.ExamID, "HS005", []string{"B", "C", "", ""})

		result, err := sm.Grading().GradeSubmission(ctx, submission.SubmissionID)
		if err != nil {
			t.Fatalf("Failed to grade: %v", err)
		}
		if result.CorrectAnswers != 2 || result.WrongAnswers != 2 {
			t.Errorf("Expected 2 correct / 2 wrong, got %d / %d", result.CorrectAnswers, result.WrongAnswers)
		}
		if result.Details[2].StudentAnswer != "" || result.Details[2].IsCorrect {
			t.Errorf("Missing answer must appear empty and wrong, got %+v", result.Details[2])
		}
	})

	t.Run("regrading creates a new result", func(t *testing.T) {
		submission := submitAnswers(t, sm, exam.ExamID, "HS006", []string{"B", "C", "C", "C"})

		first, err := sm.Grading().GradeSubmission(ctx, submission.SubmissionID)
		if err != nil {
			t.Fatalf("Failed to grade: %v", err)
		}
		second, err := sm.Grading().GradeSubmission(ctx, submission.SubmissionID)
		if err != nil {
			t.Fatalf("Failed to regrade: %v", err)
		}
		if first.ResultID == second.ResultID {
			t.Error("Expected a fresh result id per grading run")
		}
		if first.Score != second.Score {
			t.Errorf("Grading must be deterministic: %.2f vs %.2f", first.Score, second.Score)
		}
	})

	t.Run("publishes graded event", func(t *testing.T) {
		publisher.ClearEvents()
		submission := submitAnswers(t, sm, exam.ExamID, "HS007", []string{"B", "C", "C", "C"})

		if _, err := sm.Grading().GradeSubmission(ctx, submission.SubmissionID); err != nil {
			t.Fatalf("Failed to grade: %v", err)
		}

		published := publisher.GetPublishedEvents()
		var graded int
		for _, e := range published {
			if e.Type == events.EventSubmissionGraded {
				graded++
			}
		}
		if graded != 1 {
			t.Errorf("Expected one submission.graded event, got %d", graded)
		}
	})

	t.Run("unknown submission", func(t *testing.T) {
		_, err := sm.Grading().GradeSubmission(ctx, "S0000000")
		if !IsNotFound(err) {
			t.Errorf("Expected not-found error, got %v", err)
		}
	})

	t.Run("exam deleted before grading", func(t *testing.T) {
		submission := submitAnswers(t, sm, exam.ExamID, "HS008", []string{"B", "C", "C", "C"})
		if err := sm.Exam().Delete(ctx, exam.ExamID); err != nil {
			t.Fatalf("Failed to delete exam: %v", err)
		}

		_, err := sm.Grading().GradeSubmission(ctx, submission.SubmissionID)
		if !IsNotFound(err) {
			t.Errorf("Expected not-found error for deleted exam, got %v", err)
		}
	})
}

func TestCompareAnswers(t *testing.T) {
	cases := []struct {
		student, correct string
		want             bool
	}{
		{"B", "B", true},
		{"b", "B", true},
		{" B ", "B", true},
		{"", "B", false},
		{"A", "B", false},
		{"  ", "B", false},
	}
	for _, tc := range cases {
		if got := CompareAnswers(tc.student, tc.correct); got != tc.want {
			t.Errorf("CompareAnswers(%q, %q) = %v, want %v", tc.student, tc.correct, got, tc.want)
		}
	}
}

func TestCalculateScore(t *testing.T) {
	cases := []struct {
		correct, total int
		want           float64
	}{
		{4, 4, 10.0},
		{3, 4, 7.5},
		{2, 4, 5.0},
		{0, 4, 0.0},
		{1, 3, 3.33},
		{2, 3, 6.67},
		// Half-way cases round to even.
		{1, 16, 0.62},
		{5, 16, 3.12},
		{0, 0, 0.0},
	}
	for _, tc := range cases {
		if got := CalculateScore(tc.correct, tc.total); got != tc.want {
			t.Errorf("CalculateScore(%d, %d) = %.2f, want %.2f", tc.correct, tc.total, got, tc.want)
		}
	}
}
