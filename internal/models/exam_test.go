package models

import (
	"strings"
	"testing"
)

func TestNewExam(t *testing.T) {
	exam := NewExam("E1A2B3C4", "Đề thi Toán", "GV001")

	if exam.ExamID != "E1A2B3C4" {
		t.Errorf("Expected exam id 'E1A2B3C4', got %q", exam.ExamID)
	}
	if exam.Questions == nil || len(exam.Questions) != 0 {
		t.Errorf("Expected empty (non-nil) question list, got %v", exam.Questions)
	}
	if exam.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestExamAddQuestion(t *testing.T) {
	exam := NewExam("E1A2B3C4", "Đề thi Toán", "GV001")

	q := validQuestion()
	if err := exam.AddQuestion(q); err != nil {
		t.Fatalf("Expected question to be added, got error: %v", err)
	}
	if exam.QuestionCount() != 1 {
		t.Fatalf("Expected 1 question, got %d", exam.QuestionCount())
	}

	t.Run("duplicate question id rejected", func(t *testing.T) {
		err := exam.AddQuestion(q)
		if err == nil {
			t.Fatal("Expected error for duplicate question id")
		}
		if !strings.Contains(err.Error(), "đã tồn tại") {
			t.Errorf("Unexpected message: %q", err.Error())
		}
		if exam.QuestionCount() != 1 {
			t.Errorf("Duplicate must not be appended, got %d questions", exam.QuestionCount())
		}
	})

	t.Run("invalid question rejected", func(t *testing.T) {
		bad := validQuestion()
		bad.QuestionID = "Q002"
		bad.CorrectAnswer = "X"
		if err := exam.AddQuestion(bad); err == nil {
			t.Fatal("Expected error for invalid correct answer")
		}
		if exam.QuestionCount() != 1 {
			t.Errorf("Invalid question must not be appended, got %d questions", exam.QuestionCount())
		}
	})
}

func TestExamValidate(t *testing.T) {
	t.Run("empty question list", func(t *testing.T) {
		exam := NewExam("E1A2B3C4", "Đề thi Toán", "GV001")
		err := exam.Validate()
		if err == nil {
			t.Fatal("Expected error for exam without questions")
		}
		if err.Error() != "Đề thi phải có ít nhất một câu hỏi" {
			t.Errorf("Unexpected message: %q", err.Error())
		}
	})

	t.Run("missing title", func(t *testing.T) {
		exam := NewExam("E1A2B3C4", "", "GV001")
		exam.Questions = append(exam.Questions, validQuestion())
		if err := exam.Validate(); err == nil {
			t.Fatal("Expected error for empty title")
		}
	})

	t.Run("duplicate ids caught on full validation", func(t *testing.T) {
		exam := NewExam("E1A2B3C4", "Đề thi Toán", "GV001")
		exam.Questions = append(exam.Questions, validQuestion(), validQuestion())
		if err := exam.Validate(); err == nil {
			t.Fatal("Expected error for duplicated question ids")
		}
	})

	t.Run("valid exam", func(t *testing.T) {
		exam := NewExam("E1A2B3C4", "Đề thi Toán", "GV001")
		exam.Questions = append(exam.Questions, validQuestion())
		if err := exam.Validate(); err != nil {
			t.Fatalf("Expected valid exam, got error: %v", err)
		}
	})
}
