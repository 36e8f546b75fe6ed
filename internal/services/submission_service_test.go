package services

import (
	"context"
	"testing"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
)

func TestSubmissionServiceSubmit(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()
	exam := fourQuestionExam(t, sm)

	t.Run("stores answers as given", func(t *testing.T) {
		// Answers are opaque at submission time; normalization happens
		// when grading compares them.
		submission, err := sm.Submission().Submit(ctx, &SubmitRequest{
			ExamID:    exam.ExamID,
			StudentID: "HS001",
			Answers:   map[string]string{"Q001": " b ", "Q999": "Z"},
		})
		if err != nil {
			t.Fatalf("Failed to submit: %v", err)
		}
		if len(submission.SubmissionID) != 9 || submission.SubmissionID[0] != 'S' {
			t.Errorf("Expected id of form S + 8 hex chars, got %q", submission.SubmissionID)
		}

		loaded, err := sm.Submission().GetByID(ctx, submission.SubmissionID)
		if err != nil {
			t.Fatalf("Failed to reload submission: %v", err)
		}
		if loaded.Answers["Q001"] != " b " || loaded.Answers["Q999"] != "Z" {
			t.Errorf("Answers must be stored verbatim, got %v", loaded.Answers)
		}
	})

	t.Run("nil answers become empty map", func(t *testing.T) {
		submission, err := sm.Submission().Submit(ctx, &SubmitRequest{
			ExamID:    exam.ExamID,
			StudentID: "HS002",
		})
		if err != nil {
			t.Fatalf("Failed to submit: %v", err)
		}
		if submission.Answers == nil {
			t.Error("Expected non-nil answers map")
		}
	})

	t.Run("requires exam and student ids", func(t *testing.T) {
		if _, err := sm.Submission().Submit(ctx, &SubmitRequest{StudentID: "HS001"}); !IsValidation(err) {
			t.Errorf("Expected validation error for missing exam id, got %v", err)
		}
		if _, err := sm.Submission().Submit(ctx, &SubmitRequest{ExamID: exam.ExamID}); !IsValidation(err) {
			t.Errorf("Expected validation error for missing student id, got %v", err)
		}
	})
}

func TestSubmissionServiceList(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()
	exam := fourQuestionExam(t, sm)

	for _, student := range []string{"HS001", "HS002"} {
		if _, err := sm.Submission().Submit(ctx, &SubmitRequest{ExamID: exam.ExamID, StudentID: student}); err != nil {
			t.Fatalf("Failed to submit: %v", err)
		}
	}

	student := "HS002"
	filtered, err := sm.Submission().List(ctx, repositories.SubmissionFilters{StudentID: &student})
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(filtered) != 1 || filtered[0].StudentID != "HS002" {
		t.Errorf("Expected one submission for HS002, got %v", filtered)
	}
}

func TestSubmissionServiceGetByIDMissing(t *testing.T) {
	sm, _ := newTestManager(t)

	_, err := sm.Submission().GetByID(context.Background(), "S0000000")
	if !IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}
