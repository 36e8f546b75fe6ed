package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/events"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories/filestore"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/validator"
)

// newTestManager builds the full service stack over a throwaway file store
// with a mock event publisher.
func newTestManager(t *testing.T) (ServiceManager, *events.MockEventPublisher) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	store, err := filestore.New(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	publisher := events.NewMockEventPublisher(logger)
	sm := NewServiceManager(Deps{
		Repo:      store,
		Logger:    logger,
		Validator: validator.New(),
		Publisher: publisher,
	})
	return sm, publisher
}

func mustCreateExam(t *testing.T, sm ServiceManager) *models.Exam {
	t.Helper()
	exam, err := sm.Exam().Create(context.Background(), &CreateExamRequest{
		Title:     "Đề thi Toán",
		TeacherID: "GV001",
	})
	if err != nil {
		t.Fatalf("Failed to create exam: %v", err)
	}
	return exam
}

func sampleQuestionRequest(correct string) *AddQuestionRequest {
	return &AddQuestionRequest{
		Content:       "1 + 1 = ?",
		Choices:       models.Choices{A: "1", B: "2", C: "3", D: "4"},
		CorrectAnswer: correct,
	}
}

func TestExamServiceCreate(t *testing.T) {
	sm, publisher := newTestManager(t)
	ctx := context.Background()

	t.Run("creates exam with generated id", func(t *testing.T) {
		exam := mustCreateExam(t, sm)

		if len(exam.ExamID) != 9 || exam.ExamID[0] != 'E' {
			t.Errorf("Expected id of form E + 8 hex chars, got %q", exam.ExamID)
		}
		if exam.QuestionCount() != 0 {
			t.Errorf("Expected new exam to start empty, got %d questions", exam.QuestionCount())
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventExamCreated {
			t.Errorf("Expected one exam.created event, got %v", published)
		}
	})

	t.Run("rejects missing title", func(t *testing.T) {
		_, err := sm.Exam().Create(ctx, &CreateExamRequest{TeacherID: "GV001"})
		if err == nil {
			t.Fatal("Expected validation error for missing title")
		}
		if !IsValidation(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("rejects missing teacher id", func(t *testing.T) {
		_, err := sm.Exam().Create(ctx, &CreateExamRequest{Title: "Đề thi"})
		if err == nil {
			t.Fatal("Expected validation error for missing teacher id")
		}
	})
}

func TestExamServiceAddQuestion(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()
	exam := mustCreateExam(t, sm)

	t.Run("generates sequential question ids", func(t *testing.T) {
		first, err := sm.Exam().AddQuestion(ctx, exam.ExamID, sampleQuestionRequest("B"))
		if err != nil {
			t.Fatalf("Failed to add question: %v", err)
		}
		if first != "Q001" {
			t.Errorf("Expected first question id Q001, got %q", first)
		}

		second, err := sm.Exam().AddQuestion(ctx, exam.ExamID, &AddQuestionRequest{
			Content:       "2 + 2 = ?",
			Choices:       models.Choices{A: "2", B: "3", C: "4", D: "5"},
			CorrectAnswer: "C",
		})
		if err != nil {
			t.Fatalf("Failed to add question: %v", err)
		}
		if second != "Q002" {
			t.Errorf("Expected second question id Q002, got %q", second)
		}

		loaded, err := sm.Exam().GetByID(ctx, exam.ExamID)
		if err != nil {
			t.Fatalf("Failed to reload exam: %v", err)
		}
		if loaded.QuestionCount() != 2 {
			t.Errorf("Expected 2 persisted questions, got %d", loaded.QuestionCount())
		}
	})

	t.Run("unknown exam", func(t *testing.T) {
		_, err := sm.Exam().AddQuestion(ctx, "E0000000", sampleQuestionRequest("A"))
		if !IsNotFound(err) {
			t.Errorf("Expected not-found error, got %v", err)
		}
	})

	t.Run("invalid correct answer", func(t *testing.T) {
		_, err := sm.Exam().AddQuestion(ctx, exam.ExamID, sampleQuestionRequest("E"))
		if err == nil {
			t.Fatal("Expected error for correct answer outside A-D")
		}
		if !IsValidation(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})
}

func TestExamServiceUpdate(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	exam := mustCreateExam(t, sm)
	if _, err := sm.Exam().AddQuestion(ctx, exam.ExamID, sampleQuestionRequest("B")); err != nil {
		t.Fatalf("Failed to add question: %v", err)
	}

	t.Run("updates title only", func(t *testing.T) {
		newTitle := "Đề thi giữa kỳ"
		updated, err := sm.Exam().Update(ctx, exam.ExamID, &UpdateExamRequest{Title: &newTitle})
		if err != nil {
			t.Fatalf("Failed to update exam: %v", err)
		}
		if updated.Title != newTitle {
			t.Errorf("Expected title %q, got %q", newTitle, updated.Title)
		}
		if updated.QuestionCount() != 1 {
			t.Errorf("Expected questions untouched, got %d", updated.QuestionCount())
		}
	})

	t.Run("rejects update emptying question list", func(t *testing.T) {
		empty := []models.Question{}
		_, err := sm.Exam().Update(ctx, exam.ExamID, &UpdateExamRequest{Questions: &empty})
		if err == nil {
			t.Fatal("Expected error for update removing all questions")
		}
	})

	t.Run("unknown exam", func(t *testing.T) {
		title := "x"
		_, err := sm.Exam().Update(ctx, "E0000000", &UpdateExamRequest{Title: &title})
		if !IsNotFound(err) {
			t.Errorf("Expected not-found error, got %v", err)
		}
	})
}

func TestExamServiceDelete(t *testing.T) {
	sm, publisher := newTestManager(t)
	ctx := context.Background()

	exam := mustCreateExam(t, sm)
	if _, err := sm.Exam().AddQuestion(ctx, exam.ExamID, sampleQuestionRequest("B")); err != nil {
		t.Fatalf("Failed to add question: %v", err)
	}

	// A submission referencing the exam must survive its deletion, and so
	// must any result already graded from it.
	submission, err := sm.Submission().Submit(ctx, &SubmitRequest{
		ExamID:    exam.ExamID,
		StudentID: "HS001",
		Answers:   map[string]string{"Q001": "B"},
	})
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}
	result, err := sm.Grading().GradeSubmission(ctx, submission.SubmissionID)
	if err != nil {
		t.Fatalf("Failed to grade: %v", err)
	}

	publisher.ClearEvents()
	if err := sm.Exam().Delete(ctx, exam.ExamID); err != nil {
		t.Fatalf("Failed to delete exam: %v", err)
	}

	if _, err := sm.Exam().GetByID(ctx, exam.ExamID); !IsNotFound(err) {
		t.Errorf("Expected exam to be gone, got %v", err)
	}

	kept, err := sm.Submission().GetByID(ctx, submission.SubmissionID)
	if err != nil {
		t.Fatalf("Expected submission to survive exam deletion, got %v", err)
	}
	if kept.ExamID != exam.ExamID {
		t.Errorf("Submission must keep its original exam reference, got %q", kept.ExamID)
	}

	keptResult, err := sm.Grading().GetResult(ctx, result.ResultID)
	if err != nil {
		t.Fatalf("Expected result to survive exam deletion, got %v", err)
	}
	if keptResult.Score != result.Score {
		t.Errorf("Result score changed across deletion: %v != %v", keptResult.Score, result.Score)
	}

	byExam, err := sm.Grading().ListResults(ctx, repositories.ResultFilters{ExamID: &exam.ExamID})
	if err != nil {
		t.Fatalf("Failed to list results: %v", err)
	}
	if len(byExam) != 1 || byExam[0].ResultID != result.ResultID {
		t.Errorf("Expected the exam's result set unchanged after deletion, got %v", byExam)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventExamDeleted {
		t.Errorf("Expected one exam.deleted event, got %v", published)
	}

	t.Run("delete twice", func(t *testing.T) {
		if err := sm.Exam().Delete(ctx, exam.ExamID); !IsNotFound(err) {
			t.Errorf("Expected not-found on second delete, got %v", err)
		}
	})
}
