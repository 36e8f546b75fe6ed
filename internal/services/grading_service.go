package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/events"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
)

// GradingService computes deterministic scores. Grading is a pure fold over
// the exam's questions in stored order; the same submission graded twice
// produces two distinct result records.
type GradingService interface {
	GradeSubmission(ctx context.Context, submissionID string) (*models.Result, error)
	GetResult(ctx context.Context, resultID string) (*models.Result, error)
	ListResults(ctx context.Context, filters repositories.ResultFilters) ([]*models.Result, error)
}

type gradingService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewGradingService(
	repo repositories.Repository,
	logger *slog.Logger,
	publisher events.EventPublisher,
) GradingService {
	return &gradingService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

func (s *gradingService) GradeSubmission(ctx context.Context, submissionID string) (*models.Result, error) {
	submission, err := s.repo.Submission().GetByID(ctx, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrSubmissionNotFound, submissionID)
		}
		return nil, err
	}

	// Direct lookup by the submission's stored exam_id. Nothing checked the
	// reference at submission time, so the exam may be gone by now.
	exam, err := s.repo.Exam().GetByID(ctx, submission.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrExamNotFound, submission.ExamID)
		}
		return nil, err
	}

	totalQuestions := len(exam.Questions)
	correctAnswers := 0
	details := make([]models.ResultDetail, 0, totalQuestions)

	for _, question := range exam.Questions {
		// A missing answer counts as wrong, never as an error.
		studentAnswer := submission.Answers[question.QuestionID]

		isCorrect := CompareAnswers(studentAnswer, string(question.CorrectAnswer))
		if isCorrect {
			correctAnswers++
		}
		details = append(details, models.ResultDetail{
			QuestionID:    question.QuestionID,
			StudentAnswer: studentAnswer,
			CorrectAnswer: string(question.CorrectAnswer),
			IsCorrect:     isCorrect,
		})
	}

	result := &models.Result{
		ResultID:       utils.NewResultID(),
		SubmissionID:   submission.SubmissionID,
		ExamID:         submission.ExamID,
		StudentID:      submission.StudentID,
		Score:          CalculateScore(correctAnswers, totalQuestions),
		TotalQuestions: totalQuestions,
		CorrectAnswers: correctAnswers,
		WrongAnswers:   totalQuestions - correctAnswers,
		GradedAt:       time.Now().UTC(),
		Details:        details,
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Result().Save(ctx, result); err != nil {
		s.logger.Error("Failed to save result", "result_id", result.ResultID, "error", err)
		return nil, ErrResultSaveFailed
	}

	s.logger.Info("Submission graded",
		"result_id", result.ResultID,
		"submission_id", submissionID,
		"exam_id", result.ExamID,
		"score", result.Score)

	if s.publisher != nil {
		event := events.NewNotificationEvent(events.EventSubmissionGraded, events.SubmissionGradedEvent{
			ResultID:       result.ResultID,
			SubmissionID:   result.SubmissionID,
			ExamID:         result.ExamID,
			StudentID:      result.StudentID,
			Score:          result.Score,
			CorrectAnswers: result.CorrectAnswers,
			TotalQuestions: result.TotalQuestions,
		})
		if err := s.publisher.PublishNotificationEvent(ctx, event); err != nil {
			s.logger.Warn("Failed to publish event", "event_type", event.Type, "error", err)
		}
	}
	return result, nil
}

func (s *gradingService) GetResult(ctx context.Context, resultID string) (*models.Result, error) {
	result, err := s.repo.Result().GetByID(ctx, resultID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrResultNotFound, resultID)
		}
		return nil, err
	}
	return result, nil
}

func (s *gradingService) ListResults(ctx context.Context, filters repositories.ResultFilters) ([]*models.Result, error) {
	return s.repo.Result().List(ctx, filters)
}

// CompareAnswers is the single correctness rule: trimmed, case-insensitive
// equality. No partial credit, no multi-answer questions.
func CompareAnswers(studentAnswer, correctAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(studentAnswer), strings.TrimSpace(correctAnswer))
}

// CalculateScore maps a correct count onto the 0-10 scale with two-decimal
// granularity. Ties round to even, so 1/16 gives 0.62 rather than 0.63.
// A zero total yields 0.0; exam validation makes that state unreachable in
// practice.
func CalculateScore(correct, total int) float64 {
	if total == 0 {
		return 0.0
	}
	score := float64(correct) / float64(total) * 10
	return math.RoundToEven(score*100) / 100
}
