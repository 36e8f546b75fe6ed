package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/events"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/validator"
)

// SubmissionService records student attempts. A submission is written once;
// there is no update operation.
type SubmissionService interface {
	Submit(ctx context.Context, req *SubmitRequest) (*models.Submission, error)
	GetByID(ctx context.Context, submissionID string) (*models.Submission, error)
	List(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.Submission, error)
}

// SubmitRequest carries the raw answer mapping from the adapter. Answers are
// stored as given and only interpreted at grading time; there is also no
// check that the exam still exists, so grading a submission against a
// since-deleted exam fails at the exam lookup, not here.
type SubmitRequest struct {
	ExamID    string            `json:"exam_id" validate:"required"`
	StudentID string            `json:"student_id" validate:"required"`
	Answers   map[string]string `json:"answers"`
}

type submissionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewSubmissionService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	publisher events.EventPublisher,
) SubmissionService {
	return &submissionService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *submissionService) Submit(ctx context.Context, req *SubmitRequest) (*models.Submission, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	submission := models.NewSubmission(utils.NewSubmissionID(), req.ExamID, req.StudentID, req.Answers)
	if err := s.repo.Submission().Save(ctx, submission); err != nil {
		s.logger.Error("Failed to save submission", "submission_id", submission.SubmissionID, "error", err)
		return nil, ErrSubmissionSaveFailed
	}

	s.logger.Info("Submission received",
		"submission_id", submission.SubmissionID,
		"exam_id", submission.ExamID,
		"student_id", submission.StudentID)

	if s.publisher != nil {
		event := events.NewNotificationEvent(events.EventSubmissionReceived, events.SubmissionReceivedEvent{
			SubmissionID: submission.SubmissionID,
			ExamID:       submission.ExamID,
			StudentID:    submission.StudentID,
		})
		if err := s.publisher.PublishNotificationEvent(ctx, event); err != nil {
			s.logger.Warn("Failed to publish event", "event_type", event.Type, "error", err)
		}
	}
	return submission, nil
}

func (s *submissionService) GetByID(ctx context.Context, submissionID string) (*models.Submission, error) {
	submission, err := s.repo.Submission().GetByID(ctx, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrSubmissionNotFound, submissionID)
		}
		return nil, err
	}
	return submission, nil
}

func (s *submissionService) List(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.Submission, error) {
	return s.repo.Submission().List(ctx, filters)
}
