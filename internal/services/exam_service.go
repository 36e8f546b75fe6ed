package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/cache"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/events"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/validator"
)

// ExamService enforces exam-level business rules atop the record store.
type ExamService interface {
	Create(ctx context.Context, req *CreateExamRequest) (*models.Exam, error)
	AddQuestion(ctx context.Context, examID string, req *AddQuestionRequest) (string, error)
	Update(ctx context.Context, examID string, req *UpdateExamRequest) (*models.Exam, error)
	Delete(ctx context.Context, examID string) error
	GetByID(ctx context.Context, examID string) (*models.Exam, error)
	List(ctx context.Context) ([]*models.Exam, error)
}

type CreateExamRequest struct {
	Title     string `json:"title" validate:"required"`
	TeacherID string `json:"teacher_id" validate:"required"`
}

type AddQuestionRequest struct {
	Content       string         `json:"content" validate:"required"`
	Choices       models.Choices `json:"choices"`
	CorrectAnswer string         `json:"correct_answer" validate:"required,choice_label"`
}

// UpdateExamRequest applies only the recognized fields. The exam identifier is
// never updatable; nil fields are left untouched.
type UpdateExamRequest struct {
	Title     *string            `json:"title"`
	Questions *[]models.Question `json:"questions"`
}

const examCacheTTL = 5 * time.Minute

type examService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     cache.CacheService
	publisher events.EventPublisher
	locks     *keyMutex
}

// NewExamService creates an exam service. locks must be the same keyMutex
// handed to every other service that writes exam records, so all exam
// mutations serialize on one per-identifier scope.
func NewExamService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	locks *keyMutex,
) ExamService {
	if locks == nil {
		locks = newKeyMutex()
	}
	return &examService{
		repo:      repo,
		logger:    logger,
		validator: v,
		cache:     cacheService,
		publisher: publisher,
		locks:     locks,
	}
}

func examCacheKey(examID string) string {
	return "exam:" + examID
}

func (s *examService) Create(ctx context.Context, req *CreateExamRequest) (*models.Exam, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	exam := models.NewExam(utils.NewExamID(), req.Title, req.TeacherID)
	if err := s.repo.Exam().Save(ctx, exam); err != nil {
		s.logger.Error("Failed to save exam", "exam_id", exam.ExamID, "error", err)
		return nil, ErrExamSaveFailed
	}

	s.logger.Info("Exam created", "exam_id", exam.ExamID, "created_by", exam.CreatedBy)
	s.publish(ctx, events.EventExamCreated, events.ExamCreatedEvent{
		ExamID:    exam.ExamID,
		Title:     exam.Title,
		CreatedBy: exam.CreatedBy,
	})
	return exam, nil
}

func (s *examService) AddQuestion(ctx context.Context, examID string, req *AddQuestionRequest) (string, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return "", err
	}

	// Question-id generation reads the current count, so the whole
	// load-mutate-save runs under the per-exam lock.
	unlock := s.locks.Lock(examID)
	defer unlock()

	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", fmt.Errorf("%w: %s", ErrExamNotFound, examID)
		}
		return "", err
	}

	question := models.Question{
		QuestionID:    utils.NewQuestionID(exam.QuestionCount()),
		Content:       req.Content,
		Choices:       req.Choices,
		CorrectAnswer: models.ChoiceLabel(req.CorrectAnswer),
	}
	if err := exam.AddQuestion(question); err != nil {
		return "", err
	}

	if err := s.repo.Exam().Save(ctx, exam); err != nil {
		s.logger.Error("Failed to save exam", "exam_id", examID, "error", err)
		return "", ErrExamSaveFailed
	}
	s.invalidate(ctx, examID)

	s.logger.Info("Question added", "exam_id", examID, "question_id", question.QuestionID)
	return question.QuestionID, nil
}

func (s *examService) Update(ctx context.Context, examID string, req *UpdateExamRequest) (*models.Exam, error) {
	unlock := s.locks.Lock(examID)
	defer unlock()

	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrExamNotFound, examID)
		}
		return nil, err
	}

	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Questions != nil {
		exam.Questions = *req.Questions
	}

	// The whole exam is re-validated; an invalid update is rejected before
	// anything reaches the store.
	if err := exam.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Exam().Save(ctx, exam); err != nil {
		s.logger.Error("Failed to save exam", "exam_id", examID, "error", err)
		return nil, ErrExamSaveFailed
	}
	s.invalidate(ctx, examID)

	s.logger.Info("Exam updated", "exam_id", examID)
	return exam, nil
}

func (s *examService) Delete(ctx context.Context, examID string) error {
	unlock := s.locks.Lock(examID)
	defer unlock()

	if _, err := s.repo.Exam().GetByID(ctx, examID); err != nil {
		if repositories.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", ErrExamNotFound, examID)
		}
		return err
	}

	// Submissions and results referencing the exam stay untouched so the
	// grading history survives the deletion.
	if err := s.repo.Exam().Delete(ctx, examID); err != nil {
		s.logger.Error("Failed to delete exam", "exam_id", examID, "error", err)
		return ErrExamDeleteFailed
	}
	s.invalidate(ctx, examID)

	s.logger.Info("Exam deleted", "exam_id", examID)
	s.publish(ctx, events.EventExamDeleted, events.ExamDeletedEvent{ExamID: examID})
	return nil
}

func (s *examService) GetByID(ctx context.Context, examID string) (*models.Exam, error) {
	if s.cache != nil {
		var cached models.Exam
		if err := s.cache.Get(ctx, examCacheKey(examID), &cached); err == nil {
			return &cached, nil
		}
	}

	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrExamNotFound, examID)
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, examCacheKey(examID), exam, examCacheTTL); err != nil {
			s.logger.Warn("Failed to cache exam", "exam_id", examID, "error", err)
		}
	}
	return exam, nil
}

func (s *examService) List(ctx context.Context) ([]*models.Exam, error) {
	return s.repo.Exam().List(ctx)
}

// invalidate drops the cached copy after a mutation; cache failures only warn.
func (s *examService) invalidate(ctx context.Context, examID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, examCacheKey(examID)); err != nil {
		s.logger.Warn("Failed to invalidate exam cache", "exam_id", examID, "error", err)
	}
}

// publish emits a notification event best-effort; a broken bus never fails
// the business operation.
func (s *examService) publish(ctx context.Context, eventType events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishNotificationEvent(ctx, events.NewNotificationEvent(eventType, data)); err != nil {
		s.logger.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}
