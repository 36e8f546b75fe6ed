package repositories

import (
	"context"
	"errors"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
)

// ===== STORE-LEVEL ERRORS =====

var (
	// ErrNotFound means the identifier has no record file.
	ErrNotFound = errors.New("record not found")

	// ErrCorruptRecord means a record file exists but could not be decoded.
	// Kept distinct from ErrNotFound at this boundary; callers that want the
	// historical conflation treat both as "not found" via IsNotFoundError.
	ErrCorruptRecord = errors.New("corrupt record")
)

// IsNotFoundError reports whether err means the record is unusable for reads:
// either missing or undecodable.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorruptRecord)
}

// IsCorruptRecordError reports a decode fault specifically.
func IsCorruptRecordError(err error) bool {
	return errors.Is(err, ErrCorruptRecord)
}

// ===== SHARED FILTER STRUCTS =====

// SubmissionFilters are optional equality filters for listing submissions.
// Nil means no filtering on that field.
type SubmissionFilters struct {
	ExamID    *string `json:"exam_id"`
	StudentID *string `json:"student_id"`
}

// ResultFilters are optional equality filters for listing results.
type ResultFilters struct {
	ExamID    *string `json:"exam_id"`
	StudentID *string `json:"student_id"`
}

// UserFilters are optional equality filters for listing users.
type UserFilters struct {
	Role *models.UserRole `json:"role"`
}

// ===== REPOSITORY INTERFACES =====

// ExamRepository persists exam records keyed by exam_id.
type ExamRepository interface {
	Save(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id string) (*models.Exam, error)
	List(ctx context.Context) ([]*models.Exam, error)
	Delete(ctx context.Context, id string) error
}

// SubmissionRepository persists submission records keyed by submission_id.
type SubmissionRepository interface {
	Save(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, filters SubmissionFilters) ([]*models.Submission, error)
	Delete(ctx context.Context, id string) error
}

// ResultRepository persists result records keyed by result_id.
type ResultRepository interface {
	Save(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, id string) (*models.Result, error)
	List(ctx context.Context, filters ResultFilters) ([]*models.Result, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository persists user records keyed by user_id.
type UserRepository interface {
	Save(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, error)
	Delete(ctx context.Context, id string) error
}

// Repository aggregates the per-entity repositories behind one handle, the way
// services consume them. Identifiers are always chosen by the caller; a save
// with an existing identifier overwrites the previous record.
type Repository interface {
	Exam() ExamRepository
	Submission() SubmissionRepository
	Result() ResultRepository
	User() UserRepository
}
