package services

import (
	"errors"

	apperrors "github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====
//
// Sentinel errors carry the user-facing message in the domain language; the
// services wrap them with the offending identifier. Errors always return to
// the immediate caller, they never unwind as panics.

var (
	// Not-found errors
	ErrExamNotFound       = errors.New("đề thi không tồn tại")
	ErrSubmissionNotFound = errors.New("bài làm không tồn tại")
	ErrResultNotFound     = errors.New("kết quả không tồn tại")
	ErrUserNotFound       = errors.New("người dùng không tồn tại")

	// Persistence errors
	ErrExamSaveFailed       = errors.New("không thể lưu đề thi")
	ErrExamDeleteFailed     = errors.New("không thể xóa đề thi")
	ErrSubmissionSaveFailed = errors.New("không thể lưu bài làm")
	ErrResultSaveFailed     = errors.New("không thể lưu kết quả")
	ErrUserSaveFailed       = errors.New("không thể lưu người dùng")
	ErrUserDeleteFailed     = errors.New("không thể xóa người dùng")
)

// Use shared validation errors from the errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrSubmissionNotFound) ||
		errors.Is(err, ErrResultNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var single *apperrors.ValidationError
	if errors.As(err, &single) {
		return true
	}
	var many apperrors.ValidationErrors
	return errors.As(err, &many)
}
