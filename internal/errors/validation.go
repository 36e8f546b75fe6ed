package errors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error. Message carries the
// user-facing reason in the domain language; Field and Rule are the structured
// parts adapters can render or log.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "Dữ liệu không hợp lệ"
	}
	if len(ve) == 1 {
		return ve[0].Message
	}
	return fmt.Sprintf("Dữ liệu không hợp lệ: %d lỗi", len(ve))
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	if validatorErr, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validatorErr {
			errors = append(errors, ValidationError{
				Field:   err.Field(),
				Message: fmt.Sprintf("%s %s", err.Field(), getErrorMessage(err)),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

// getErrorMessage returns user-facing error messages in the domain language
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "không được để trống"
	case "min":
		return fmt.Sprintf("phải có ít nhất %s", err.Param())
	case "max":
		return fmt.Sprintf("không được vượt quá %s", err.Param())
	case "oneof":
		return fmt.Sprintf("phải là một trong: %s", err.Param())
	case "dive":
		return "chứa phần tử không hợp lệ"

	// Custom validators
	case "choice_label":
		return "phải là A, B, C hoặc D"
	case "user_role":
		return "phải là 'teacher' hoặc 'student'"

	default:
		return fmt.Sprintf("không hợp lệ (quy tắc '%s')", err.Tag())
	}
}
