package models

import (
	"time"

	apperrors "github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/errors"
)

type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// User is a teacher or student. Users are independent records: exams and
// submissions carry raw teacher/student id strings with no referential
// integrity against this table.
type User struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUser(userID, name string, role UserRole) *User {
	return &User{
		UserID:    userID,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}

func (u *User) Validate() error {
	if u.UserID == "" {
		return apperrors.NewValidationError("user_id", "Mã người dùng không được để trống", u.UserID)
	}
	if u.Name == "" {
		return apperrors.NewValidationError("name", "Tên người dùng không được để trống", u.Name)
	}
	if u.Role != RoleTeacher && u.Role != RoleStudent {
		return apperrors.NewValidationError("role", "Vai trò phải là 'teacher' hoặc 'student'", u.Role)
	}
	return nil
}
