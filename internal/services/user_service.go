package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/validator"
)

// UserService manages teacher and student records. Users are referenced from
// exams and submissions by raw id strings only; deleting a user never cascades.
type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error)
	Delete(ctx context.Context, userID string) error
}

type CreateUserRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Role   string `json:"role" validate:"required,user_role"`
}

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user := models.NewUser(req.UserID, req.Name, models.UserRole(req.Role))
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.User().Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", "user_id", user.UserID, "error", err)
		return nil, ErrUserSaveFailed
	}

	s.logger.Info("User created", "user_id", user.UserID, "role", user.Role)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	return s.repo.User().List(ctx, filters)
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	err := s.repo.User().Delete(ctx, userID)
	if err == nil {
		s.logger.Info("User deleted", "user_id", userID)
		return nil
	}
	if repositories.IsNotFoundError(err) {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	s.logger.Error("Failed to delete user", "user_id", userID, "error", err)
	return ErrUserDeleteFailed
}
