package services

import (
	"context"
	"testing"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
)

func TestUserServiceCreate(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	t.Run("creates teacher", func(t *testing.T) {
		user, err := sm.User().Create(ctx, &CreateUserRequest{
			UserID: "GV001",
			Name:   "Cô Lan",
			Role:   "teacher",
		})
		if err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
		if user.Role != models.RoleTeacher {
			t.Errorf("Expected teacher role, got %s", user.Role)
		}

		loaded, err := sm.User().GetByID(ctx, "GV001")
		if err != nil {
			t.Fatalf("Failed to reload user: %v", err)
		}
		if loaded.Name != "Cô Lan" {
			t.Errorf("Expected name 'Cô Lan', got %q", loaded.Name)
		}
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := sm.User().Create(ctx, &CreateUserRequest{
			UserID: "X001",
			Name:   "Ai đó",
			Role:   "admin",
		})
		if err == nil {
			t.Fatal("Expected error for unknown role")
		}
		if !IsValidation(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := sm.User().Create(ctx, &CreateUserRequest{UserID: "HS001", Role: "student"})
		if !IsValidation(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})
}

func TestUserServiceListAndDelete(t *testing.T) {
	sm, _ := newTestManager(t)
	ctx := context.Background()

	seed := []CreateUserRequest{
		{UserID: "GV001", Name: "Cô Lan", Role: "teacher"},
		{UserID: "HS001", Name: "Nguyễn Văn An", Role: "student"},
		{UserID: "HS002", Name: "Trần Thị Bình", Role: "student"},
	}
	for i := range seed {
		if _, err := sm.User().Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Failed to seed user %s: %v", seed[i].UserID, err)
		}
	}

	role := models.RoleStudent
	students, err := sm.User().List(ctx, repositories.UserFilters{Role: &role})
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(students) != 2 {
		t.Errorf("Expected 2 students, got %d", len(students))
	}

	if err := sm.User().Delete(ctx, "HS002"); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}
	if _, err := sm.User().GetByID(ctx, "HS002"); !IsNotFound(err) {
		t.Errorf("Expected user to be gone, got %v", err)
	}
	if err := sm.User().Delete(ctx, "HS002"); !IsNotFound(err) {
		t.Errorf("Expected not-found on second delete, got %v", err)
	}
}
