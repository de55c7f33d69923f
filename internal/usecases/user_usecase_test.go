package usecases

import (
	"testing"

	"github.com/pezimbron/fieldops-service/internal/models"
)

func TestUserUseCase_CreateUser(t *testing.T) {
	repos := newMockRepositories()
	uc := NewUserUseCase(repos)

	t.Run("should create a valid user", func(t *testing.T) {
		user := &models.User{Name: "Jane Operator", Email: "jane@example.com", Password: "secret123"}
		created, err := uc.CreateUser(user)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if created.ID == 0 {
			t.Error("Expected an ID to be assigned")
		}
	})

	t.Run("should reject duplicate emails", func(t *testing.T) {
		dup := &models.User{Name: "Other", Email: "jane@example.com", Password: "secret123"}
		_, err := uc.CreateUser(dup)
		if err == nil || err.Error() != "user with this email already exists" {
			t.Errorf("Expected duplicate email rejection, got %v", err)
		}
	})

	t.Run("should reject invalid users", func(t *testing.T) {
		user := &models.User{Name: "X", Email: "not-an-email", Password: "short"}
		if _, err := uc.CreateUser(user); err == nil {
			t.Error("Expected validation error")
		}
	})
}

func TestUserUseCase_UpdateUser(t *testing.T) {
	repos := newMockRepositories()
	uc := NewUserUseCase(repos)

	user := &models.User{Name: "Jane Operator", Email: "jane@example.com", Password: "secret123"}
	if _, err := uc.CreateUser(user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	t.Run("should update only non-empty fields", func(t *testing.T) {
		updated, err := uc.UpdateUser(user.ID, &models.User{Name: "Jane Q. Operator"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if updated.Name != "Jane Q. Operator" {
			t.Errorf("Expected updated name, got %q", updated.Name)
		}
		if updated.Email != "jane@example.com" {
			t.Errorf("Email changed unexpectedly to %q", updated.Email)
		}
	})
}
