package usecases

import (
	"errors"

	"github.com/pezimbron/fieldops-service/internal/models"
	"github.com/pezimbron/fieldops-service/internal/repositories"
	"github.com/pezimbron/fieldops-service/internal/utils"
	"gorm.io/gorm"
)

type userUseCase struct {
	repos *repositories.Repositories
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(repos *repositories.Repositories) UserUseCase {
	return &userUseCase{repos: repos}
}

func (uc *userUseCase) CreateUser(user *models.User) (*models.User, error) {
	if err := utils.ValidateStruct(user); err != nil {
		return nil, err
	}

	// Check if user already exists
	existingUser, err := uc.repos.User.GetByEmail(user.Email)
	if err == nil && existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := uc.repos.User.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *userUseCase) GetUserByID(id uint) (*models.User, error) {
	return uc.repos.User.GetByID(id)
}

func (uc *userUseCase) GetUserByEmail(email string) (*models.User, error) {
	return uc.repos.User.GetByEmail(email)
}

func (uc *userUseCase) UpdateUser(id uint, updatedUser *models.User) (*models.User, error) {
	user, err := uc.repos.User.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Update only non-empty fields
	if updatedUser.Name != "" {
		user.Name = updatedUser.Name
	}
	// Don't allow email updates through this method for security
	if updatedUser.Password != "" {
		user.Password = updatedUser.Password
	}

	err = uc.repos.User.Update(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}
