package services

import (
	"github.com/lenskeep/camvault-be/internal/apperrors"
	"github.com/lenskeep/camvault-be/internal/auth"
	"github.com/lenskeep/camvault-be/internal/models"
	"github.com/lenskeep/camvault-be/internal/repository"
)

// UserServiceProvider defines the interface for user self-service.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	ChangePassword(id, currentPassword, newPassword string) error
	SetActive(id string, active bool) (models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	users  repository.UserRepositoryProvider
	hasher *auth.Hasher
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepositoryProvider, hasher *auth.Hasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, apperrors.NotFound("user not found")
	}
	u := *user
	u.PasswordHash = ""
	return u, nil
}

// ChangePassword verifies the current password, then hashes and stores
// the new one.
func (s *UserService) ChangePassword(id, currentPassword, newPassword string) error {
	if err := validatePasswordLength(newPassword); err != nil {
		return err
	}

	user, err := s.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return apperrors.Authentication("current password is incorrect")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Database("failed to hash password", err)
	}
	return s.users.UpdatePassword(id, hash)
}

// SetActive flips a user's active flag. Deactivated accounts fail
// authentication but already-issued tokens keep working until expiry.
func (s *UserService) SetActive(id string, active bool) (models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, apperrors.NotFound("user not found")
	}

	user.Active = active
	updated, err := s.users.Update(*user)
	if err != nil {
		return models.User{}, err
	}
	updated.PasswordHash = ""
	return updated, nil
}
