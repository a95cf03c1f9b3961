package services

import (
	"fmt"

	"eventsphere/internal/models"
	"eventsphere/internal/utils"
)

// UserRepository interface for user data operations
type UserRepository interface {
	Create(req *models.UserCreateRequest, passwordHash string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(limit, offset int) ([]*models.User, int, error)
	UpdateRole(id int, role models.UserRole) (*models.User, error)
	SetActive(id int, active bool) error
}

// UserService handles user management for the admin area
type UserService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser creates a new user with a hashed password
func (s *UserService) CreateUser(req *models.UserCreateRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, models.ErrDuplicateEntry
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.Create(req, hash)
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ListUsers lists users for the admin area
func (s *UserService) ListUsers(requester *models.User, limit, offset int) ([]*models.User, int, error) {
	if !requester.IsAdmin() {
		return nil, 0, models.ErrForbidden
	}
	return s.userRepo.List(limit, offset)
}

// UpdateUserRole changes a user's role. Admin only; admins cannot demote
// themselves.
func (s *UserService) UpdateUserRole(id int, role models.UserRole, requester *models.User) (*models.User, error) {
	if !requester.IsAdmin() {
		return nil, models.ErrForbidden
	}

	if id == requester.ID {
		return nil, fmt.Errorf("%w: cannot change own role", models.ErrInvalidInput)
	}

	return s.userRepo.UpdateRole(id, role)
}

// DeactivateUser disables a user account. Admin only.
func (s *UserService) DeactivateUser(id int, requester *models.User) error {
	if !requester.IsAdmin() {
		return models.ErrForbidden
	}

	if id == requester.ID {
		return fmt.Errorf("%w: cannot deactivate own account", models.ErrInvalidInput)
	}

	return s.userRepo.SetActive(id, false)
}
