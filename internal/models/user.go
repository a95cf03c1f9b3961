package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	RoleAttendee  UserRole = "attendee"
	RoleOrganizer UserRole = "organizer"
	RoleAdmin     UserRole = "admin"
)

// User represents a user in the system
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         UserRole  `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserCreateRequest represents the data needed to create a new user
type UserCreateRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
}

var userEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates user creation data
func (req *UserCreateRequest) Validate() error {
	if req.Email == "" {
		return errors.New("email is required")
	}

	if !userEmailRegex.MatchString(req.Email) {
		return errors.New("email format is invalid")
	}

	if len(req.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}

	return ValidateRole(req.Role)
}

// ValidateRole validates a user role value
func ValidateRole(role UserRole) error {
	switch role {
	case RoleAttendee, RoleOrganizer, RoleAdmin:
		return nil
	default:
		return errors.New("invalid user role")
	}
}

// IsAdmin returns true if the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsOrganizer returns true if the user is an organizer
func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}

// CanManageEvent returns true if the user may modify the given event
func (u *User) CanManageEvent(e *Event) bool {
	if u.IsAdmin() {
		return true
	}
	return u.IsOrganizer() && e.OrganizerID == u.ID
}
