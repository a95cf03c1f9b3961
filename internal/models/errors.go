package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateEntry   = errors.New("duplicate entry")
)

// InsufficientInventoryError is returned when a checkout requests more
// tickets than an event has left. It carries enough detail to render a
// user-facing message.
type InsufficientInventoryError struct {
	EventID   int
	Title     string
	Remaining int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("not enough tickets for %s: only %d left", e.Title, e.Remaining)
}

// IsInsufficientInventory reports whether err is an InsufficientInventoryError
// and returns it when it is.
func IsInsufficientInventory(err error) (*InsufficientInventoryError, bool) {
	var iie *InsufficientInventoryError
	if errors.As(err, &iie) {
		return iie, true
	}
	return nil, false
}
