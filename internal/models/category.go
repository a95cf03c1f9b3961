package models

import (
	"errors"
	"strings"
)

// Category represents an event category
type Category struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// Validate validates the category data
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category name is required")
	}

	if len(c.Name) > 100 {
		return errors.New("category name must be less than 100 characters")
	}

	return nil
}
