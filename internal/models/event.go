package models

import (
	"errors"
	"strings"
	"time"
)

// Event represents an event listed for ticket sales
type Event struct {
	ID               int       `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	EventDate        time.Time `json:"event_date" db:"event_date"`
	TicketPrice      int       `json:"ticket_price" db:"ticket_price"` // Amount in cents
	AvailableTickets int       `json:"available_tickets" db:"available_tickets"`
	CategoryID       int       `json:"category_id" db:"category_id"`
	OrganizerID      int       `json:"organizer_id" db:"organizer_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// EventCreateRequest represents the data needed to create a new event
type EventCreateRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	EventDate        time.Time `json:"event_date"`
	TicketPrice      int       `json:"ticket_price"`
	AvailableTickets int       `json:"available_tickets"`
	CategoryID       int       `json:"category_id"`
	OrganizerID      int       `json:"organizer_id"`
}

// EventUpdateRequest represents the data that can be updated for an event
type EventUpdateRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	EventDate        time.Time `json:"event_date"`
	TicketPrice      int       `json:"ticket_price"`
	AvailableTickets int       `json:"available_tickets"`
	CategoryID       int       `json:"category_id"`
}

// Validate validates the event data
func (e *Event) Validate() error {
	return validateEventFields(e.Title, e.TicketPrice, e.AvailableTickets, e.CategoryID)
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	if req.OrganizerID <= 0 {
		return errors.New("organizer is required")
	}
	return validateEventFields(req.Title, req.TicketPrice, req.AvailableTickets, req.CategoryID)
}

// Validate validates event update data
func (req *EventUpdateRequest) Validate() error {
	return validateEventFields(req.Title, req.TicketPrice, req.AvailableTickets, req.CategoryID)
}

func validateEventFields(title string, price, available, categoryID int) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("event title is required")
	}

	if len(title) > 200 {
		return errors.New("event title must be less than 200 characters")
	}

	if price < 0 {
		return errors.New("ticket price cannot be negative")
	}

	if available < 0 {
		return errors.New("available tickets cannot be negative")
	}

	if categoryID <= 0 {
		return errors.New("category is required")
	}

	return nil
}

// IsSoldOut returns true if the event has no tickets left
func (e *Event) IsSoldOut() bool {
	return e.AvailableTickets <= 0
}

// IsUpcoming returns true if the event has not started yet
func (e *Event) IsUpcoming() bool {
	return e.EventDate.After(time.Now())
}

// TicketPriceInCurrency returns the ticket price in the main currency as a float
func (e *Event) TicketPriceInCurrency() float64 {
	return float64(e.TicketPrice) / 100.0
}
