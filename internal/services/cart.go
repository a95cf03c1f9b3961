package services

import (
	"fmt"

	"eventsphere/internal/models"
	"eventsphere/internal/repositories"
)

// EventRepository interface for event data operations
type EventRepository interface {
	Create(req *models.EventCreateRequest) (*models.Event, error)
	GetByID(id int) (*models.Event, error)
	Update(id int, req *models.EventUpdateRequest) (*models.Event, error)
	Delete(id int) error
	Search(filters repositories.EventSearchFilters) ([]*models.Event, int, error)
}

// CartService tracks a buyer's tentative selections before commitment. It
// mutates the in-memory cart the caller hands in and never touches persistent
// inventory; the caller persists the cart back through its session store.
type CartService struct {
	eventRepo EventRepository
}

// NewCartService creates a new cart service
func NewCartService(eventRepo EventRepository) *CartService {
	return &CartService{eventRepo: eventRepo}
}

// CartTotals is returned by cart mutations so the client can update its
// display without refetching.
type CartTotals struct {
	TotalQuantity int `json:"total_quantity"`
	TotalPrice    int `json:"total_price"`
}

// CartUpdateResult is returned by UpdateQuantity
type CartUpdateResult struct {
	LineTotal     int `json:"line_total"`
	TotalQuantity int `json:"total_quantity"`
	TotalPrice    int `json:"total_price"`
	Available     int `json:"available"`
}

// AddItem adds one ticket for the event to the cart. A new line starts at
// quantity 1; an existing line is incremented only while its quantity is
// below the event's live availability, otherwise the quantity is silently
// capped. Returns the cart's updated total quantity.
func (s *CartService) AddItem(cart *models.Cart, eventID int) (int, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to add to cart: %w", err)
	}

	line := cart.Line(eventID)
	if line == nil {
		// Sold-out events never gain a line; the cap just lands at zero.
		if event.AvailableTickets >= 1 {
			cart.Lines = append(cart.Lines, models.CartLine{
				EventID:   event.ID,
				Title:     event.Title,
				UnitPrice: event.TicketPrice,
				Quantity:  1,
				Available: event.AvailableTickets,
			})
		}
	} else if line.Quantity < event.AvailableTickets {
		line.Quantity++
	}

	return cart.TotalQuantity(), nil
}

// UpdateQuantity sets the quantity for an existing cart line, clamped to
// [1, live available tickets], and refreshes the line's snapshots from live
// inventory. A line whose event has sold out entirely is dropped from the
// cart.
func (s *CartService) UpdateQuantity(cart *models.Cart, eventID, quantity int) (*CartUpdateResult, error) {
	line := cart.Line(eventID)
	if line == nil {
		return nil, models.ErrCartLineNotFound
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}

	if event.AvailableTickets < 1 {
		cart.RemoveLine(eventID)
		return &CartUpdateResult{
			TotalQuantity: cart.TotalQuantity(),
			TotalPrice:    cart.TotalPrice(),
			Available:     0,
		}, nil
	}

	if quantity < 1 {
		quantity = 1
	}
	if quantity > event.AvailableTickets {
		quantity = event.AvailableTickets
	}

	line.Quantity = quantity
	line.Title = event.Title
	line.UnitPrice = event.TicketPrice
	line.Available = event.AvailableTickets

	return &CartUpdateResult{
		LineTotal:     line.LineTotal(),
		TotalQuantity: cart.TotalQuantity(),
		TotalPrice:    cart.TotalPrice(),
		Available:     event.AvailableTickets,
	}, nil
}

// RemoveItem removes the event's line from the cart. Removing a line that is
// not in the cart is a no-op, not an error.
func (s *CartService) RemoveItem(cart *models.Cart, eventID int) *CartTotals {
	cart.RemoveLine(eventID)
	return &CartTotals{
		TotalQuantity: cart.TotalQuantity(),
		TotalPrice:    cart.TotalPrice(),
	}
}
