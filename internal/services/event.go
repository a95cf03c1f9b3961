package services

import (
	"fmt"

	"eventsphere/internal/models"
	"eventsphere/internal/repositories"
)

// EventService handles event-related business logic
type EventService struct {
	eventRepo EventRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// SearchEvents searches published events with filters, sorting and pagination
func (s *EventService) SearchEvents(filters repositories.EventSearchFilters) ([]*models.Event, int, error) {
	return s.eventRepo.Search(filters)
}

// GetEventByID retrieves an event by ID
func (s *EventService) GetEventByID(id int) (*models.Event, error) {
	return s.eventRepo.GetByID(id)
}

// CreateEvent creates an event on behalf of an organizer or admin
func (s *EventService) CreateEvent(req *models.EventCreateRequest, creator *models.User) (*models.Event, error) {
	if !creator.IsOrganizer() && !creator.IsAdmin() {
		return nil, models.ErrForbidden
	}

	// Organizers may only create events under their own name.
	if !creator.IsAdmin() {
		req.OrganizerID = creator.ID
	}
	if req.OrganizerID == 0 {
		req.OrganizerID = creator.ID
	}

	event, err := s.eventRepo.Create(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// UpdateEvent updates an event, restricted to its organizer or an admin
func (s *EventService) UpdateEvent(id int, req *models.EventUpdateRequest, requester *models.User) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !requester.CanManageEvent(event) {
		return nil, models.ErrForbidden
	}

	updated, err := s.eventRepo.Update(id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return updated, nil
}

// DeleteEvent deletes an event, restricted to its organizer or an admin
func (s *EventService) DeleteEvent(id int, requester *models.User) error {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return err
	}

	if !requester.CanManageEvent(event) {
		return models.ErrForbidden
	}

	return s.eventRepo.Delete(id)
}
