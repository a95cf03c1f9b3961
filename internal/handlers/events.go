package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"eventsphere/internal/middleware"
	"eventsphere/internal/models"
	"eventsphere/internal/repositories"
	"eventsphere/internal/services"

	"github.com/go-chi/chi/v5"
)

// EventHandler handles event browsing and management requests
type EventHandler struct {
	eventService *services.EventService
	categoryRepo *repositories.CategoryRepository
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService, categoryRepo *repositories.CategoryRepository) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		categoryRepo: categoryRepo,
	}
}

// ListEvents lists events with search, category filter, sorting and
// pagination
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := repositories.EventSearchFilters{
		Search: query.Get("search"),
		SortBy: query.Get("sort"),
	}
	if categoryID, err := strconv.Atoi(query.Get("category_id")); err == nil {
		filters.CategoryID = categoryID
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil {
		filters.Offset = offset
	}

	events, total, err := h.eventService.SearchEvents(filters)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"events":  events,
		"total":   total,
	})
}

// GetEvent returns one event by ID
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.GetEventByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}

// ListCategories lists all event categories
func (h *EventHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.List()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// CreateEvent creates an event for an organizer or admin
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.EventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.CreateEvent(&req, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}

// UpdateEvent updates an event, restricted to its organizer or an admin
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	var req models.EventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.UpdateEvent(id, &req, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}

// DeleteEvent deletes an event, restricted to its organizer or an admin
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	if err := h.eventService.DeleteEvent(id, user); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
