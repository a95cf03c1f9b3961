package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"eventsphere/internal/models"
)

// writeJSON writes v as a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// errorResponse mirrors the JSON envelope the AJAX clients expect
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// Set for inventory failures so the client can render remaining stock.
	EventID   int `json:"event_id,omitempty"`
	Remaining int `json:"remaining,omitempty"`
}

// writeError maps domain errors to HTTP status codes and the JSON error
// envelope
func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Message: err.Error()}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrPurchaseNotFound),
		errors.Is(err, models.ErrCartLineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrDuplicateEntry):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	}

	if iie, ok := models.IsInsufficientInventory(err); ok {
		status = http.StatusConflict
		resp.EventID = iie.EventID
		resp.Remaining = iie.Remaining
	}

	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
		resp.Message = "internal error"
	}

	writeJSON(w, status, resp)
}
