package handlers

import (
	"net/http"
	"strconv"

	"eventsphere/internal/middleware"
	"eventsphere/internal/services"
)

// AnalyticsHandler serves organizer and admin reporting endpoints
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// TicketSalesByCategory reports tickets sold per category
func (h *AnalyticsHandler) TicketSalesByCategory(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	sales, err := h.analyticsService.TicketSalesByCategory(user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"sales":   sales,
	})
}

// RevenueByMonth reports revenue per calendar month
func (h *AnalyticsHandler) RevenueByMonth(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	revenue, err := h.analyticsService.RevenueByMonth(user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"revenue": revenue,
	})
}

// TopEvents reports the best-selling events
func (h *AnalyticsHandler) TopEvents(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	limit := 5
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = l
	}

	top, err := h.analyticsService.TopEvents(user, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"events":  top,
	})
}
