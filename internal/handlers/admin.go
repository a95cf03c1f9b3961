package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"eventsphere/internal/middleware"
	"eventsphere/internal/models"
	"eventsphere/internal/services"

	"github.com/go-chi/chi/v5"
)

// PurchaseStats provides the platform-wide figures for the admin summary
type PurchaseStats interface {
	GetPurchaseCount() (int, error)
	GetTotalRevenue() (int, error)
}

// AdminHandler handles the admin area's user and role management
type AdminHandler struct {
	userService *services.UserService
	stats       PurchaseStats
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userService *services.UserService, stats PurchaseStats) *AdminHandler {
	return &AdminHandler{userService: userService, stats: stats}
}

type updateRoleRequest struct {
	Role models.UserRole `json:"role"`
}

// Summary reports platform-wide purchase count and revenue
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.stats.GetPurchaseCount()
	if err != nil {
		writeError(w, err)
		return
	}

	revenue, err := h.stats.GetTotalRevenue()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"total_purchases": purchases,
		"total_revenue":   revenue,
	})
}

// ListUsers lists users with pagination
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	users, total, err := h.userService.ListUsers(user, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
		"total":   total,
	})
}

// UpdateUserRole changes a user's role
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	requester := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateUserRole(id, req.Role, requester)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// DeactivateUser disables a user account
func (h *AdminHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	requester := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	if err := h.userService.DeactivateUser(id, requester); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
