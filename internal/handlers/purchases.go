package handlers

import (
	"net/http"
	"strconv"

	"eventsphere/internal/middleware"
	"eventsphere/internal/services"

	"github.com/go-chi/chi/v5"
)

// PurchaseHandler handles purchase history and cancellation requests
type PurchaseHandler struct {
	checkoutService *services.CheckoutService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(checkoutService *services.CheckoutService) *PurchaseHandler {
	return &PurchaseHandler{checkoutService: checkoutService}
}

// ListPurchases returns the current user's purchase history, newest first.
// Admins may pass ?user_id= to view another buyer's history.
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	userID := user.ID
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}
		userID = id
	}

	purchases, err := h.checkoutService.GetUserPurchases(userID, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"purchases": purchases,
	})
}

// GetPurchase returns one purchase with its lines
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid purchase ID", http.StatusBadRequest)
		return
	}

	purchase, err := h.checkoutService.GetPurchase(id, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"purchase": purchase,
	})
}

// CancelPurchase reverses a purchase, restoring ticket availability
func (h *PurchaseHandler) CancelPurchase(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid purchase ID", http.StatusBadRequest)
		return
	}

	if err := h.checkoutService.CancelPurchase(id, user); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Purchase cancelled and tickets restored",
	})
}
