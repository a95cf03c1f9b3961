package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"eventsphere/internal/middleware"
	"eventsphere/internal/models"
	"eventsphere/internal/services"
	"eventsphere/internal/sessions"

	"github.com/go-chi/chi/v5"
)

// CartHandler handles shopping cart and checkout requests
type CartHandler struct {
	cartService     *services.CartService
	checkoutService *services.CheckoutService
	carts           sessions.CartStore
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *services.CartService, checkoutService *services.CheckoutService, carts sessions.CartStore) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
		carts:           carts,
	}
}

type addItemRequest struct {
	EventID int `json:"event_id"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ViewCart returns the session's cart with its totals
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Get(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"lines":          cart.Lines,
		"total_quantity": cart.TotalQuantity(),
		"total_price":    cart.TotalPrice(),
	})
}

// AddItem adds one ticket for an event to the session's cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cart, err := h.carts.Get(r)
	if err != nil {
		writeError(w, err)
		return
	}

	totalQuantity, err := h.cartService.AddItem(cart, req.EventID)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.carts.Put(r, w, cart); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"total_quantity": totalQuantity,
	})
}

// UpdateQuantity sets the quantity of a cart line, clamped to live
// availability
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cart, err := h.carts.Get(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.cartService.UpdateQuantity(cart, eventID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.carts.Put(r, w, cart); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"line_total":     result.LineTotal,
		"total_quantity": result.TotalQuantity,
		"total_price":    result.TotalPrice,
		"available":      result.Available,
	})
}

// RemoveItem removes an event's line from the session's cart. Removing an
// absent line succeeds with unchanged totals.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	cart, err := h.carts.Get(r)
	if err != nil {
		writeError(w, err)
		return
	}

	totals := h.cartService.RemoveItem(cart, eventID)

	if err := h.carts.Put(r, w, cart); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"total_quantity": totals.TotalQuantity,
		"total_price":    totals.TotalPrice,
	})
}

// Checkout commits the session's cart as a purchase. The cart is persisted
// back only after a successful commit; on failure it is left untouched so the
// buyer can retry or adjust.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	cart, err := h.carts.Get(r)
	if err != nil {
		writeError(w, err)
		return
	}

	purchase, err := h.checkoutService.Checkout(cart, user)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.carts.Put(r, w, cart); err != nil {
		// The purchase is committed; a session write failure must not report
		// checkout failure.
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"purchase_id": purchase.ID,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"purchase_id": purchase.ID,
		"reference":   purchase.Reference,
		"total_cost":  purchase.TotalCost,
	})
}

// ClearCart empties the session's cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Put(r, w, &models.Cart{}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"total_quantity": 0,
		"total_price":    0,
	})
}
