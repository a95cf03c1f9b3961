package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventsphere/internal/middleware"
	"eventsphere/internal/models"
	"eventsphere/internal/repositories"
	"eventsphere/internal/services"
	"eventsphere/internal/sessions"

	"github.com/go-chi/chi/v5"
)

// Test fakes backed by a shared in-memory event table

type fakeEventRepo struct {
	events map[int]*models.Event
}

func (f *fakeEventRepo) Create(req *models.EventCreateRequest) (*models.Event, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEventRepo) GetByID(id int) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) Update(id int, req *models.EventUpdateRequest) (*models.Event, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEventRepo) Delete(id int) error { return errors.New("not implemented") }

func (f *fakeEventRepo) Search(filters repositories.EventSearchFilters) ([]*models.Event, int, error) {
	var result []*models.Event
	for _, event := range f.events {
		result = append(result, event)
	}
	return result, len(result), nil
}

type fakePurchaseRepo struct {
	events    map[int]*models.Event
	purchases map[int]*models.Purchase
	nextID    int
}

func (f *fakePurchaseRepo) ProcessCheckout(req *models.PurchaseCreateRequest, lines []repositories.CheckoutLine) (*models.Purchase, error) {
	for _, line := range lines {
		event, ok := f.events[line.EventID]
		if !ok {
			return nil, models.ErrEventNotFound
		}
		if event.AvailableTickets < line.Quantity {
			return nil, &models.InsufficientInventoryError{EventID: event.ID, Title: event.Title, Remaining: event.AvailableTickets}
		}
	}

	purchase := &models.Purchase{ID: f.nextID, Reference: "test-ref", UserID: req.UserID, BuyerName: req.BuyerName, BuyerEmail: req.BuyerEmail}
	for _, line := range lines {
		event := f.events[line.EventID]
		event.AvailableTickets -= line.Quantity
		purchase.TotalCost += line.Quantity * event.TicketPrice
		purchase.Lines = append(purchase.Lines, models.PurchaseLine{EventID: line.EventID, Quantity: line.Quantity})
	}
	f.purchases[f.nextID] = purchase
	f.nextID++
	return purchase, nil
}

func (f *fakePurchaseRepo) GetByID(id int) (*models.Purchase, error) {
	purchase, ok := f.purchases[id]
	if !ok {
		return nil, models.ErrPurchaseNotFound
	}
	return purchase, nil
}

func (f *fakePurchaseRepo) GetByUser(userID int) ([]*models.Purchase, error) {
	var result []*models.Purchase
	for _, p := range f.purchases {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakePurchaseRepo) Cancel(id int) error {
	purchase, ok := f.purchases[id]
	if !ok {
		return models.ErrPurchaseNotFound
	}
	for _, line := range purchase.Lines {
		if event, ok := f.events[line.EventID]; ok {
			event.AvailableTickets += line.Quantity
		}
	}
	delete(f.purchases, id)
	return nil
}

func newCartTestServer(t *testing.T) (http.Handler, *fakeEventRepo, *sessions.MemoryCartStore) {
	t.Helper()

	events := map[int]*models.Event{
		1: {ID: 1, Title: "C# Fundamentals", TicketPrice: 1599, AvailableTickets: 10},
		2: {ID: 2, Title: "Rock Night Live", TicketPrice: 3000, AvailableTickets: 3},
	}
	eventRepo := &fakeEventRepo{events: events}
	purchaseRepo := &fakePurchaseRepo{events: events, purchases: make(map[int]*models.Purchase), nextID: 1}
	store := sessions.NewMemoryCartStore()

	handler := NewCartHandler(
		services.NewCartService(eventRepo),
		services.NewCheckoutService(purchaseRepo),
		store,
	)

	buyer := &models.User{ID: 7, Email: "jane@example.com", Name: "Jane Doe", Role: models.RoleAttendee, IsActive: true}

	r := chi.NewRouter()
	r.Get("/cart", handler.ViewCart)
	r.Delete("/cart", handler.ClearCart)
	r.Post("/cart/items", handler.AddItem)
	r.Put("/cart/items/{eventID}", handler.UpdateQuantity)
	r.Delete("/cart/items/{eventID}", handler.RemoveItem)
	r.With(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUser(req.Context(), buyer)))
		})
	}).Post("/checkout", handler.Checkout)

	return r, eventRepo, store
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "test-session"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestCartHandler_AddAndView(t *testing.T) {
	h, _, _ := newCartTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if resp["total_quantity"].(float64) != 1 {
		t.Errorf("total_quantity = %v, want 1", resp["total_quantity"])
	}

	doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 1})
	doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 2})

	rec = doJSON(t, h, http.MethodGet, "/cart", nil)
	resp = decodeResponse(t, rec)
	if resp["total_quantity"].(float64) != 3 {
		t.Errorf("total_quantity = %v, want 3", resp["total_quantity"])
	}
	if resp["total_price"].(float64) != float64(2*1599+3000) {
		t.Errorf("total_price = %v, want %d", resp["total_price"], 2*1599+3000)
	}
}

func TestCartHandler_AddUnknownEvent(t *testing.T) {
	h, _, _ := newCartTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 99})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp["success"].(bool) {
		t.Error("success should be false")
	}
}

func TestCartHandler_UpdateQuantityClamps(t *testing.T) {
	h, _, _ := newCartTestServer(t)

	doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 2})

	// Request more than the 3 available
	rec := doJSON(t, h, http.MethodPut, "/cart/items/2", map[string]int{"quantity": 10})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if resp["total_quantity"].(float64) != 3 {
		t.Errorf("total_quantity = %v, want 3 (clamped)", resp["total_quantity"])
	}
	if resp["available"].(float64) != 3 {
		t.Errorf("available = %v, want 3", resp["available"])
	}
}

func TestCartHandler_UpdateQuantityMissingLine(t *testing.T) {
	h, _, _ := newCartTestServer(t)

	rec := doJSON(t, h, http.MethodPut, "/cart/items/1", map[string]int{"quantity": 2})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCartHandler_RemoveItem(t *testing.T) {
	h, _, _ := newCartTestServer(t)

	doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 1})
	doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 2})

	rec := doJSON(t, h, http.MethodDelete, "/cart/items/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp["total_quantity"].(float64) != 1 {
		t.Errorf("total_quantity = %v, want 1", resp["total_quantity"])
	}

	// Removing an absent line still succeeds
	rec = doJSON(t, h, http.MethodDelete, "/cart/items/99", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for no-op removal", rec.Code)
	}
}

func TestCartHandler_Checkout(t *testing.T) {
	h, repo, store := newCartTestServer(t)

	doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 1})
	doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 1})

	rec := doJSON(t, h, http.MethodPost, "/checkout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if !resp["success"].(bool) {
		t.Error("success should be true")
	}
	if resp["total_cost"].(float64) != float64(2*1599) {
		t.Errorf("total_cost = %v, want %d", resp["total_cost"], 2*1599)
	}

	// Inventory decremented and the session cart cleared
	if repo.events[1].AvailableTickets != 8 {
		t.Errorf("availability = %d, want 8", repo.events[1].AvailableTickets)
	}
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "test-session"})
	cart, err := store.Get(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cart.IsEmpty() {
		t.Error("cart should be cleared after checkout")
	}
}

func TestCartHandler_Checkout_EmptyCart(t *testing.T) {
	h, _, _ := newCartTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/checkout", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestCartHandler_Checkout_InsufficientInventory(t *testing.T) {
	h, repo, store := newCartTestServer(t)

	doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 2})
	doJSON(t, h, http.MethodPut, "/cart/items/2", map[string]int{"quantity": 3})

	// Inventory shrinks after the cart was filled
	repo.events[2].AvailableTickets = 1

	rec := doJSON(t, h, http.MethodPost, "/checkout", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if resp["event_id"].(float64) != 2 {
		t.Errorf("event_id = %v, want 2", resp["event_id"])
	}
	if resp["remaining"].(float64) != 1 {
		t.Errorf("remaining = %v, want 1", resp["remaining"])
	}

	// The cart survives the failed checkout
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "test-session"})
	cart, err := store.Get(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.IsEmpty() {
		t.Error("cart should be preserved on checkout failure")
	}
}

func TestCartHandler_ClearCart(t *testing.T) {
	h, _, _ := newCartTestServer(t)

	doJSON(t, h, http.MethodPost, "/cart/items", map[string]int{"event_id": 1})

	rec := doJSON(t, h, http.MethodDelete, "/cart", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/cart", nil)
	resp := decodeResponse(t, rec)
	if resp["total_quantity"].(float64) != 0 {
		t.Errorf("total_quantity = %v, want 0", resp["total_quantity"])
	}
}
