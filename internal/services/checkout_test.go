package services

import (
	"errors"
	"testing"

	"eventsphere/internal/models"
	"eventsphere/internal/repositories"
)

type mockPurchaseRepository struct {
	events    map[int]*models.Event
	purchases map[int]*models.Purchase
	nextID    int
}

func newMockPurchaseRepository(events map[int]*models.Event) *mockPurchaseRepository {
	return &mockPurchaseRepository{
		events:    events,
		purchases: make(map[int]*models.Purchase),
		nextID:    1,
	}
}

// ProcessCheckout mirrors the repository's all-or-nothing contract: every
// line is validated against live inventory before anything is written.
func (m *mockPurchaseRepository) ProcessCheckout(req *models.PurchaseCreateRequest, lines []repositories.CheckoutLine) (*models.Purchase, error) {
	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	for _, line := range lines {
		event, exists := m.events[line.EventID]
		if !exists {
			return nil, models.ErrEventNotFound
		}
		if event.AvailableTickets < line.Quantity {
			return nil, &models.InsufficientInventoryError{
				EventID:   event.ID,
				Title:     event.Title,
				Remaining: event.AvailableTickets,
			}
		}
	}

	purchase := &models.Purchase{
		ID:         m.nextID,
		UserID:     req.UserID,
		BuyerName:  req.BuyerName,
		BuyerEmail: req.BuyerEmail,
	}
	for _, line := range lines {
		event := m.events[line.EventID]
		event.AvailableTickets -= line.Quantity
		purchase.TotalCost += line.Quantity * event.TicketPrice
		purchase.Lines = append(purchase.Lines, models.PurchaseLine{
			PurchaseID: purchase.ID,
			EventID:    line.EventID,
			EventTitle: event.Title,
			Quantity:   line.Quantity,
		})
	}
	m.purchases[purchase.ID] = purchase
	m.nextID++
	return purchase, nil
}

func (m *mockPurchaseRepository) GetByID(id int) (*models.Purchase, error) {
	purchase, exists := m.purchases[id]
	if !exists {
		return nil, models.ErrPurchaseNotFound
	}
	return purchase, nil
}

func (m *mockPurchaseRepository) GetByUser(userID int) ([]*models.Purchase, error) {
	var result []*models.Purchase
	for _, p := range m.purchases {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPurchaseRepository) Cancel(id int) error {
	purchase, exists := m.purchases[id]
	if !exists {
		return models.ErrPurchaseNotFound
	}
	for _, line := range purchase.Lines {
		if event, ok := m.events[line.EventID]; ok {
			event.AvailableTickets += line.Quantity
		}
	}
	delete(m.purchases, id)
	return nil
}

func checkoutFixture() (map[int]*models.Event, *models.Cart, *models.User) {
	events := map[int]*models.Event{
		1: {ID: 1, Title: "C# Fundamentals", TicketPrice: 1599, AvailableTickets: 10},
		2: {ID: 2, Title: "Rock Night Live", TicketPrice: 3000, AvailableTickets: 3},
	}
	cart := &models.Cart{Lines: []models.CartLine{
		{EventID: 1, Title: "C# Fundamentals", UnitPrice: 1599, Quantity: 2, Available: 10},
		{EventID: 2, Title: "Rock Night Live", UnitPrice: 3000, Quantity: 1, Available: 3},
	}}
	buyer := &models.User{ID: 7, Email: "jane@example.com", Name: "Jane Doe", Role: models.RoleAttendee, IsActive: true}
	return events, cart, buyer
}

func TestCheckoutService_Checkout(t *testing.T) {
	events, cart, buyer := checkoutFixture()
	repo := newMockPurchaseRepository(events)
	service := NewCheckoutService(repo)

	purchase, err := service.Checkout(cart, buyer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if purchase.TotalCost != 2*1599+3000 {
		t.Errorf("total cost = %d, want %d", purchase.TotalCost, 2*1599+3000)
	}
	if len(purchase.Lines) != 2 {
		t.Errorf("purchase lines = %d, want 2", len(purchase.Lines))
	}
	if purchase.BuyerEmail != "jane@example.com" {
		t.Errorf("buyer email = %q", purchase.BuyerEmail)
	}

	// Inventory decremented
	if events[1].AvailableTickets != 8 {
		t.Errorf("event 1 availability = %d, want 8", events[1].AvailableTickets)
	}
	if events[2].AvailableTickets != 2 {
		t.Errorf("event 2 availability = %d, want 2", events[2].AvailableTickets)
	}

	// Cart cleared on success
	if !cart.IsEmpty() {
		t.Error("cart should be cleared after successful checkout")
	}
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	events, _, buyer := checkoutFixture()
	service := NewCheckoutService(newMockPurchaseRepository(events))

	_, err := service.Checkout(&models.Cart{}, buyer)
	if !errors.Is(err, models.ErrEmptyCart) {
		t.Errorf("error = %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutService_Checkout_InsufficientInventory(t *testing.T) {
	events, cart, buyer := checkoutFixture()
	// More than event 2 has left
	cart.Lines[1].Quantity = 5
	service := NewCheckoutService(newMockPurchaseRepository(events))

	_, err := service.Checkout(cart, buyer)
	iie, ok := models.IsInsufficientInventory(err)
	if !ok {
		t.Fatalf("error = %v, want InsufficientInventoryError", err)
	}
	if iie.EventID != 2 || iie.Remaining != 3 {
		t.Errorf("unexpected error detail: %+v", iie)
	}

	// Nothing committed, cart untouched
	if events[1].AvailableTickets != 10 {
		t.Errorf("event 1 availability = %d, want 10 (no partial commit)", events[1].AvailableTickets)
	}
	if cart.IsEmpty() {
		t.Error("cart should be preserved on checkout failure")
	}
}

func TestCheckoutService_GetPurchase_Visibility(t *testing.T) {
	events, cart, buyer := checkoutFixture()
	repo := newMockPurchaseRepository(events)
	service := NewCheckoutService(repo)

	purchase, err := service.Checkout(cart, buyer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Buyer sees their own purchase
	if _, err := service.GetPurchase(purchase.ID, buyer); err != nil {
		t.Errorf("buyer should see own purchase: %v", err)
	}

	// Another attendee does not
	other := &models.User{ID: 8, Role: models.RoleAttendee}
	if _, err := service.GetPurchase(purchase.ID, other); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}

	// Admin sees any purchase
	admin := &models.User{ID: 9, Role: models.RoleAdmin}
	if _, err := service.GetPurchase(purchase.ID, admin); err != nil {
		t.Errorf("admin should see any purchase: %v", err)
	}
}

func TestCheckoutService_GetUserPurchases_Forbidden(t *testing.T) {
	events, _, _ := checkoutFixture()
	service := NewCheckoutService(newMockPurchaseRepository(events))

	requester := &models.User{ID: 8, Role: models.RoleAttendee}
	if _, err := service.GetUserPurchases(7, requester); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestCheckoutService_CancelPurchase(t *testing.T) {
	events, cart, buyer := checkoutFixture()
	repo := newMockPurchaseRepository(events)
	service := NewCheckoutService(repo)

	purchase, err := service.Checkout(cart, buyer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A stranger cannot cancel
	other := &models.User{ID: 8, Role: models.RoleAttendee}
	if err := service.CancelPurchase(purchase.ID, other); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}

	// The buyer can, and inventory is restored
	if err := service.CancelPurchase(purchase.ID, buyer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events[1].AvailableTickets != 10 || events[2].AvailableTickets != 3 {
		t.Errorf("availability not restored: %d, %d", events[1].AvailableTickets, events[2].AvailableTickets)
	}

	// The purchase is gone
	if _, err := service.GetPurchase(purchase.ID, buyer); !errors.Is(err, models.ErrPurchaseNotFound) {
		t.Errorf("error = %v, want ErrPurchaseNotFound", err)
	}
}
