package services

import (
	"fmt"
	"log"

	"eventsphere/internal/models"
	"eventsphere/internal/repositories"
)

// PurchaseRepository interface for purchase data operations
type PurchaseRepository interface {
	ProcessCheckout(req *models.PurchaseCreateRequest, lines []repositories.CheckoutLine) (*models.Purchase, error)
	GetByID(id int) (*models.Purchase, error)
	GetByUser(userID int) ([]*models.Purchase, error)
	Cancel(id int) error
}

// CheckoutService converts carts into durable purchases and reverses them on
// cancellation.
type CheckoutService struct {
	purchaseRepo PurchaseRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(purchaseRepo PurchaseRepository) *CheckoutService {
	return &CheckoutService{purchaseRepo: purchaseRepo}
}

// Checkout commits the cart as a purchase for the buyer. Availability is
// re-validated against live inventory inside the repository transaction; the
// cart's cached snapshots are never trusted. On success the cart is cleared;
// on any failure the cart is left untouched so the buyer can adjust and
// retry.
func (s *CheckoutService) Checkout(cart *models.Cart, buyer *models.User) (*models.Purchase, error) {
	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	lines := make([]repositories.CheckoutLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, repositories.CheckoutLine{
			EventID:  line.EventID,
			Quantity: line.Quantity,
		})
	}

	purchase, err := s.purchaseRepo.ProcessCheckout(&models.PurchaseCreateRequest{
		UserID:     buyer.ID,
		BuyerName:  buyer.Name,
		BuyerEmail: buyer.Email,
	}, lines)
	if err != nil {
		return nil, err
	}

	cart.Clear()
	log.Printf("user %d purchased %d items, purchase %d", buyer.ID, len(purchase.Lines), purchase.ID)

	return purchase, nil
}

// GetPurchase retrieves a purchase visible to the requesting user. Buyers see
// only their own purchases; admins see any.
func (s *CheckoutService) GetPurchase(purchaseID int, requester *models.User) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}

	if purchase.UserID != requester.ID && !requester.IsAdmin() {
		return nil, models.ErrForbidden
	}

	return purchase, nil
}

// GetUserPurchases retrieves a user's purchase history, newest first
func (s *CheckoutService) GetUserPurchases(userID int, requester *models.User) ([]*models.Purchase, error) {
	if userID != requester.ID && !requester.IsAdmin() {
		return nil, models.ErrForbidden
	}
	return s.purchaseRepo.GetByUser(userID)
}

// CancelPurchase undoes a committed purchase, restoring every line's quantity
// to its event's availability. Only the original buyer or an administrator
// may cancel.
func (s *CheckoutService) CancelPurchase(purchaseID int, requester *models.User) error {
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return err
	}

	if purchase.UserID != requester.ID && !requester.IsAdmin() {
		return models.ErrForbidden
	}

	if err := s.purchaseRepo.Cancel(purchaseID); err != nil {
		return fmt.Errorf("failed to cancel purchase: %w", err)
	}

	log.Printf("user %d cancelled purchase %d, tickets restored", requester.ID, purchaseID)
	return nil
}
