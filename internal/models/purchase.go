package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Purchase represents a committed ticket purchase. A purchase and its lines
// are created together inside one transaction; once committed it is immutable
// except for cancellation, which reverses the inventory effect and deletes it.
type Purchase struct {
	ID         int            `json:"id" db:"id"`
	Reference  string         `json:"reference" db:"reference"`
	UserID     int            `json:"user_id" db:"user_id"`
	BuyerName  string         `json:"buyer_name" db:"buyer_name"`
	BuyerEmail string         `json:"buyer_email" db:"buyer_email"`
	TotalCost  int            `json:"total_cost" db:"total_cost"` // Amount in cents
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	Lines      []PurchaseLine `json:"lines"`
}

// PurchaseLine records the quantity of tickets bought for one event as part
// of a purchase.
type PurchaseLine struct {
	ID         int    `json:"id" db:"id"`
	PurchaseID int    `json:"purchase_id" db:"purchase_id"`
	EventID    int    `json:"event_id" db:"event_id"`
	EventTitle string `json:"event_title,omitempty" db:"event_title"`
	Quantity   int    `json:"quantity" db:"quantity"`
}

// PurchaseCreateRequest represents the buyer details recorded on a purchase
type PurchaseCreateRequest struct {
	UserID     int    `json:"user_id"`
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
}

var purchaseEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates purchase creation data
func (req *PurchaseCreateRequest) Validate() error {
	if req.UserID <= 0 {
		return errors.New("buyer is required")
	}

	if strings.TrimSpace(req.BuyerName) == "" {
		return errors.New("buyer name is required")
	}

	if req.BuyerEmail == "" {
		return errors.New("buyer email is required")
	}

	if !purchaseEmailRegex.MatchString(req.BuyerEmail) {
		return errors.New("buyer email format is invalid")
	}

	return nil
}

// TotalCostInCurrency returns the total cost in the main currency as a float
func (p *Purchase) TotalCostInCurrency() float64 {
	return float64(p.TotalCost) / 100.0
}

// TotalQuantity returns the total number of tickets on the purchase
func (p *Purchase) TotalQuantity() int {
	total := 0
	for i := range p.Lines {
		total += p.Lines[i].Quantity
	}
	return total
}
