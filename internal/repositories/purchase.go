package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"eventsphere/internal/models"

	"github.com/google/uuid"
)

// PurchaseRepository handles purchase data operations
type PurchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *sql.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// CheckoutLine is one event/quantity pair submitted to ProcessCheckout, in
// cart insertion order.
type CheckoutLine struct {
	EventID  int
	Quantity int
}

// ProcessCheckout converts cart lines into a durable purchase with consistent
// inventory effects, or changes nothing. The whole operation runs inside one
// transaction:
//
//  1. Every referenced event row is re-read FOR UPDATE in line order. Cart
//     snapshots are never trusted here.
//  2. All lines are validated before any write; the first failure aborts the
//     checkout with no partial effects.
//  3. The purchase is inserted with the total computed from live prices, then
//     each event's availability is decremented behind the availability
//     condition and a purchase line is recorded.
func (r *PurchaseRepository) ProcessCheckout(req *models.PurchaseCreateRequest, lines []CheckoutLine) (*models.Purchase, error) {
	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Fresh reads with row locks, then a full validation pass over all lines
	// before any mutation.
	type lockedEvent struct {
		title     string
		price     int
		available int
	}
	events := make(map[int]lockedEvent, len(lines))

	for _, line := range lines {
		var ev lockedEvent
		err = tx.QueryRow(`
			SELECT title, ticket_price, available_tickets
			FROM events
			WHERE id = $1
			FOR UPDATE`, line.EventID).Scan(&ev.title, &ev.price, &ev.available)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, models.ErrEventNotFound
			}
			return nil, fmt.Errorf("failed to read event %d: %w", line.EventID, err)
		}
		events[line.EventID] = ev
	}

	totalCost := 0
	for _, line := range lines {
		ev := events[line.EventID]
		if line.Quantity > ev.available {
			return nil, &models.InsufficientInventoryError{
				EventID:   line.EventID,
				Title:     ev.title,
				Remaining: ev.available,
			}
		}
		totalCost += ev.price * line.Quantity
	}

	purchase := &models.Purchase{}
	err = tx.QueryRow(`
		INSERT INTO purchases (reference, user_id, buyer_name, buyer_email, total_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, reference, user_id, buyer_name, buyer_email, total_cost, created_at`,
		uuid.NewString(),
		req.UserID,
		req.BuyerName,
		req.BuyerEmail,
		totalCost,
		time.Now(),
	).Scan(
		&purchase.ID,
		&purchase.Reference,
		&purchase.UserID,
		&purchase.BuyerName,
		&purchase.BuyerEmail,
		&purchase.TotalCost,
		&purchase.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	for _, line := range lines {
		// The decrement re-checks availability as part of the same statement;
		// the earlier validation read alone would leave a window for
		// over-selling under concurrency.
		if err = decrementAvailability(tx, line.EventID, line.Quantity); err != nil {
			return nil, err
		}

		pl := models.PurchaseLine{
			PurchaseID: purchase.ID,
			EventID:    line.EventID,
			EventTitle: events[line.EventID].title,
			Quantity:   line.Quantity,
		}
		err = tx.QueryRow(`
			INSERT INTO purchase_lines (purchase_id, event_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id`,
			pl.PurchaseID, pl.EventID, pl.Quantity,
		).Scan(&pl.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create purchase line: %w", err)
		}
		purchase.Lines = append(purchase.Lines, pl)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return purchase, nil
}

// GetByID retrieves a purchase with its lines
func (r *PurchaseRepository) GetByID(id int) (*models.Purchase, error) {
	purchase := &models.Purchase{}
	err := r.db.QueryRow(`
		SELECT id, reference, user_id, buyer_name, buyer_email, total_cost, created_at
		FROM purchases
		WHERE id = $1`, id).Scan(
		&purchase.ID,
		&purchase.Reference,
		&purchase.UserID,
		&purchase.BuyerName,
		&purchase.BuyerEmail,
		&purchase.TotalCost,
		&purchase.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}

	purchase.Lines, err = r.getLines(purchase.ID)
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// GetByUser retrieves a user's purchases, newest first, with lines attached
func (r *PurchaseRepository) GetByUser(userID int) ([]*models.Purchase, error) {
	rows, err := r.db.Query(`
		SELECT id, reference, user_id, buyer_name, buyer_email, total_cost, created_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		purchase := &models.Purchase{}
		err = rows.Scan(
			&purchase.ID,
			&purchase.Reference,
			&purchase.UserID,
			&purchase.BuyerName,
			&purchase.BuyerEmail,
			&purchase.TotalCost,
			&purchase.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, purchase)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	for _, purchase := range purchases {
		purchase.Lines, err = r.getLines(purchase.ID)
		if err != nil {
			return nil, err
		}
	}

	return purchases, nil
}

// Cancel reverses a committed purchase: every line's quantity is restored to
// its event's availability, then the lines and the purchase are deleted, all
// in one transaction. Partial restoration is not acceptable.
func (r *PurchaseRepository) Cancel(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow("SELECT EXISTS(SELECT 1 FROM purchases WHERE id = $1 FOR UPDATE)", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check purchase: %w", err)
	}
	if !exists {
		return models.ErrPurchaseNotFound
	}

	rows, err := tx.Query("SELECT event_id, quantity FROM purchase_lines WHERE purchase_id = $1 ORDER BY id", id)
	if err != nil {
		return fmt.Errorf("failed to get purchase lines: %w", err)
	}

	type restore struct {
		eventID  int
		quantity int
	}
	var restores []restore
	for rows.Next() {
		var rest restore
		if err = rows.Scan(&rest.eventID, &rest.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan purchase line: %w", err)
		}
		restores = append(restores, rest)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating purchase lines: %w", err)
	}
	rows.Close()

	for _, rest := range restores {
		if err = incrementAvailability(tx, rest.eventID, rest.quantity); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM purchase_lines WHERE purchase_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete purchase lines: %w", err)
	}

	if _, err = tx.Exec("DELETE FROM purchases WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}

	return nil
}

func (r *PurchaseRepository) getLines(purchaseID int) ([]models.PurchaseLine, error) {
	rows, err := r.db.Query(`
		SELECT pl.id, pl.purchase_id, pl.event_id, COALESCE(e.title, ''), pl.quantity
		FROM purchase_lines pl
		LEFT JOIN events e ON pl.event_id = e.id
		WHERE pl.purchase_id = $1
		ORDER BY pl.id`, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase lines: %w", err)
	}
	defer rows.Close()

	var lines []models.PurchaseLine
	for rows.Next() {
		var line models.PurchaseLine
		err = rows.Scan(&line.ID, &line.PurchaseID, &line.EventID, &line.EventTitle, &line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase line: %w", err)
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase lines: %w", err)
	}

	return lines, nil
}

// GetPurchaseCount returns the total number of purchases
func (r *PurchaseRepository) GetPurchaseCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM purchases").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get purchase count: %w", err)
	}
	return count, nil
}

// GetTotalRevenue returns the total revenue across all purchases, in cents
func (r *PurchaseRepository) GetTotalRevenue() (int, error) {
	var revenue int
	err := r.db.QueryRow("SELECT COALESCE(SUM(total_cost), 0) FROM purchases").Scan(&revenue)
	if err != nil {
		return 0, fmt.Errorf("failed to get total revenue: %w", err)
	}
	return revenue, nil
}
