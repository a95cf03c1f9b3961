package services

import (
	"database/sql"
	"fmt"

	"eventsphere/internal/models"
)

// AnalyticsService handles reporting queries for organizers and admins.
// Organizers see only their own events; admins see everything.
type AnalyticsService struct {
	db *sql.DB
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *sql.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// CategorySales reports tickets sold per category
type CategorySales struct {
	Category    string `json:"category"`
	TicketsSold int    `json:"tickets_sold"`
}

// MonthlyRevenue reports revenue per calendar month, in cents
type MonthlyRevenue struct {
	Year    int `json:"year"`
	Month   int `json:"month"`
	Revenue int `json:"revenue"`
}

// EventSales reports sales for one event
type EventSales struct {
	EventID     int    `json:"event_id"`
	Title       string `json:"title"`
	TicketsSold int    `json:"tickets_sold"`
	Revenue     int    `json:"revenue"`
}

// organizerScope returns the SQL condition limiting results to events the
// user organizes, plus the arguments it needs. Admins have no scope.
func organizerScope(user *models.User, argIndex int) (string, []interface{}) {
	if user.IsAdmin() {
		return "", nil
	}
	return fmt.Sprintf(" AND e.organizer_id = $%d", argIndex), []interface{}{user.ID}
}

// TicketSalesByCategory returns the number of tickets sold per category
func (s *AnalyticsService) TicketSalesByCategory(user *models.User) ([]*CategorySales, error) {
	scope, args := organizerScope(user, 1)
	query := `
		SELECT c.name, COALESCE(SUM(pl.quantity), 0)
		FROM categories c
		LEFT JOIN events e ON e.category_id = c.id` + scope + `
		LEFT JOIN purchase_lines pl ON pl.event_id = e.id
		GROUP BY c.id, c.name
		ORDER BY c.name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales by category: %w", err)
	}
	defer rows.Close()

	var sales []*CategorySales
	for rows.Next() {
		cs := &CategorySales{}
		if err = rows.Scan(&cs.Category, &cs.TicketsSold); err != nil {
			return nil, fmt.Errorf("failed to scan category sales: %w", err)
		}
		sales = append(sales, cs)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category sales: %w", err)
	}

	return sales, nil
}

// RevenueByMonth returns revenue grouped by year and month, oldest first
func (s *AnalyticsService) RevenueByMonth(user *models.User) ([]*MonthlyRevenue, error) {
	scope, args := organizerScope(user, 1)
	query := `
		SELECT
			EXTRACT(YEAR FROM p.created_at)::int AS year,
			EXTRACT(MONTH FROM p.created_at)::int AS month,
			COALESCE(SUM(pl.quantity * e.ticket_price), 0)
		FROM purchase_lines pl
		JOIN purchases p ON pl.purchase_id = p.id
		JOIN events e ON pl.event_id = e.id
		WHERE 1=1` + scope + `
		GROUP BY year, month
		ORDER BY year, month`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue by month: %w", err)
	}
	defer rows.Close()

	var revenue []*MonthlyRevenue
	for rows.Next() {
		mr := &MonthlyRevenue{}
		if err = rows.Scan(&mr.Year, &mr.Month, &mr.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan monthly revenue: %w", err)
		}
		revenue = append(revenue, mr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly revenue: %w", err)
	}

	return revenue, nil
}

// TopEvents returns the best-selling events by tickets sold
func (s *AnalyticsService) TopEvents(user *models.User, limit int) ([]*EventSales, error) {
	if limit <= 0 {
		limit = 5
	}

	scope, args := organizerScope(user, 1)
	query := fmt.Sprintf(`
		SELECT e.id, e.title,
			COALESCE(SUM(pl.quantity), 0) AS tickets_sold,
			COALESCE(SUM(pl.quantity * e.ticket_price), 0) AS revenue
		FROM events e
		LEFT JOIN purchase_lines pl ON pl.event_id = e.id
		WHERE 1=1%s
		GROUP BY e.id, e.title
		ORDER BY tickets_sold DESC
		LIMIT $%d`, scope, len(args)+1)

	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get top events: %w", err)
	}
	defer rows.Close()

	var top []*EventSales
	for rows.Next() {
		es := &EventSales{}
		if err = rows.Scan(&es.EventID, &es.Title, &es.TicketsSold, &es.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan event sales: %w", err)
		}
		top = append(top, es)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top events: %w", err)
	}

	return top, nil
}
