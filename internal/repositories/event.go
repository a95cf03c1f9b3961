package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"eventsphere/internal/models"

	"github.com/lib/pq"
)

// EventRepository handles event data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// EventSearchFilters represents filters for event search
type EventSearchFilters struct {
	Search      string // Title substring search
	CategoryID  int    // Filter by category
	OrganizerID int    // Filter by organizer
	SortBy      string // "title", "date", "price"
	Limit       int    // Number of results to return
	Offset      int    // Number of results to skip
}

const eventColumns = `id, title, description, event_date, ticket_price, available_tickets, category_id, organizer_id, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.TicketPrice,
		&event.AvailableTickets,
		&event.CategoryID,
		&event.OrganizerID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create creates a new event
func (r *EventRepository) Create(req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO events (title, description, event_date, ticket_price, available_tickets, category_id, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + eventColumns

	now := time.Now()
	event, err := scanEvent(r.db.QueryRow(
		query,
		req.Title,
		req.Description,
		req.EventDate,
		req.TicketPrice,
		req.AvailableTickets,
		req.CategoryID,
		req.OrganizerID,
		now,
		now,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// ListByIDs retrieves the events with the given IDs
func (r *EventRepository) ListByIDs(ids []int) ([]*models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ANY($1)`

	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// Update updates an event
func (r *EventRepository) Update(id int, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE events
		SET title = $2, description = $3, event_date = $4, ticket_price = $5, available_tickets = $6, category_id = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + eventColumns

	event, err := scanEvent(r.db.QueryRow(
		query,
		id,
		req.Title,
		req.Description,
		req.EventDate,
		req.TicketPrice,
		req.AvailableTickets,
		req.CategoryID,
		time.Now(),
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

// Delete deletes an event. Events with committed purchase lines cannot be
// deleted.
func (r *EventRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lineCount int
	err = tx.QueryRow("SELECT COUNT(*) FROM purchase_lines WHERE event_id = $1", id).Scan(&lineCount)
	if err != nil {
		return fmt.Errorf("failed to check purchase lines: %w", err)
	}

	if lineCount > 0 {
		return fmt.Errorf("cannot delete event with existing purchases")
	}

	result, err := tx.Exec("DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event deletion: %w", err)
	}

	return nil
}

// Search searches for events with filters, sorting and pagination
func (r *EventRepository) Search(filters EventSearchFilters) ([]*models.Event, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argIndex))
		args = append(args, "%"+filters.Search+"%")
		argIndex++
	}

	if filters.CategoryID > 0 {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIndex))
		args = append(args, filters.CategoryID)
		argIndex++
	}

	if filters.OrganizerID > 0 {
		conditions = append(conditions, fmt.Sprintf("organizer_id = $%d", argIndex))
		args = append(args, filters.OrganizerID)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy := "ORDER BY event_date ASC"
	switch filters.SortBy {
	case "title":
		orderBy = "ORDER BY title ASC"
	case "date":
		orderBy = "ORDER BY event_date ASC"
	case "price":
		orderBy = "ORDER BY ticket_price ASC"
	}

	if filters.Limit <= 0 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events %s", whereClause)
	var total int
	err := r.db.QueryRow(countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get event count: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		eventColumns, whereClause, orderBy, argIndex, argIndex+1)

	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating events: %w", err)
	}

	return events, total, nil
}

// DecrementAvailability decrements an event's available tickets, guarded by
// the availability condition so the decrement and the check are one atomic
// statement. Returns InsufficientInventoryError if the event does not have
// qty tickets left.
func (r *EventRepository) DecrementAvailability(eventID, qty int) error {
	return decrementAvailability(r.db, eventID, qty)
}

// IncrementAvailability restores an event's available tickets.
func (r *EventRepository) IncrementAvailability(eventID, qty int) error {
	return incrementAvailability(r.db, eventID, qty)
}

// execer covers both *sql.DB and *sql.Tx so availability updates can run
// standalone or inside a checkout/cancellation transaction.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

func decrementAvailability(e execer, eventID, qty int) error {
	result, err := e.Exec(`
		UPDATE events
		SET available_tickets = available_tickets - $2, updated_at = $3
		WHERE id = $1 AND available_tickets >= $2`,
		eventID, qty, time.Now())
	if err != nil {
		return fmt.Errorf("failed to decrement availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Either the event is gone or it no longer has qty tickets left.
		var title string
		var remaining int
		err = e.QueryRow("SELECT title, available_tickets FROM events WHERE id = $1", eventID).Scan(&title, &remaining)
		if err == sql.ErrNoRows {
			return models.ErrEventNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		return &models.InsufficientInventoryError{EventID: eventID, Title: title, Remaining: remaining}
	}

	return nil
}

func incrementAvailability(e execer, eventID, qty int) error {
	result, err := e.Exec(`
		UPDATE events
		SET available_tickets = available_tickets + $2, updated_at = $3
		WHERE id = $1`,
		eventID, qty, time.Now())
	if err != nil {
		return fmt.Errorf("failed to increment availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	return nil
}
