package models

// CartLine represents one event's tickets in the shopping cart. Title,
// UnitPrice and Available are snapshots taken when the line was added or last
// refreshed; they are advisory display values only and are never trusted at
// checkout.
type CartLine struct {
	EventID   int    `json:"event_id"`
	Title     string `json:"title"`
	UnitPrice int    `json:"unit_price"` // in cents
	Quantity  int    `json:"quantity"`
	Available int    `json:"available"` // availability at last refresh
}

// LineTotal returns the line's subtotal in cents.
func (l *CartLine) LineTotal() int {
	return l.Quantity * l.UnitPrice
}

// Cart holds a buyer's tentative ticket selections for the duration of a
// browsing session. Lines are ordered by insertion, at most one per event.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Line returns a pointer to the line for eventID, or nil if absent.
func (c *Cart) Line(eventID int) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].EventID == eventID {
			return &c.Lines[i]
		}
	}
	return nil
}

// RemoveLine removes the line for eventID if present. Removing an absent line
// is a no-op.
func (c *Cart) RemoveLine(eventID int) {
	for i := range c.Lines {
		if c.Lines[i].EventID == eventID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// TotalQuantity returns the sum of all line quantities. Always recomputed,
// never cached.
func (c *Cart) TotalQuantity() int {
	total := 0
	for i := range c.Lines {
		total += c.Lines[i].Quantity
	}
	return total
}

// TotalPrice returns the sum of all line totals in cents.
func (c *Cart) TotalPrice() int {
	total := 0
	for i := range c.Lines {
		total += c.Lines[i].LineTotal()
	}
	return total
}

// IsEmpty returns true if the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear empties the cart. Called only after a successful checkout.
func (c *Cart) Clear() {
	c.Lines = nil
}
