package models

import (
	"testing"
)

func TestCart_Totals(t *testing.T) {
	cart := &Cart{}

	if !cart.IsEmpty() {
		t.Error("new cart should be empty")
	}
	if cart.TotalQuantity() != 0 {
		t.Errorf("empty cart total quantity = %d, want 0", cart.TotalQuantity())
	}
	if cart.TotalPrice() != 0 {
		t.Errorf("empty cart total price = %d, want 0", cart.TotalPrice())
	}

	cart.Lines = append(cart.Lines,
		CartLine{EventID: 1, Title: "C# Fundamentals", UnitPrice: 1599, Quantity: 2, Available: 10},
		CartLine{EventID: 3, Title: "UI/UX Workshop", UnitPrice: 2550, Quantity: 1, Available: 8},
	)

	if cart.IsEmpty() {
		t.Error("cart with lines should not be empty")
	}
	if got := cart.TotalQuantity(); got != 3 {
		t.Errorf("total quantity = %d, want 3", got)
	}
	if got := cart.TotalPrice(); got != 2*1599+2550 {
		t.Errorf("total price = %d, want %d", got, 2*1599+2550)
	}

	// Totals follow line mutations without any explicit recalculation
	cart.Lines[0].Quantity = 5
	if got := cart.TotalQuantity(); got != 6 {
		t.Errorf("total quantity after mutation = %d, want 6", got)
	}
	if got := cart.TotalPrice(); got != 5*1599+2550 {
		t.Errorf("total price after mutation = %d, want %d", got, 5*1599+2550)
	}
}

func TestCart_Line(t *testing.T) {
	cart := &Cart{Lines: []CartLine{
		{EventID: 1, Quantity: 1},
		{EventID: 2, Quantity: 3},
	}}

	line := cart.Line(2)
	if line == nil {
		t.Fatal("expected line for event 2")
	}
	if line.Quantity != 3 {
		t.Errorf("line quantity = %d, want 3", line.Quantity)
	}

	// The returned pointer aliases the cart's backing slice
	line.Quantity = 4
	if cart.Lines[1].Quantity != 4 {
		t.Error("mutation through Line() should be visible in the cart")
	}

	if cart.Line(99) != nil {
		t.Error("expected nil for absent event")
	}
}

func TestCart_RemoveLine(t *testing.T) {
	cart := &Cart{Lines: []CartLine{
		{EventID: 1, Quantity: 1},
		{EventID: 2, Quantity: 2},
	}}

	cart.RemoveLine(1)
	if len(cart.Lines) != 1 || cart.Lines[0].EventID != 2 {
		t.Errorf("unexpected lines after removal: %+v", cart.Lines)
	}

	// Removing an absent line is a no-op
	cart.RemoveLine(99)
	if len(cart.Lines) != 1 {
		t.Errorf("removal of absent line changed the cart: %+v", cart.Lines)
	}
}

func TestCart_Clear(t *testing.T) {
	cart := &Cart{Lines: []CartLine{{EventID: 1, Quantity: 2}}}
	cart.Clear()
	if !cart.IsEmpty() {
		t.Error("cart should be empty after Clear")
	}
}

func TestCartLine_LineTotal(t *testing.T) {
	line := CartLine{UnitPrice: 3000, Quantity: 3}
	if got := line.LineTotal(); got != 9000 {
		t.Errorf("line total = %d, want 9000", got)
	}
}
