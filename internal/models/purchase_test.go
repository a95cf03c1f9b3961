package models

import (
	"testing"
)

func TestPurchaseCreateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     PurchaseCreateRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			req:     PurchaseCreateRequest{UserID: 1, BuyerName: "Jane Doe", BuyerEmail: "jane@example.com"},
			wantErr: false,
		},
		{
			name:    "missing buyer",
			req:     PurchaseCreateRequest{BuyerName: "Jane Doe", BuyerEmail: "jane@example.com"},
			wantErr: true,
			errMsg:  "buyer is required",
		},
		{
			name:    "missing name",
			req:     PurchaseCreateRequest{UserID: 1, BuyerName: "  ", BuyerEmail: "jane@example.com"},
			wantErr: true,
			errMsg:  "buyer name is required",
		},
		{
			name:    "missing email",
			req:     PurchaseCreateRequest{UserID: 1, BuyerName: "Jane Doe"},
			wantErr: true,
			errMsg:  "buyer email is required",
		},
		{
			name:    "invalid email",
			req:     PurchaseCreateRequest{UserID: 1, BuyerName: "Jane Doe", BuyerEmail: "not-an-email"},
			wantErr: true,
			errMsg:  "buyer email format is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err.Error() != tt.errMsg {
					t.Errorf("error = %q, want %q", err.Error(), tt.errMsg)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPurchase_TotalQuantity(t *testing.T) {
	p := Purchase{Lines: []PurchaseLine{
		{EventID: 1, Quantity: 2},
		{EventID: 3, Quantity: 1},
	}}
	if got := p.TotalQuantity(); got != 3 {
		t.Errorf("total quantity = %d, want 3", got)
	}
}

func TestPurchase_TotalCostInCurrency(t *testing.T) {
	p := Purchase{TotalCost: 4000}
	if got := p.TotalCostInCurrency(); got != 40.0 {
		t.Errorf("total in currency = %v, want 40.0", got)
	}
}
