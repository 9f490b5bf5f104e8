package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/entity"
)

func TestLineItem_Net(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name         string
		unitPrice    string
		quantity     int64
		discount     string
		wantGross    string
		wantDiscount string
		wantNet      string
	}{
		{
			name:         "no discount",
			unitPrice:    "5500",
			quantity:     2,
			discount:     "0",
			wantGross:    "11000",
			wantDiscount: "0",
			wantNet:      "11000",
		},
		{
			name:         "ten percent discount",
			unitPrice:    "100",
			quantity:     3,
			discount:     "10",
			wantGross:    "300",
			wantDiscount: "30",
			wantNet:      "270",
		},
		{
			name:         "full discount",
			unitPrice:    "49.99",
			quantity:     1,
			discount:     "100",
			wantGross:    "49.99",
			wantDiscount: "49.99",
			wantNet:      "0",
		},
		{
			name:         "negative quantity gives negative amounts",
			unitPrice:    "100",
			quantity:     -2,
			discount:     "0",
			wantGross:    "-200",
			wantDiscount: "0",
			wantNet:      "-200",
		},
		{
			name:         "fractional price stays exact",
			unitPrice:    "0.10",
			quantity:     3,
			discount:     "0",
			wantGross:    "0.30",
			wantDiscount: "0",
			wantNet:      "0.30",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			li := entity.LineItem{
				UnitPrice:       decimal.RequireFromString(tt.unitPrice),
				Quantity:        tt.quantity,
				DiscountPercent: decimal.RequireFromString(tt.discount),
			}

			if got := li.Gross(); got.Cmp(decimal.RequireFromString(tt.wantGross)) != 0 {
				t.Errorf("Gross() = %s, want %s", got, tt.wantGross)
			}
			if got := li.Discount(); got.Cmp(decimal.RequireFromString(tt.wantDiscount)) != 0 {
				t.Errorf("Discount() = %s, want %s", got, tt.wantDiscount)
			}
			if got := li.Net(); got.Cmp(decimal.RequireFromString(tt.wantNet)) != 0 {
				t.Errorf("Net() = %s, want %s", got, tt.wantNet)
			}
		})
	}
}

func TestInvoiceStatus_IsValid(t *testing.T) {
	t.Parallel()

	valid := []entity.InvoiceStatus{
		entity.InvoiceStatusDraft,
		entity.InvoiceStatusPending,
		entity.InvoiceStatusPaid,
		entity.InvoiceStatusOverdue,
		entity.InvoiceStatusCancelled,
	}

	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("IsValid(%s) = false, want true", s)
		}
	}

	if entity.InvoiceStatus("SENT").IsValid() {
		t.Error("IsValid(SENT) = true, want false")
	}
}
