package billing_test

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/billing"
	"github.com/kmansoor/sims-backend/internal/entity"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name          string
		items         []entity.LineItem
		shipping      string
		taxRate       string
		wantSubtotal  string
		wantTaxAmount string
		wantTotal     string
	}{
		{
			name: "two identical lines 10 percent tax",
			items: []entity.LineItem{
				{UnitPrice: d("5500"), Quantity: 2},
				{UnitPrice: d("5500"), Quantity: 2},
			},
			shipping:      "0",
			taxRate:       "10",
			wantSubtotal:  "22000.00",
			wantTaxAmount: "2200.00",
			wantTotal:     "24200.00",
		},
		{
			name: "single line 10 percent tax",
			items: []entity.LineItem{
				{UnitPrice: d("5500"), Quantity: 2},
			},
			shipping:      "0",
			taxRate:       "10",
			wantSubtotal:  "11000.00",
			wantTaxAmount: "1100.00",
			wantTotal:     "12100.00",
		},
		{
			name: "discounted line with shipping",
			items: []entity.LineItem{
				{UnitPrice: d("100"), Quantity: 3, DiscountPercent: d("10")},
			},
			shipping:      "20",
			taxRate:       "5",
			wantSubtotal:  "270.00",
			wantTaxAmount: "13.50",
			wantTotal:     "303.50",
		},
		{
			name:          "no items only shipping",
			items:         nil,
			shipping:      "20",
			taxRate:       "5",
			wantSubtotal:  "0.00",
			wantTaxAmount: "0.00",
			wantTotal:     "20.00",
		},
		{
			name: "zero tax rate",
			items: []entity.LineItem{
				{UnitPrice: d("99.99"), Quantity: 1},
			},
			shipping:      "0",
			taxRate:       "0",
			wantSubtotal:  "99.99",
			wantTaxAmount: "0.00",
			wantTotal:     "99.99",
		},
		{
			name: "negative quantity reduces subtotal",
			items: []entity.LineItem{
				{UnitPrice: d("100"), Quantity: 5},
				{UnitPrice: d("100"), Quantity: -2},
			},
			shipping:      "0",
			taxRate:       "5",
			wantSubtotal:  "300.00",
			wantTaxAmount: "15.00",
			wantTotal:     "315.00",
		},
		{
			name: "fractional tax keeps exact value",
			items: []entity.LineItem{
				{UnitPrice: d("0.10"), Quantity: 3},
			},
			shipping:      "0",
			taxRate:       "5",
			wantSubtotal:  "0.30",
			wantTaxAmount: "0.02",
			wantTotal:     "0.32",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := billing.ComputeTotals(tt.items, d(tt.shipping), d(tt.taxRate))

			if got.Subtotal.StringFixed(2) != tt.wantSubtotal {
				t.Errorf("Subtotal = %s, want %s", got.Subtotal, tt.wantSubtotal)
			}
			if got.TaxAmount.StringFixed(2) != tt.wantTaxAmount {
				t.Errorf("TaxAmount = %s, want %s", got.TaxAmount, tt.wantTaxAmount)
			}
			if got.Shipping.Cmp(d(tt.shipping)) != 0 {
				t.Errorf("Shipping = %s, want %s", got.Shipping, tt.shipping)
			}
			if got.Total.StringFixed(2) != tt.wantTotal {
				t.Errorf("Total = %s, want %s", got.Total, tt.wantTotal)
			}
		})
	}
}

func TestComputeTotals_Idempotent(t *testing.T) {
	t.Parallel()

	items := []entity.LineItem{
		{ProductID: uuid.Must(uuid.NewV4()), UnitPrice: d("123.45"), Quantity: 7, DiscountPercent: d("12.5")},
	}

	first := billing.ComputeTotals(items, d("15"), d("5"))
	second := billing.ComputeTotals(items, d("15"), d("5"))

	if first.Total.Cmp(second.Total) != 0 {
		t.Errorf("recomputation changed total: %s vs %s", first.Total, second.Total)
	}
	if items[0].UnitPrice.Cmp(d("123.45")) != 0 || items[0].Quantity != 7 {
		t.Error("ComputeTotals mutated its input")
	}
}

func TestDraftTotals(t *testing.T) {
	t.Parallel()

	draft := entity.InvoiceDraft{
		CustomerID: uuid.Must(uuid.NewV4()),
		Items: []entity.LineItem{
			{UnitPrice: d("100"), Quantity: 3, DiscountPercent: d("10")},
		},
		ShippingCharges: d("20"),
		TaxRatePercent:  d("5"),
	}

	got := billing.DraftTotals(draft)

	if got.Total.StringFixed(2) != "303.50" {
		t.Errorf("Total = %s, want 303.50", got.Total)
	}
}
