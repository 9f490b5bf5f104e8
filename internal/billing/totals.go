package billing

import (
	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/entity"
)

// ComputeTotals folds the line items into invoice totals:
//
//	subtotal  = Σ lineNet, lineNet = gross − gross × discount/100
//	taxAmount = subtotal × taxRatePercent / 100
//	total     = subtotal + taxAmount + shipping
//
// Lines with a non-positive quantity are not skipped; they contribute zero or
// a negative net amount. The submission gate is the only place that rejects
// them, which matches how the composing UI previews a half-edited draft.
// An empty item slice yields subtotal = 0, taxAmount = 0, total = shipping.
//
//nolint:mnd
func ComputeTotals(items []entity.LineItem, shipping, taxRatePercent decimal.Decimal) entity.InvoiceTotals {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.Net())
	}

	taxAmount := decimal.Zero
	if !taxRatePercent.IsZero() {
		taxAmount = subtotal.Mul(taxRatePercent).Div(decimal.New(100, 0))
	}

	return entity.InvoiceTotals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Shipping:  shipping,
		Total:     subtotal.Add(taxAmount).Add(shipping),
	}
}

// DraftTotals recomputes totals for a draft. Recomputation is idempotent:
// the same unmutated draft always yields identical totals.
func DraftTotals(d entity.InvoiceDraft) entity.InvoiceTotals {
	return ComputeTotals(d.Items, d.ShippingCharges, d.TaxRatePercent)
}
