// Package billing is the authoritative financial core: line-item
// normalization, invoice totals computation and the submission gate. All
// functions are pure and safe to call on every field change; arithmetic uses
// decimal values end to end and rounds only at presentation.
package billing

import (
	"strconv"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/entity"
)

// RawLineItem carries user-entered line fields before validation. Numeric
// fields arrive as strings because the composing UI sends whatever is in the
// input box.
type RawLineItem struct {
	ProductID       string
	Description     string
	UnitPrice       string
	Quantity        string
	DiscountPercent string
}

// Normalize converts a raw line into a LineItem with finite numeric fields.
// Missing or non-numeric unit price and discount default to zero. Quantity is
// parsed as-is and not corrected here; the submission gate rejects lines whose
// quantity is not positive. DiscountPercent is deliberately not clamped to
// [0, 100]; out-of-range values pass through and are flagged at submission.
func Normalize(raw RawLineItem) entity.LineItem {
	productID, err := uuid.FromString(strings.TrimSpace(raw.ProductID))
	if err != nil {
		productID = uuid.Nil
	}

	qty, err := strconv.ParseInt(strings.TrimSpace(raw.Quantity), 10, 64)
	if err != nil {
		qty = 0
	}

	unitPrice := parseAmount(raw.UnitPrice)
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}

	return entity.LineItem{
		ProductID:       productID,
		Description:     strings.TrimSpace(raw.Description),
		UnitPrice:       unitPrice,
		Quantity:        qty,
		DiscountPercent: parseAmount(raw.DiscountPercent),
	}
}

// NormalizeAll keeps the input order; the calculator and the gate both depend
// on it for deterministic output.
func NormalizeAll(raw []RawLineItem) []entity.LineItem {
	items := make([]entity.LineItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, Normalize(r))
	}

	return items
}

// parseAmount returns zero for anything that is not a decimal number.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}

	return d
}
