package billing

import (
	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/entity"
)

// Validation failure messages, in the order ValidateDraft emits them. The
// first three are fixed and their order is part of the contract with the UI.
const (
	MsgCustomerRequired = "customer required"
	MsgItemRequired     = "at least one item required"
	MsgPositiveQuantity = "all items must have positive quantity"
	MsgDiscountRange    = "discount percent must be between 0 and 100"
	MsgNegativeTotal    = "invoice total must not be negative"
)

var oneHundred = decimal.New(100, 0)

// ValidateDraft checks whether a draft may be submitted. It returns nil when
// the draft is valid, otherwise an ordered, non-empty list of human-readable
// failure messages. Messages that concern line items are aggregated: one
// message per rule, not one per offending line.
//
// ValidateDraft is purely advisory. It never mutates the draft, performs no
// I/O, and the caller decides whether submission proceeds.
func ValidateDraft(d entity.InvoiceDraft) []string {
	var failures []string

	if d.CustomerID.IsNil() {
		failures = append(failures, MsgCustomerRequired)
	}

	if len(d.Items) == 0 {
		failures = append(failures, MsgItemRequired)
	}

	for _, li := range d.Items {
		if li.Quantity <= 0 {
			failures = append(failures, MsgPositiveQuantity)
			break
		}
	}

	for _, li := range d.Items {
		if li.DiscountPercent.IsNegative() || li.DiscountPercent.GreaterThan(oneHundred) {
			failures = append(failures, MsgDiscountRange)
			break
		}
	}

	// Re-derive the totals so a draft that passes the field checks cannot
	// still submit a negative grand total (over-discounted lines).
	if totals := DraftTotals(d); totals.Total.IsNegative() {
		failures = append(failures, MsgNegativeTotal)
	}

	return failures
}
