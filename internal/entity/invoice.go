package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// DefaultTaxRatePercent is the flat UAE VAT rate applied to invoices and
// orders unless the draft specifies another rate.
var DefaultTaxRatePercent = decimal.New(5, 0)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}

	return false
}

// LineItem is one product line on an invoice. Quantity is kept as parsed even
// when non-positive; such lines block submission but not computation.
type LineItem struct {
	ProductID       uuid.UUID
	Description     string
	UnitPrice       decimal.Decimal
	Quantity        int64
	DiscountPercent decimal.Decimal
}

// Gross returns unit price multiplied by quantity, before discount.
func (li LineItem) Gross() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.New(li.Quantity, 0))
}

// Discount returns the absolute discount amount for the line.
//
//nolint:mnd
func (li LineItem) Discount() decimal.Decimal {
	if li.DiscountPercent.IsZero() {
		return decimal.Zero
	}

	return li.Gross().Mul(li.DiscountPercent).Div(decimal.New(100, 0))
}

// Net returns the line amount after discount.
func (li LineItem) Net() decimal.Decimal {
	return li.Gross().Sub(li.Discount())
}

// InvoiceDraft is the client-side working state of an invoice being composed.
// Totals are never stored on the draft; they are recomputed from the items and
// shipping on every read.
type InvoiceDraft struct {
	CustomerID      uuid.UUID // uuid.Nil until a customer is selected
	Items           []LineItem
	ShippingCharges decimal.Decimal
	TaxRatePercent  decimal.Decimal
}

// InvoiceTotals is derived, never mutated directly.
type InvoiceTotals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
}

// Invoice is an immutable, persisted invoice. Totals are folded in once at
// submission time by the calculator; line items stay attached for audit and
// recomputation.
type Invoice struct {
	ID              uuid.UUID
	Number          int64 // global invoice number, filled by the DB
	CustomerID      uuid.UUID
	Items           []LineItem
	ShippingCharges decimal.Decimal
	TaxRatePercent  decimal.Decimal
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	Total           decimal.Decimal
	Status          InvoiceStatus
	DueAt           time.Time
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type InvoiceFilter struct {
	CustomerID *uuid.UUID
	Status     *InvoiceStatus
	CreatedAt  *string
	Page       uint64
	Limit      uint64
	SortBy     InvoiceSortCol
	OrderBy    OrderByCol
}

type InvoiceSortCol string

const (
	InvoiceSortByNumber    InvoiceSortCol = "number"
	InvoiceSortByTotal     InvoiceSortCol = "total"
	InvoiceSortByCreatedAt InvoiceSortCol = "created_at"
)

func (c InvoiceSortCol) String() string {
	return string(c)
}

func (c InvoiceSortCol) IsValid() bool {
	switch c {
	case InvoiceSortByNumber, InvoiceSortByTotal, InvoiceSortByCreatedAt:
		return true
	}

	return false
}

type OrderByCol string

const (
	DESC OrderByCol = "desc"
	ASC  OrderByCol = "asc"
)

func (o OrderByCol) String() string {
	return string(o)
}

func (o OrderByCol) IsValid() bool {
	switch o {
	case DESC, ASC:
		return true
	}

	return false
}
