package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/billing"
	"github.com/kmansoor/sims-backend/internal/entity"
	"github.com/kmansoor/sims-backend/pkg/broker"
)

// Invoices are due 30 days after submission.
const invoiceDuePeriod = 30 * 24 * time.Hour

// SubmitInvoiceParams is a draft as entered in the composing UI. Numeric
// fields are raw strings; the normalizer owns their interpretation.
type SubmitInvoiceParams struct {
	CustomerID      string
	Items           []billing.RawLineItem
	ShippingCharges string
	TaxRatePercent  string
}

// SubmitInvoice runs the full pipeline: normalize the raw lines, gate the
// draft, compute totals, persist the invoice as pending and announce it.
// A rejected draft returns *DraftInvalidError with the ordered failures.
func (s *Service) SubmitInvoice(ctx context.Context, params SubmitInvoiceParams) (entity.Invoice, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.Invoice{}, err
	}

	customerID, err := uuid.FromString(params.CustomerID)
	if err != nil {
		customerID = uuid.Nil // gatekeeper reports this as "customer required"
	}

	draft := entity.InvoiceDraft{
		CustomerID:      customerID,
		Items:           billing.NormalizeAll(params.Items),
		ShippingCharges: positiveOrZero(parseDecimal(params.ShippingCharges)),
		TaxRatePercent:  entity.DefaultTaxRatePercent,
	}

	if params.TaxRatePercent != "" {
		draft.TaxRatePercent = positiveOrZero(parseDecimal(params.TaxRatePercent))
	}

	if failures := billing.ValidateDraft(draft); len(failures) > 0 {
		return entity.Invoice{}, &DraftInvalidError{Failures: failures}
	}

	_, err = s.repo.Customer(ctx, draft.CustomerID)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get customer %s: %w", draft.CustomerID, err)
	}

	totals := billing.DraftTotals(draft)
	now := time.Now()

	// Figures are stored with 2 decimal places. Rounding each one before
	// summing keeps total = subtotal + tax + shipping in storage, and the
	// payment callback matches against the stored total.
	shipping := draft.ShippingCharges.Round(2)
	subtotal := totals.Subtotal.Round(2)
	taxAmount := totals.TaxAmount.Round(2)

	inv := entity.Invoice{
		ID:              uuid.Must(uuid.NewV4()),
		Number:          0, // Fill in by CreateInvoice method.
		CustomerID:      draft.CustomerID,
		Items:           draft.Items,
		ShippingCharges: shipping,
		TaxRatePercent:  draft.TaxRatePercent,
		Subtotal:        subtotal,
		TaxAmount:       taxAmount,
		Total:           subtotal.Add(taxAmount).Add(shipping),
		Status:          entity.InvoiceStatusPending,
		DueAt:           now.Add(invoiceDuePeriod),
		CreatedBy:       user.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	inv, err = s.repo.CreateInvoice(ctx, inv)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	s.producer.SendInvoiceEvent(ctx, broker.InvoiceEvent{
		Type:       broker.EventInvoiceCreated,
		InvoiceID:  inv.ID,
		Number:     inv.Number,
		CustomerID: inv.CustomerID,
		Total:      inv.Total.StringFixed(2),
		OccurredAt: now,
	})

	err = s.notifier.NotifyInvoiceCreated(ctx, inv)
	if err != nil {
		slog.WarnContext(ctx, "invoice webhook delivery failed", "invoice_id", inv.ID, "error", err)
	}

	slog.InfoContext(ctx, "invoice submitted",
		"invoice_id", inv.ID, "number", inv.Number, "customer_id", inv.CustomerID, "total", inv.Total)

	return inv, nil
}

// PreviewTotals recomputes totals for an in-progress draft without touching
// storage. Called on every field change by the composing UI.
func (s *Service) PreviewTotals(params SubmitInvoiceParams) (entity.InvoiceTotals, []string) {
	customerID, err := uuid.FromString(params.CustomerID)
	if err != nil {
		customerID = uuid.Nil
	}

	draft := entity.InvoiceDraft{
		CustomerID:      customerID,
		Items:           billing.NormalizeAll(params.Items),
		ShippingCharges: positiveOrZero(parseDecimal(params.ShippingCharges)),
		TaxRatePercent:  entity.DefaultTaxRatePercent,
	}

	if params.TaxRatePercent != "" {
		draft.TaxRatePercent = positiveOrZero(parseDecimal(params.TaxRatePercent))
	}

	return billing.DraftTotals(draft), billing.ValidateDraft(draft)
}

func (s *Service) Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error) {
	inv, err := s.repo.Invoice(ctx, id)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice %s: %w", id, err)
	}

	return inv, nil
}

func (s *Service) Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, error) {
	invoices, count, err := s.repo.Invoices(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("get invoices: %w", err)
	}

	return invoices, count, nil
}

// InvoicePaid marks a pending invoice paid after a payment callback. The
// reported amount must match the stored total exactly.
func (s *Service) InvoicePaid(ctx context.Context, number int64, amount decimal.Decimal) error {
	inv, err := s.repo.InvoiceByNumber(ctx, number)
	if err != nil {
		return fmt.Errorf("get invoice by number %d: %w", number, err)
	}

	if inv.Status == entity.InvoiceStatusPaid {
		return fmt.Errorf("invoice %q: %w", inv.ID, entity.ErrAlreadyPaid)
	}

	if inv.Total.Cmp(amount) != 0 {
		return fmt.Errorf("%w: invoice %q total %q does not match reported amount %q",
			entity.ErrInvalidArgument, inv.ID, inv.Total, amount)
	}

	err = s.repo.UpdateInvoiceStatus(ctx, inv.ID, entity.InvoiceStatusPaid, time.Now())
	if err != nil {
		return fmt.Errorf("update invoice %q status to %q: %w", inv.ID, entity.InvoiceStatusPaid, err)
	}

	s.producer.SendInvoiceEvent(ctx, broker.InvoiceEvent{
		Type:       broker.EventInvoicePaid,
		InvoiceID:  inv.ID,
		Number:     inv.Number,
		CustomerID: inv.CustomerID,
		Total:      inv.Total.StringFixed(2),
		OccurredAt: time.Now(),
	})

	return nil
}

// MarkOverdueInvoices is a background job; pending invoices past due become
// overdue.
func (s *Service) MarkOverdueInvoices(ctx context.Context) error {
	n, err := s.repo.MarkOverdueInvoices(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("mark overdue invoices: %w", err)
	}

	if n > 0 {
		slog.InfoContext(ctx, "invoices marked overdue", "count", n)
	}

	return nil
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return d
}
