package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/billing"
	"github.com/kmansoor/sims-backend/internal/entity"
	"github.com/kmansoor/sims-backend/internal/service"
)

// LineItemRequest carries one invoice line exactly as entered in the
// composing UI. All numeric fields are strings; the server decides what they
// mean.
type LineItemRequest struct {
	ProductID       string `json:"productId"`
	Description     string `json:"description"`
	UnitPrice       string `json:"unitPrice"`
	Quantity        string `json:"quantity"`
	DiscountPercent string `json:"discountPercent"`
}

type SubmitInvoiceRequest struct {
	CustomerID      string            `json:"customerId"`
	Items           []LineItemRequest `json:"items"`
	ShippingCharges string            `json:"shippingCharges"`
	TaxRatePercent  string            `json:"taxRatePercent"`
}

type LineItemResponse struct {
	ProductID       string `json:"productId"`
	Description     string `json:"description"`
	UnitPrice       string `json:"unitPrice"`
	Quantity        int64  `json:"quantity"`
	DiscountPercent string `json:"discountPercent"`
	Amount          string `json:"amount"`
}

type InvoiceTotalsResponse struct {
	Subtotal  string `json:"subtotal"`
	TaxAmount string `json:"taxAmount"`
	Shipping  string `json:"shipping"`
	Total     string `json:"total"`
}

type PreviewTotalsResponse struct {
	Totals   InvoiceTotalsResponse `json:"totals"`
	Failures []string              `json:"failures,omitempty"`
}

type InvoiceResponse struct {
	ID              string             `json:"id"`
	Number          int64              `json:"number"`
	CustomerID      string             `json:"customerId"`
	Items           []LineItemResponse `json:"items"`
	ShippingCharges string             `json:"shippingCharges"`
	TaxRatePercent  string             `json:"taxRatePercent"`
	Subtotal        string             `json:"subtotal"`
	TaxAmount       string             `json:"taxAmount"`
	Total           string             `json:"total"`
	Status          string             `json:"status"`
	DueAt           string             `json:"dueAt"`
	CreatedAt       string             `json:"createdAt"`
}

type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int               `json:"total"`
}

type InvoicePaidRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func toRawItems(items []LineItemRequest) []billing.RawLineItem {
	raw := make([]billing.RawLineItem, 0, len(items))
	for _, it := range items {
		raw = append(raw, billing.RawLineItem{
			ProductID:       it.ProductID,
			Description:     it.Description,
			UnitPrice:       it.UnitPrice,
			Quantity:        it.Quantity,
			DiscountPercent: it.DiscountPercent,
		})
	}

	return raw
}

func toTotalsResponse(t entity.InvoiceTotals) InvoiceTotalsResponse {
	return InvoiceTotalsResponse{
		Subtotal:  t.Subtotal.StringFixed(2),
		TaxAmount: t.TaxAmount.StringFixed(2),
		Shipping:  t.Shipping.StringFixed(2),
		Total:     t.Total.StringFixed(2),
	}
}

func toInvoiceResponse(inv entity.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, 0, len(inv.Items))
	for _, li := range inv.Items {
		items = append(items, LineItemResponse{
			ProductID:       li.ProductID.String(),
			Description:     li.Description,
			UnitPrice:       li.UnitPrice.StringFixed(2),
			Quantity:        li.Quantity,
			DiscountPercent: li.DiscountPercent.String(),
			Amount:          li.Net().StringFixed(2),
		})
	}

	return InvoiceResponse{
		ID:              inv.ID.String(),
		Number:          inv.Number,
		CustomerID:      inv.CustomerID.String(),
		Items:           items,
		ShippingCharges: inv.ShippingCharges.StringFixed(2),
		TaxRatePercent:  inv.TaxRatePercent.String(),
		Subtotal:        inv.Subtotal.StringFixed(2),
		TaxAmount:       inv.TaxAmount.StringFixed(2),
		Total:           inv.Total.StringFixed(2),
		Status:          inv.Status.String(),
		DueAt:           inv.DueAt.Format(time.RFC3339),
		CreatedAt:       inv.CreatedAt.Format(time.RFC3339),
	}
}

// SubmitInvoice validates a draft and persists it as a pending invoice
// @Summary Submit invoice
// @Description Normalizes the draft, validates it and, when valid, stores it as a pending invoice with computed totals
// @Tags invoices
// @Accept json
// @Produce json
// @Param SubmitInvoiceRequest body SubmitInvoiceRequest true "Invoice draft"
// @Success 201 {object} InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON or unknown customer"
// @Failure 422 {object} ErrorResponse "Draft failed validation; failures lists every problem"
// @Router /v1/invoices [post]
// @Security BearerAuth
func (h *Handler) SubmitInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitInvoiceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	invoice, err := h.s.SubmitInvoice(ctx, service.SubmitInvoiceParams{
		CustomerID:      req.CustomerID,
		Items:           toRawItems(req.Items),
		ShippingCharges: req.ShippingCharges,
		TaxRatePercent:  req.TaxRatePercent,
	})
	if err != nil {
		var draftErr *service.DraftInvalidError

		switch {
		case errors.As(err, &draftErr):
			SendJSON(ctx, w, http.StatusUnprocessableEntity, ErrorResponse{
				Message:  "draft is not valid",
				Failures: draftErr.Failures,
			})
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "customer not found")
		case errors.Is(err, entity.ErrUnauthenticated):
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "authentication required")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to submit invoice")
		}

		return
	}

	SendJSON(ctx, w, http.StatusCreated, toInvoiceResponse(invoice))
}

// PreviewInvoiceTotals computes totals for a draft without storing anything
// @Summary Preview invoice totals
// @Description Computes subtotal, tax and total for a draft as it is being edited. Never stores anything; validation failures come back alongside the totals.
// @Tags invoices
// @Accept json
// @Produce json
// @Param SubmitInvoiceRequest body SubmitInvoiceRequest true "Invoice draft"
// @Success 200 {object} PreviewTotalsResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON"
// @Router /v1/invoices/preview [post]
// @Security BearerAuth
func (h *Handler) PreviewInvoiceTotals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitInvoiceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	totals, failures := h.s.PreviewTotals(service.SubmitInvoiceParams{
		CustomerID:      req.CustomerID,
		Items:           toRawItems(req.Items),
		ShippingCharges: req.ShippingCharges,
		TaxRatePercent:  req.TaxRatePercent,
	})

	SendJSON(ctx, w, http.StatusOK, PreviewTotalsResponse{
		Totals:   toTotalsResponse(totals),
		Failures: failures,
	})
}

// GetInvoice returns an invoice with its line items
// @Summary Get invoice
// @Description Returns an invoice with its line items
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} InvoiceResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Router /v1/invoices/{id} [get]
// @Security BearerAuth
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid invoice id")
		return
	}

	invoice, err := h.s.Invoice(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendJSONErr(ctx, w, http.StatusNotFound, err, "invoice not found")
		} else {
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to get invoice")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, toInvoiceResponse(invoice))
}

// ListInvoices returns invoices matching the query filters
// @Summary List invoices
// @Description Returns invoices, without line items, matching the query filters with the total match count
// @Tags invoices
// @Produce json
// @Param customer_id query string false "Filter by customer"
// @Param status query string false "DRAFT, PENDING, PAID, OVERDUE or CANCELLED"
// @Param created_at query string false "Filter by creation date, YYYY-MM-DD"
// @Param page query int false "Page, 1-based"
// @Param limit query int false "Page size, max 100"
// @Param sort_by query string false "number, total or created_at"
// @Param order_by query string false "asc or desc"
// @Success 200 {object} InvoiceListResponse
// @Router /v1/invoices [get]
// @Security BearerAuth
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoices, total, err := h.s.Invoices(ctx, parseInvoiceFilter(r.URL.Query()))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to list invoices")
		return
	}

	resp := InvoiceListResponse{
		Invoices: make([]InvoiceResponse, 0, len(invoices)),
		Total:    total,
	}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, toInvoiceResponse(inv))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// InvoicePaid marks an invoice as paid. Called by the payment gateway
// integration, not by browsers.
// @Summary Mark invoice paid
// @Description Marks a pending or overdue invoice as paid when the received amount matches the invoice total
// @Tags invoices
// @Accept json
// @Param number path int true "Invoice number"
// @Param InvoicePaidRequest body InvoicePaidRequest true "Received amount"
// @Success 204
// @Failure 400 {object} ErrorResponse "Amount mismatch"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Invoice already paid"
// @Router /private/v1/invoices/{number}/paid [post]
// @Security ApiKeyAuth
func (h *Handler) InvoicePaid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid invoice number")
		return
	}

	var req InvoicePaidRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	err = h.s.InvoicePaid(ctx, number, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, "invoice not found")
		case errors.Is(err, entity.ErrAlreadyPaid):
			SendJSONErr(ctx, w, http.StatusConflict, err, "invoice already paid")
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "amount mismatch")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to mark invoice paid")
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseInvoiceFilter(q url.Values) entity.InvoiceFilter {
	f := entity.InvoiceFilter{
		SortBy:  entity.InvoiceSortByCreatedAt,
		OrderBy: entity.DESC,
	}
	f.Page, f.Limit = parsePagination(q)

	if id, err := uuid.FromString(q.Get("customer_id")); err == nil {
		f.CustomerID = &id
	}

	if status := entity.InvoiceStatus(q.Get("status")); status.IsValid() {
		f.Status = &status
	}

	if createdAt := q.Get("created_at"); createdAt != "" {
		f.CreatedAt = &createdAt
	}

	if sortBy := entity.InvoiceSortCol(q.Get("sort_by")); sortBy.IsValid() {
		f.SortBy = sortBy
	}

	if orderBy := entity.OrderByCol(q.Get("order_by")); orderBy.IsValid() {
		f.OrderBy = orderBy
	}

	return f
}
