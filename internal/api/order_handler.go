package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/entity"
	"github.com/kmansoor/sims-backend/internal/service"
)

type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID      string             `json:"customerId"`
	Items           []OrderItemRequest `json:"items"`
	ShippingCharges decimal.Decimal    `json:"shippingCharges"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderItemResponse struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int64  `json:"quantity"`
	Amount    string `json:"amount"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	Number          int64               `json:"number"`
	CustomerID      string              `json:"customerId"`
	Items           []OrderItemResponse `json:"items"`
	ShippingCharges string              `json:"shippingCharges"`
	Total           string              `json:"total"`
	Status          string              `json:"status"`
	CreatedAt       string              `json:"createdAt"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

func toOrderResponse(o entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, oi := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: oi.ProductID.String(),
			SKU:       oi.SKU,
			UnitPrice: oi.UnitPrice.StringFixed(2),
			Quantity:  oi.Quantity,
			Amount:    oi.Amount().StringFixed(2),
		})
	}

	return OrderResponse{
		ID:              o.ID.String(),
		Number:          o.Number,
		CustomerID:      o.CustomerID.String(),
		Items:           items,
		ShippingCharges: o.ShippingCharges.StringFixed(2),
		Total:           o.Total.StringFixed(2),
		Status:          o.Status.String(),
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
	}
}

// CreateOrder places an order at current catalogue prices
// @Summary Create order
// @Description Places an order; items are priced at the current catalogue price and stock is decremented atomically
// @Tags orders
// @Accept json
// @Produce json
// @Param CreateOrderRequest body CreateOrderRequest true "Order"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Insufficient stock"
// @Router /v1/orders [post]
// @Security BearerAuth
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	customerID, err := uuid.FromString(req.CustomerID)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid customer id")
		return
	}

	items := make([]service.OrderItemParams, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := uuid.FromString(it.ProductID)
		if err != nil {
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid product id")
			return
		}

		items = append(items, service.OrderItemParams{
			ProductID: productID,
			Quantity:  it.Quantity,
		})
	}

	order, err := h.s.CreateOrder(ctx, service.CreateOrderParams{
		CustomerID:      customerID,
		Items:           items,
		ShippingCharges: req.ShippingCharges,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "validation failed")
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "customer or product not found")
		case errors.Is(err, entity.ErrInsufficientStock):
			SendJSONErr(ctx, w, http.StatusConflict, err, "insufficient stock")
		case errors.Is(err, entity.ErrUnauthenticated):
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "authentication required")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to create order")
		}

		return
	}

	SendJSON(ctx, w, http.StatusCreated, toOrderResponse(order))
}

// GetOrder returns an order with its items
// @Summary Get order
// @Description Returns an order with its items
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} ErrorResponse "Order not found"
// @Router /v1/orders/{id} [get]
// @Security BearerAuth
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid order id")
		return
	}

	order, err := h.s.Order(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendJSONErr(ctx, w, http.StatusNotFound, err, "order not found")
		} else {
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to get order")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, toOrderResponse(order))
}

// ListOrders returns orders matching the query filters
// @Summary List orders
// @Description Returns orders, without items, matching the query filters with the total match count
// @Tags orders
// @Produce json
// @Param customer_id query string false "Filter by customer"
// @Param status query string false "PENDING, PROCESSING, SHIPPED, DELIVERED or CANCELLED"
// @Param page query int false "Page, 1-based"
// @Param limit query int false "Page size, max 100"
// @Param order_by query string false "asc or desc"
// @Success 200 {object} OrderListResponse
// @Router /v1/orders [get]
// @Security BearerAuth
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, total, err := h.s.Orders(ctx, parseOrderFilter(r.URL.Query()))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to list orders")
		return
	}

	resp := OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  total,
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, toOrderResponse(o))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// UpdateOrderStatus moves an order along its lifecycle
// @Summary Update order status
// @Description Moves an order to the next status; illegal transitions are rejected
// @Tags orders
// @Accept json
// @Param id path string true "Order ID"
// @Param UpdateOrderStatusRequest body UpdateOrderStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} ErrorResponse "Illegal transition"
// @Failure 404 {object} ErrorResponse "Order not found"
// @Router /v1/orders/{id}/status [post]
// @Security BearerAuth
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid order id")
		return
	}

	var req UpdateOrderStatusRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	err = h.s.UpdateOrderStatus(ctx, id, entity.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "illegal status transition")
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, "order not found")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to update order status")
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseOrderFilter(q url.Values) entity.OrderFilter {
	f := entity.OrderFilter{
		OrderBy: entity.DESC,
	}
	f.Page, f.Limit = parsePagination(q)

	if id, err := uuid.FromString(q.Get("customer_id")); err == nil {
		f.CustomerID = &id
	}

	if status := entity.OrderStatus(q.Get("status")); status.Validate() == nil {
		f.Status = &status
	}

	return f
}
