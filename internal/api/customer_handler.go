package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/kmansoor/sims-backend/internal/entity"
)

type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	TRN     string `json:"trn,omitempty"`
	Address string `json:"address,omitempty"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Mobile  *string `json:"mobile,omitempty"`
	TRN     *string `json:"trn,omitempty"`
	Address *string `json:"address,omitempty"`
}

type CustomerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	TRN       string `json:"trn,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
}

func toCustomerResponse(c entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Mobile:    c.Mobile,
		TRN:       c.TRN,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateCustomer registers a new customer
// @Summary Create customer
// @Description Registers a new customer. Mobile must be a UAE number (+971XXXXXXXXX), TRN when present a 15-digit number starting with 1.
// @Tags customers
// @Accept json
// @Produce json
// @Param CreateCustomerRequest body CreateCustomerRequest true "Customer"
// @Success 201 {object} CustomerResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Customer already exists"
// @Router /v1/customers [post]
// @Security BearerAuth
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCustomerRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	customer, err := h.s.CreateCustomer(ctx, entity.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
		TRN:     req.TRN,
		Address: req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "validation failed")
		case errors.Is(err, entity.ErrAlreadyExists):
			SendJSONErr(ctx, w, http.StatusConflict, err, "customer already exists")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to create customer")
		}

		return
	}

	SendJSON(ctx, w, http.StatusCreated, toCustomerResponse(customer))
}

// GetCustomer returns a customer by id
// @Summary Get customer
// @Description Returns a customer by id
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} CustomerResponse
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Router /v1/customers/{id} [get]
// @Security BearerAuth
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid customer id")
		return
	}

	customer, err := h.s.Customer(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendJSONErr(ctx, w, http.StatusNotFound, err, "customer not found")
		} else {
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to get customer")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, toCustomerResponse(customer))
}

// ListCustomers returns customers matching the query filters
// @Summary List customers
// @Description Returns customers matching the query filters with the total match count
// @Tags customers
// @Produce json
// @Param name query string false "Filter by name, substring match"
// @Param trn query string false "Filter by exact TRN"
// @Param page query int false "Page, 1-based"
// @Param limit query int false "Page size, max 100"
// @Param sort_by query string false "name or created_at"
// @Param order_by query string false "asc or desc"
// @Success 200 {object} CustomerListResponse
// @Router /v1/customers [get]
// @Security BearerAuth
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customers, total, err := h.s.Customers(ctx, parseCustomerFilter(r.URL.Query()))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to list customers")
		return
	}

	resp := CustomerListResponse{
		Customers: make([]CustomerResponse, 0, len(customers)),
		Total:     total,
	}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, toCustomerResponse(c))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// UpdateCustomer partially updates a customer
// @Summary Update customer
// @Description Partially updates a customer; absent fields are left unchanged
// @Tags customers
// @Accept json
// @Param id path string true "Customer ID"
// @Param UpdateCustomerRequest body UpdateCustomerRequest true "Fields to update"
// @Success 204
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Router /v1/customers/{id} [patch]
// @Security BearerAuth
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid customer id")
		return
	}

	var req UpdateCustomerRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	err = h.s.UpdateCustomer(ctx, id, entity.CustomerUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
		TRN:     req.TRN,
		Address: req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "validation failed")
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, "customer not found")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to update customer")
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCustomer removes a customer
// @Summary Delete customer
// @Description Removes a customer
// @Tags customers
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Router /v1/customers/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid customer id")
		return
	}

	err = h.s.DeleteCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendJSONErr(ctx, w, http.StatusNotFound, err, "customer not found")
		} else {
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to delete customer")
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseCustomerFilter(q url.Values) entity.CustomerFilter {
	f := entity.CustomerFilter{
		SortBy:  entity.CustomerSortByCreatedAt,
		OrderBy: entity.DESC,
	}
	f.Page, f.Limit = parsePagination(q)

	if name := q.Get("name"); name != "" {
		f.Name = &name
	}

	if trn := q.Get("trn"); trn != "" {
		f.TRN = &trn
	}

	if sortBy := entity.CustomerSortCol(q.Get("sort_by")); sortBy.IsValid() {
		f.SortBy = sortBy
	}

	if orderBy := entity.OrderByCol(q.Get("order_by")); orderBy.IsValid() {
		f.OrderBy = orderBy
	}

	return f
}
