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

	"github.com/kmansoor/sims-backend/internal/entity"
)

type CreateProductRequest struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int64           `json:"stock"`
}

type UpdateProductRequest struct {
	Name      *string          `json:"name,omitempty"`
	Category  *string          `json:"category,omitempty"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Stock     *int64           `json:"stock,omitempty"`
	Active    *bool            `json:"active,omitempty"`
}

type ProductResponse struct {
	ID        string `json:"id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	UnitPrice string `json:"unitPrice"`
	Stock     int64  `json:"stock"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

func toProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID.String(),
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  p.Category,
		UnitPrice: p.UnitPrice.StringFixed(2),
		Stock:     p.Stock,
		Active:    p.Active,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateProduct adds a product to the catalogue
// @Summary Create product
// @Description Adds a product to the catalogue; unit price is in AED
// @Tags products
// @Accept json
// @Produce json
// @Param CreateProductRequest body CreateProductRequest true "Product"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "SKU already exists"
// @Router /v1/products [post]
// @Security BearerAuth
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProductRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	product, err := h.s.CreateProduct(ctx, entity.Product{
		SKU:       req.SKU,
		Name:      req.Name,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		Stock:     req.Stock,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "validation failed")
		case errors.Is(err, entity.ErrAlreadyExists):
			SendJSONErr(ctx, w, http.StatusConflict, err, "sku already exists")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to create product")
		}

		return
	}

	SendJSON(ctx, w, http.StatusCreated, toProductResponse(product))
}

// GetProduct returns a product by id
// @Summary Get product
// @Description Returns a product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse "Product not found"
// @Router /v1/products/{id} [get]
// @Security BearerAuth
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid product id")
		return
	}

	product, err := h.s.Product(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendJSONErr(ctx, w, http.StatusNotFound, err, "product not found")
		} else {
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to get product")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, toProductResponse(product))
}

// ListProducts returns products matching the query filters
// @Summary List products
// @Description Returns products matching the query filters with the total match count
// @Tags products
// @Produce json
// @Param sku query string false "Filter by exact SKU"
// @Param category query string false "Filter by category"
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page, 1-based"
// @Param limit query int false "Page size, max 100"
// @Param sort_by query string false "sku, name, unit_price or created_at"
// @Param order_by query string false "asc or desc"
// @Success 200 {object} ProductListResponse
// @Router /v1/products [get]
// @Security BearerAuth
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, total, err := h.s.Products(ctx, parseProductFilter(r.URL.Query()))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to list products")
		return
	}

	resp := ProductListResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Total:    total,
	}
	for _, p := range products {
		resp.Products = append(resp.Products, toProductResponse(p))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

// UpdateProduct partially updates a product
// @Summary Update product
// @Description Partially updates a product; absent fields are left unchanged
// @Tags products
// @Accept json
// @Param id path string true "Product ID"
// @Param UpdateProductRequest body UpdateProductRequest true "Fields to update"
// @Success 204
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Router /v1/products/{id} [patch]
// @Security BearerAuth
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid product id")
		return
	}

	var req UpdateProductRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	err = h.s.UpdateProduct(ctx, id, entity.ProductUpdate{
		Name:      req.Name,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		Stock:     req.Stock,
		Active:    req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "validation failed")
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, "product not found")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to update product")
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct removes a product from the catalogue
// @Summary Delete product
// @Description Removes a product from the catalogue
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Product not found"
// @Router /v1/products/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid product id")
		return
	}

	err = h.s.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendJSONErr(ctx, w, http.StatusNotFound, err, "product not found")
		} else {
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to delete product")
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseProductFilter(q url.Values) entity.ProductFilter {
	f := entity.ProductFilter{
		SortBy:  entity.ProductSortByCreatedAt,
		OrderBy: entity.DESC,
	}
	f.Page, f.Limit = parsePagination(q)

	if sku := q.Get("sku"); sku != "" {
		f.SKU = &sku
	}

	if category := q.Get("category"); category != "" {
		f.Category = &category
	}

	if active, err := strconv.ParseBool(q.Get("active")); err == nil {
		f.Active = &active
	}

	if sortBy := entity.ProductSortCol(q.Get("sort_by")); sortBy.IsValid() {
		f.SortBy = sortBy
	}

	if orderBy := entity.OrderByCol(q.Get("order_by")); orderBy.IsValid() {
		f.OrderBy = orderBy
	}

	return f
}
