package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/entity"
	"github.com/kmansoor/sims-backend/internal/service"
)

// @title SIMS API
// @version 1.0
// @description Business management API: customers, products, invoices, orders, dashboard.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Api-Key

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/handler.go -package=mocks

type Service interface {
	Login(ctx context.Context, email, password string) (string, entity.User, error)

	CreateCustomer(ctx context.Context, c entity.Customer) (entity.Customer, error)
	Customer(ctx context.Context, id uuid.UUID) (entity.Customer, error)
	Customers(ctx context.Context, f entity.CustomerFilter) ([]entity.Customer, int, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, upd entity.CustomerUpdate) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, p entity.Product) (entity.Product, error)
	Product(ctx context.Context, id uuid.UUID) (entity.Product, error)
	Products(ctx context.Context, f entity.ProductFilter) ([]entity.Product, int, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, upd entity.ProductUpdate) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	SubmitInvoice(ctx context.Context, params service.SubmitInvoiceParams) (entity.Invoice, error)
	PreviewTotals(params service.SubmitInvoiceParams) (entity.InvoiceTotals, []string)
	Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error)
	Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, error)
	InvoicePaid(ctx context.Context, number int64, amount decimal.Decimal) error

	CreateOrder(ctx context.Context, params service.CreateOrderParams) (entity.Order, error)
	Order(ctx context.Context, id uuid.UUID) (entity.Order, error)
	Orders(ctx context.Context, f entity.OrderFilter) ([]entity.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	DashboardSummary(ctx context.Context) (entity.DashboardSummary, error)
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s: s,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login authenticates a user and returns a bearer token
// @Summary Login
// @Description Authenticates a user and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param LoginRequest body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "invalid JSON")
		return
	}

	token, user, err := h.s.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "invalid credentials")
		} else {
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "login failed")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, LoginResponse{
		Token: token,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
	})
}

// HealthHandler returns service health status.
// @Summary Health check
// @Description Health check
// @Tags health
// @Accept text/plain
// @Produce text/plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("OK\n"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "not healthy")
		return
	}
}

type DashboardSummaryResponse struct {
	Customers       int64  `json:"customers"`
	Products        int64  `json:"products"`
	Invoices        int64  `json:"invoices"`
	Orders          int64  `json:"orders"`
	Revenue         string `json:"revenue"`
	Outstanding     string `json:"outstanding"`
	OverdueInvoices int64  `json:"overdueInvoices"`
	PendingOrders   int64  `json:"pendingOrders"`
	GeneratedAt     string `json:"generatedAt"`
}

// DashboardSummary returns the headline numbers for the dashboard
// @Summary Dashboard summary
// @Description Customer/product/invoice/order counts plus revenue and outstanding amounts in AED
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardSummaryResponse
// @Failure 500 {object} ErrorResponse "Failed to build summary"
// @Router /dashboard/summary [get]
// @Security BearerAuth
func (h *Handler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.s.DashboardSummary(ctx)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "failed to build summary")
		return
	}

	SendJSON(ctx, w, http.StatusOK, DashboardSummaryResponse{
		Customers:       summary.Customers,
		Products:        summary.Products,
		Invoices:        summary.Invoices,
		Orders:          summary.Orders,
		Revenue:         summary.Revenue.StringFixed(2),
		Outstanding:     summary.Outstanding.StringFixed(2),
		OverdueInvoices: summary.OverdueInvoices,
		PendingOrders:   summary.PendingOrders,
		GeneratedAt:     summary.GeneratedAt.Format(time.RFC3339),
	})
}

const (
	defaultLimit uint64 = 10
	maxLimit     uint64 = 100
	defaultPage  uint64 = 1
)

func parsePagination(url url.Values) (page, limit uint64) {
	limit, err := strconv.ParseUint(url.Get("limit"), 10, 64)
	if err != nil {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	page, err = strconv.ParseUint(url.Get("page"), 10, 64)
	if err != nil || page == 0 {
		page = defaultPage
	}

	return page, limit
}
