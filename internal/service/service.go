package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/entity"
	"github.com/kmansoor/sims-backend/internal/repository"
	"github.com/kmansoor/sims-backend/pkg/broker"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository interface {
	CreateCustomer(ctx context.Context, c entity.Customer) error
	Customer(ctx context.Context, id uuid.UUID) (entity.Customer, error)
	Customers(ctx context.Context, f entity.CustomerFilter) ([]entity.Customer, int, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, upd entity.CustomerUpdate, updatedAt time.Time) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, p entity.Product) error
	Product(ctx context.Context, id uuid.UUID) (entity.Product, error)
	Products(ctx context.Context, f entity.ProductFilter) ([]entity.Product, int, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, upd entity.ProductUpdate, updatedAt time.Time) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error)
	Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error)
	InvoiceByNumber(ctx context.Context, number int64) (entity.Invoice, error)
	Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, error)
	UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status entity.InvoiceStatus, updatedAt time.Time) error
	MarkOverdueInvoices(ctx context.Context, now time.Time) (int64, error)

	CreateOrder(ctx context.Context, o entity.Order) (entity.Order, error)
	Order(ctx context.Context, id uuid.UUID) (entity.Order, error)
	Orders(ctx context.Context, f entity.OrderFilter) ([]entity.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, updatedAt time.Time) error

	UserByEmail(ctx context.Context, email string) (entity.User, error)
	DashboardSummary(ctx context.Context) (repository.DashboardCounts, error)
}

type Producer interface {
	SendInvoiceEvent(ctx context.Context, event broker.InvoiceEvent)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Notifier interface {
	NotifyInvoiceCreated(ctx context.Context, inv entity.Invoice) error
}

type Service struct {
	repo     Repository
	producer Producer
	cache    Cache
	notifier Notifier

	jwtSecret []byte
	tokenTTL  time.Duration
}

func New(repo Repository, producer Producer, cache Cache, notifier Notifier, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		producer:  producer,
		cache:     cache,
		notifier:  notifier,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// DraftInvalidError carries the ordered gatekeeper failures for a rejected
// draft. It unwraps to entity.ErrDraftNotValid so callers can branch on it.
type DraftInvalidError struct {
	Failures []string
}

func (e *DraftInvalidError) Error() string {
	return fmt.Sprintf("draft not valid: %s", strings.Join(e.Failures, "; "))
}

func (e *DraftInvalidError) Unwrap() error {
	return entity.ErrDraftNotValid
}

func positiveOrZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}
