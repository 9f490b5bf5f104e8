package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/entity"
)

type OrderItemParams struct {
	ProductID uuid.UUID
	Quantity  int64
}

type CreateOrderParams struct {
	CustomerID      uuid.UUID
	Items           []OrderItemParams
	ShippingCharges decimal.Decimal
}

// CreateOrder prices the requested items at their current catalogue price and
// stores the order with the matching stock decrements.
func (s *Service) CreateOrder(ctx context.Context, params CreateOrderParams) (entity.Order, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.Order{}, err
	}

	if len(params.Items) == 0 {
		return entity.Order{}, fmt.Errorf("%w: at least one item required", entity.ErrInvalidArgument)
	}

	_, err = s.repo.Customer(ctx, params.CustomerID)
	if err != nil {
		return entity.Order{}, fmt.Errorf("get customer %s: %w", params.CustomerID, err)
	}

	shipping := positiveOrZero(params.ShippingCharges)
	total := shipping

	items := make([]entity.OrderItem, 0, len(params.Items))

	for _, in := range params.Items {
		if in.Quantity <= 0 {
			return entity.Order{}, fmt.Errorf("%w: quantity must be positive", entity.ErrInvalidArgument)
		}

		p, err := s.repo.Product(ctx, in.ProductID)
		if err != nil {
			return entity.Order{}, fmt.Errorf("get product %s: %w", in.ProductID, err)
		}

		if !p.Active {
			return entity.Order{}, fmt.Errorf("%w: product %s is not active", entity.ErrInvalidArgument, p.SKU)
		}

		oi := entity.OrderItem{
			ProductID: p.ID,
			SKU:       p.SKU,
			UnitPrice: p.UnitPrice,
			Quantity:  in.Quantity,
		}

		items = append(items, oi)
		total = total.Add(oi.Amount())
	}

	now := time.Now()

	o := entity.Order{
		ID:              uuid.Must(uuid.NewV4()),
		Number:          0, // Fill in by CreateOrder method.
		CustomerID:      params.CustomerID,
		Items:           items,
		ShippingCharges: shipping,
		Total:           total,
		Status:          entity.OrderStatusPending,
		CreatedBy:       user.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	o, err = s.repo.CreateOrder(ctx, o)
	if err != nil {
		return entity.Order{}, fmt.Errorf("create order: %w", err)
	}

	slog.InfoContext(ctx, "order created",
		"order_id", o.ID, "number", o.Number, "customer_id", o.CustomerID, "total", o.Total)

	return o, nil
}

func (s *Service) Order(ctx context.Context, id uuid.UUID) (entity.Order, error) {
	o, err := s.repo.Order(ctx, id)
	if err != nil {
		return entity.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}

	return o, nil
}

func (s *Service) Orders(ctx context.Context, f entity.OrderFilter) ([]entity.Order, int, error) {
	orders, count, err := s.repo.Orders(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("get orders: %w", err)
	}

	return orders, count, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	err := status.Validate()
	if err != nil {
		return err
	}

	o, err := s.repo.Order(ctx, id)
	if err != nil {
		return fmt.Errorf("get order %s: %w", id, err)
	}

	if !o.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: order %s cannot move from %q to %q",
			entity.ErrInvalidArgument, id, o.Status, status)
	}

	err = s.repo.UpdateOrderStatus(ctx, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update order %s status to %q: %w", id, status, err)
	}

	return nil
}
