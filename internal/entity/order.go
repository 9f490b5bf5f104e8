package entity

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Validate() error {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return nil
	default:
		return fmt.Errorf("%w: unknown order status %s", ErrInvalidArgument, s)
	}
}

// CanTransitionTo reports whether the order may move to the given status.
// Delivered and cancelled orders are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}

	return false
}

type OrderItem struct {
	ProductID uuid.UUID
	SKU       string
	UnitPrice decimal.Decimal
	Quantity  int64
}

func (oi OrderItem) Amount() decimal.Decimal {
	return oi.UnitPrice.Mul(decimal.New(oi.Quantity, 0))
}

type Order struct {
	ID              uuid.UUID
	Number          int64 // filled by the DB
	CustomerID      uuid.UUID
	Items           []OrderItem
	ShippingCharges decimal.Decimal
	Total           decimal.Decimal
	Status          OrderStatus
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderFilter struct {
	CustomerID *uuid.UUID
	Status     *OrderStatus
	Page       uint64
	Limit      uint64
	OrderBy    OrderByCol
}
