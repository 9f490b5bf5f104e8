package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/kmansoor/sims-backend/internal/entity"
)

const selectOrder = `
SELECT id, number, customer_id, shipping_charges, total, status, created_by, created_at, updated_at
FROM orders`

// CreateOrder stores the order, its items, and the matching stock decrements
// in one transaction. Stock rows are guarded so a concurrent order cannot
// take the count below zero; in that case ErrInsufficientStock is returned
// and nothing is written.
func (r *Repository) CreateOrder(ctx context.Context, o entity.Order) (entity.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entity.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
	INSERT INTO orders (id, customer_id, shipping_charges, total, status, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING number
	`

	err = tx.QueryRow(ctx, q,
		o.ID,
		o.CustomerID,
		o.ShippingCharges,
		o.Total,
		o.Status,
		o.CreatedBy,
		o.CreatedAt,
		o.UpdatedAt,
	).Scan(&o.Number)
	if err != nil {
		return entity.Order{}, fmt.Errorf("insert order: %w", err)
	}

	const itemQ = `
	INSERT INTO order_items (order_id, position, product_id, sku, unit_price, quantity)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	const stockQ = `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`

	for i, oi := range o.Items {
		_, err = tx.Exec(ctx, itemQ, o.ID, i, oi.ProductID, oi.SKU, oi.UnitPrice, oi.Quantity)
		if err != nil {
			return entity.Order{}, fmt.Errorf("insert order item %d: %w", i, err)
		}

		result, err := tx.Exec(ctx, stockQ, oi.Quantity, oi.ProductID)
		if err != nil {
			return entity.Order{}, fmt.Errorf("decrement stock for %s: %w", oi.SKU, err)
		}

		if result.RowsAffected() == 0 {
			return entity.Order{}, fmt.Errorf("product %s: %w", oi.SKU, entity.ErrInsufficientStock)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return entity.Order{}, fmt.Errorf("commit tx: %w", err)
	}

	return o, nil
}

func (r *Repository) Order(ctx context.Context, id uuid.UUID) (entity.Order, error) {
	q := selectOrder + " WHERE id = $1"

	o, err := scanOrder(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return entity.Order{}, err
	}

	o.Items, err = r.orderItems(ctx, o.ID)
	if err != nil {
		return entity.Order{}, fmt.Errorf("load order items: %w", err)
	}

	return o, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, updatedAt time.Time) error {
	const q = `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, q, status, updatedAt, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) Orders(ctx context.Context, f entity.OrderFilter) ([]entity.Order, int, error) {
	stmt := sq.Select(
		"id",
		"number",
		"customer_id",
		"shipping_charges",
		"total",
		"status",
		"created_by",
		"created_at",
		"updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("orders").PlaceholderFormat(sq.Dollar)

	if f.CustomerID != nil {
		stmt = stmt.Where(sq.Eq{"customer_id": *f.CustomerID})
	}

	if f.Status != nil {
		stmt = stmt.Where(sq.Eq{"status": *f.Status})
	}

	stmt = stmt.
		Limit(f.Limit).
		Offset(f.Page*f.Limit - f.Limit).
		OrderBy(fmt.Sprintf("created_at %s", f.OrderBy))

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]entity.Order, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var o entity.Order

		err = rows.Scan(
			&o.ID,
			&o.Number,
			&o.CustomerID,
			&o.ShippingCharges,
			&o.Total,
			&o.Status,
			&o.CreatedBy,
			&o.CreatedAt,
			&o.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, err
		}

		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, totalCount, nil
}

func (r *Repository) orderItems(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	const q = `
	SELECT product_id, sku, unit_price, quantity
	FROM order_items
	WHERE order_id = $1
	ORDER BY position
	`

	rows, err := r.db.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.OrderItem

	for rows.Next() {
		var oi entity.OrderItem

		err = rows.Scan(&oi.ProductID, &oi.SKU, &oi.UnitPrice, &oi.Quantity)
		if err != nil {
			return nil, err
		}

		items = append(items, oi)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func scanOrder(row pgx.Row) (o entity.Order, err error) {
	err = row.Scan(
		&o.ID,
		&o.Number,
		&o.CustomerID,
		&o.ShippingCharges,
		&o.Total,
		&o.Status,
		&o.CreatedBy,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Order{}, entity.ErrNotFound
		}

		return entity.Order{}, err
	}

	return o, nil
}
