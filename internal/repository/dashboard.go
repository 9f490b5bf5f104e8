package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kmansoor/sims-backend/internal/entity"
)

type DashboardCounts struct {
	Customers     int64
	Products      int64
	Invoices      int64
	Orders        int64
	Revenue       decimal.Decimal
	Outstanding   decimal.Decimal
	OverdueCount  int64
	PendingOrders int64
}

// DashboardSummary aggregates the headline numbers in a single round trip.
// Revenue sums paid invoices; outstanding sums pending and overdue ones.
func (r *Repository) DashboardSummary(ctx context.Context) (DashboardCounts, error) {
	const q = `
	SELECT
		(SELECT COUNT(*) FROM customers),
		(SELECT COUNT(*) FROM products),
		(SELECT COUNT(*) FROM invoices),
		(SELECT COUNT(*) FROM orders),
		(SELECT COALESCE(SUM(total), 0) FROM invoices WHERE status = $1),
		(SELECT COALESCE(SUM(total), 0) FROM invoices WHERE status IN ($2, $3)),
		(SELECT COUNT(*) FROM invoices WHERE status = $3),
		(SELECT COUNT(*) FROM orders WHERE status = $4)
	`

	var c DashboardCounts

	err := r.db.QueryRow(ctx, q,
		entity.InvoiceStatusPaid,
		entity.InvoiceStatusPending,
		entity.InvoiceStatusOverdue,
		entity.OrderStatusPending,
	).Scan(
		&c.Customers,
		&c.Products,
		&c.Invoices,
		&c.Orders,
		&c.Revenue,
		&c.Outstanding,
		&c.OverdueCount,
		&c.PendingOrders,
	)
	if err != nil {
		return DashboardCounts{}, err
	}

	return c, nil
}
