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

const selectInvoice = `
SELECT id, number, customer_id, shipping_charges, tax_rate_percent, subtotal,
       tax_amount, total, status, due_at, created_by, created_at, updated_at
FROM invoices`

// CreateInvoice stores the invoice and its line items in one transaction and
// returns the invoice with the DB-assigned number.
func (r *Repository) CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
	INSERT INTO invoices (
		id,
		customer_id,
		shipping_charges,
		tax_rate_percent,
		subtotal,
		tax_amount,
		total,
		status,
		due_at,
		created_by,
		created_at,
		updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING number
	`

	err = tx.QueryRow(ctx, q,
		inv.ID,
		inv.CustomerID,
		inv.ShippingCharges,
		inv.TaxRatePercent,
		inv.Subtotal,
		inv.TaxAmount,
		inv.Total,
		inv.Status,
		inv.DueAt,
		inv.CreatedBy,
		inv.CreatedAt,
		inv.UpdatedAt,
	).Scan(&inv.Number)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("insert invoice: %w", err)
	}

	const itemQ = `
	INSERT INTO invoice_items (invoice_id, position, product_id, description, unit_price, quantity, discount_percent)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for i, li := range inv.Items {
		batch.Queue(itemQ, inv.ID, i, li.ProductID, li.Description, li.UnitPrice, li.Quantity, li.DiscountPercent)
	}

	err = tx.SendBatch(ctx, batch).Close()
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("insert invoice items: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("commit tx: %w", err)
	}

	return inv, nil
}

func (r *Repository) Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error) {
	q := selectInvoice + " WHERE id = $1"

	inv, err := scanInvoice(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return entity.Invoice{}, err
	}

	inv.Items, err = r.invoiceItems(ctx, inv.ID)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("load invoice items: %w", err)
	}

	return inv, nil
}

func (r *Repository) InvoiceByNumber(ctx context.Context, number int64) (entity.Invoice, error) {
	q := selectInvoice + " WHERE number = $1"

	inv, err := scanInvoice(r.db.QueryRow(ctx, q, number))
	if err != nil {
		return entity.Invoice{}, err
	}

	inv.Items, err = r.invoiceItems(ctx, inv.ID)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("load invoice items: %w", err)
	}

	return inv, nil
}

func (r *Repository) UpdateInvoiceStatus(
	ctx context.Context,
	id uuid.UUID,
	status entity.InvoiceStatus,
	updatedAt time.Time,
) error {
	const q = `UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, q, status, updatedAt, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// MarkOverdueInvoices flips pending invoices past their due date to overdue
// and returns the number of rows changed.
func (r *Repository) MarkOverdueInvoices(ctx context.Context, now time.Time) (int64, error) {
	const q = `UPDATE invoices SET status = $1, updated_at = $2 WHERE status = $3 AND due_at < $2`

	result, err := r.db.Exec(ctx, q, entity.InvoiceStatusOverdue, now, entity.InvoiceStatusPending)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

// Invoices lists invoices without their line items; items are loaded on
// single-invoice reads only.
func (r *Repository) Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, error) {
	stmt := sq.Select(
		"id",
		"number",
		"customer_id",
		"shipping_charges",
		"tax_rate_percent",
		"subtotal",
		"tax_amount",
		"total",
		"status",
		"due_at",
		"created_by",
		"created_at",
		"updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("invoices").PlaceholderFormat(sq.Dollar)

	stmt = applyInvoiceFilter(stmt, f).
		Limit(f.Limit).
		Offset(f.Page*f.Limit - f.Limit).
		OrderBy(fmt.Sprintf("%s %s", f.SortBy, f.OrderBy))

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invoices := make([]entity.Invoice, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var inv entity.Invoice

		err = rows.Scan(
			&inv.ID,
			&inv.Number,
			&inv.CustomerID,
			&inv.ShippingCharges,
			&inv.TaxRatePercent,
			&inv.Subtotal,
			&inv.TaxAmount,
			&inv.Total,
			&inv.Status,
			&inv.DueAt,
			&inv.CreatedBy,
			&inv.CreatedAt,
			&inv.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, err
		}

		invoices = append(invoices, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return invoices, totalCount, nil
}

func applyInvoiceFilter(stmt sq.SelectBuilder, f entity.InvoiceFilter) sq.SelectBuilder {
	if f.CustomerID != nil {
		stmt = stmt.Where(sq.Eq{"customer_id": *f.CustomerID})
	}

	if f.Status != nil {
		stmt = stmt.Where(sq.Eq{"status": *f.Status})
	}

	if f.CreatedAt != nil {
		stmt = stmt.Where(sq.GtOrEq{"created_at": *f.CreatedAt})
	}

	return stmt
}

func (r *Repository) invoiceItems(ctx context.Context, invoiceID uuid.UUID) ([]entity.LineItem, error) {
	const q = `
	SELECT product_id, description, unit_price, quantity, discount_percent
	FROM invoice_items
	WHERE invoice_id = $1
	ORDER BY position
	`

	rows, err := r.db.Query(ctx, q, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.LineItem

	for rows.Next() {
		var li entity.LineItem

		err = rows.Scan(
			&li.ProductID,
			&li.Description,
			&li.UnitPrice,
			&li.Quantity,
			&li.DiscountPercent,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, li)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func scanInvoice(row pgx.Row) (inv entity.Invoice, err error) {
	err = row.Scan(
		&inv.ID,
		&inv.Number,
		&inv.CustomerID,
		&inv.ShippingCharges,
		&inv.TaxRatePercent,
		&inv.Subtotal,
		&inv.TaxAmount,
		&inv.Total,
		&inv.Status,
		&inv.DueAt,
		&inv.CreatedBy,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Invoice{}, entity.ErrNotFound
		}

		return entity.Invoice{}, err
	}

	return inv, nil
}
