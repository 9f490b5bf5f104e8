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

const selectProduct = `SELECT id, sku, name, category, unit_price, stock, active, created_at, updated_at FROM products`

func (r *Repository) CreateProduct(ctx context.Context, p entity.Product) error {
	const q = `
	INSERT INTO products (id, sku, name, category, unit_price, stock, active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, q,
		p.ID,
		p.SKU,
		p.Name,
		p.Category,
		p.UnitPrice,
		p.Stock,
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)

	return err
}

func (r *Repository) Product(ctx context.Context, id uuid.UUID) (entity.Product, error) {
	q := selectProduct + " WHERE id = $1"
	return scanProduct(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) ProductBySKU(ctx context.Context, sku string) (entity.Product, error) {
	q := selectProduct + " WHERE sku = $1"
	return scanProduct(r.db.QueryRow(ctx, q, sku))
}

func (r *Repository) UpdateProduct(ctx context.Context, id uuid.UUID, upd entity.ProductUpdate, updatedAt time.Time) error {
	stmt := sq.Update("products").
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	if upd.Name != nil {
		stmt = stmt.Set("name", *upd.Name)
	}

	if upd.Category != nil {
		stmt = stmt.Set("category", *upd.Category)
	}

	if upd.UnitPrice != nil {
		stmt = stmt.Set("unit_price", *upd.UnitPrice)
	}

	if upd.Stock != nil {
		stmt = stmt.Set("stock", *upd.Stock)
	}

	if upd.Active != nil {
		stmt = stmt.Set("active", *upd.Active)
	}

	sql, args, err := stmt.ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM products WHERE id = $1`

	result, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) Products(ctx context.Context, f entity.ProductFilter) ([]entity.Product, int, error) {
	stmt := sq.Select(
		"id",
		"sku",
		"name",
		"category",
		"unit_price",
		"stock",
		"active",
		"created_at",
		"updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("products").PlaceholderFormat(sq.Dollar)

	if f.SKU != nil {
		stmt = stmt.Where(sq.Eq{"sku": *f.SKU})
	}

	if f.Category != nil {
		stmt = stmt.Where(sq.Eq{"category": *f.Category})
	}

	if f.Active != nil {
		stmt = stmt.Where(sq.Eq{"active": *f.Active})
	}

	stmt = stmt.
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

	products := make([]entity.Product, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var p entity.Product

		err = rows.Scan(
			&p.ID,
			&p.SKU,
			&p.Name,
			&p.Category,
			&p.UnitPrice,
			&p.Stock,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, err
		}

		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, totalCount, nil
}

func scanProduct(row pgx.Row) (p entity.Product, err error) {
	err = row.Scan(
		&p.ID,
		&p.SKU,
		&p.Name,
		&p.Category,
		&p.UnitPrice,
		&p.Stock,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Product{}, entity.ErrNotFound
		}

		return entity.Product{}, err
	}

	return p, nil
}
