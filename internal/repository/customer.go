package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype/zeronull"

	"github.com/kmansoor/sims-backend/internal/entity"
)

const selectCustomer = `SELECT id, name, email, mobile, trn, address, created_at, updated_at FROM customers`

func (r *Repository) CreateCustomer(ctx context.Context, c entity.Customer) error {
	const q = `
	INSERT INTO customers (id, name, email, mobile, trn, address, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, q,
		c.ID,
		c.Name,
		c.Email,
		c.Mobile,
		zeronull.Text(c.TRN),
		c.Address,
		c.CreatedAt,
		c.UpdatedAt,
	)

	return err
}

func (r *Repository) Customer(ctx context.Context, id uuid.UUID) (entity.Customer, error) {
	q := selectCustomer + " WHERE id = $1"
	return scanCustomer(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) UpdateCustomer(ctx context.Context, id uuid.UUID, upd entity.CustomerUpdate, updatedAt time.Time) error {
	stmt := sq.Update("customers").
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	if upd.Name != nil {
		stmt = stmt.Set("name", *upd.Name)
	}

	if upd.Email != nil {
		stmt = stmt.Set("email", *upd.Email)
	}

	if upd.Mobile != nil {
		stmt = stmt.Set("mobile", *upd.Mobile)
	}

	if upd.TRN != nil {
		stmt = stmt.Set("trn", zeronull.Text(*upd.TRN))
	}

	if upd.Address != nil {
		stmt = stmt.Set("address", *upd.Address)
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

func (r *Repository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM customers WHERE id = $1`

	result, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) Customers(ctx context.Context, f entity.CustomerFilter) ([]entity.Customer, int, error) {
	stmt := sq.Select(
		"id",
		"name",
		"email",
		"mobile",
		"trn",
		"address",
		"created_at",
		"updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("customers").PlaceholderFormat(sq.Dollar)

	if f.Name != nil {
		stmt = stmt.Where(sq.ILike{"name": "%" + *f.Name + "%"})
	}

	if f.TRN != nil {
		stmt = stmt.Where(sq.Eq{"trn": *f.TRN})
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

	customers := make([]entity.Customer, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var c entity.Customer

		err = rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Mobile,
			(*zeronull.Text)(&c.TRN),
			&c.Address,
			&c.CreatedAt,
			&c.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, err
		}

		customers = append(customers, c)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return customers, totalCount, nil
}

func scanCustomer(row pgx.Row) (c entity.Customer, err error) {
	err = row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Mobile,
		(*zeronull.Text)(&c.TRN),
		&c.Address,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Customer{}, entity.ErrNotFound
		}

		return entity.Customer{}, err
	}

	return c, nil
}
