// Package repository is the postgres persistence layer. Single-row lookups
// use plain SQL; filtered listings are built with squirrel and return the
// total row count alongside the page.
package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}
