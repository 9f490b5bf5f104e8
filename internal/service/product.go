package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/kmansoor/sims-backend/internal/entity"
)

func (s *Service) CreateProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	if p.SKU == "" {
		return entity.Product{}, fmt.Errorf("%w: product SKU required", entity.ErrInvalidArgument)
	}

	if p.Name == "" {
		return entity.Product{}, fmt.Errorf("%w: product name required", entity.ErrInvalidArgument)
	}

	if p.UnitPrice.IsNegative() {
		return entity.Product{}, fmt.Errorf("%w: unit price must not be negative", entity.ErrInvalidArgument)
	}

	if p.Stock < 0 {
		return entity.Product{}, fmt.Errorf("%w: stock must not be negative", entity.ErrInvalidArgument)
	}

	now := time.Now()
	p.ID = uuid.Must(uuid.NewV4())
	p.Active = true
	p.CreatedAt = now
	p.UpdatedAt = now

	err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return entity.Product{}, fmt.Errorf("create product: %w", err)
	}

	return p, nil
}

func (s *Service) Product(ctx context.Context, id uuid.UUID) (entity.Product, error) {
	p, err := s.repo.Product(ctx, id)
	if err != nil {
		return entity.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}

	return p, nil
}

func (s *Service) Products(ctx context.Context, f entity.ProductFilter) ([]entity.Product, int, error) {
	products, count, err := s.repo.Products(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("get products: %w", err)
	}

	return products, count, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, upd entity.ProductUpdate) error {
	if upd.UnitPrice != nil && upd.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price must not be negative", entity.ErrInvalidArgument)
	}

	if upd.Stock != nil && *upd.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", entity.ErrInvalidArgument)
	}

	err := s.repo.UpdateProduct(ctx, id, upd, time.Now())
	if err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}

	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}

	return nil
}
