package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/kmansoor/sims-backend/internal/entity"
	"github.com/kmansoor/sims-backend/internal/validate"
)

func (s *Service) CreateCustomer(ctx context.Context, c entity.Customer) (entity.Customer, error) {
	if c.Name == "" {
		return entity.Customer{}, fmt.Errorf("%w: customer name required", entity.ErrInvalidArgument)
	}

	if !validate.UAEMobile(c.Mobile) {
		return entity.Customer{}, fmt.Errorf("%w: mobile %q is not a UAE number", entity.ErrInvalidArgument, c.Mobile)
	}

	if c.TRN != "" && !validate.TRN(c.TRN) {
		return entity.Customer{}, fmt.Errorf("%w: TRN %q is not a valid tax registration number",
			entity.ErrInvalidArgument, c.TRN)
	}

	now := time.Now()
	c.ID = uuid.Must(uuid.NewV4())
	c.CreatedAt = now
	c.UpdatedAt = now

	err := s.repo.CreateCustomer(ctx, c)
	if err != nil {
		return entity.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	return c, nil
}

func (s *Service) Customer(ctx context.Context, id uuid.UUID) (entity.Customer, error) {
	c, err := s.repo.Customer(ctx, id)
	if err != nil {
		return entity.Customer{}, fmt.Errorf("get customer %s: %w", id, err)
	}

	return c, nil
}

func (s *Service) Customers(ctx context.Context, f entity.CustomerFilter) ([]entity.Customer, int, error) {
	customers, count, err := s.repo.Customers(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("get customers: %w", err)
	}

	return customers, count, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id uuid.UUID, upd entity.CustomerUpdate) error {
	if upd.Mobile != nil && !validate.UAEMobile(*upd.Mobile) {
		return fmt.Errorf("%w: mobile %q is not a UAE number", entity.ErrInvalidArgument, *upd.Mobile)
	}

	if upd.TRN != nil && *upd.TRN != "" && !validate.TRN(*upd.TRN) {
		return fmt.Errorf("%w: TRN %q is not a valid tax registration number", entity.ErrInvalidArgument, *upd.TRN)
	}

	err := s.repo.UpdateCustomer(ctx, id, upd, time.Now())
	if err != nil {
		return fmt.Errorf("update customer %s: %w", id, err)
	}

	return nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}

	return nil
}
