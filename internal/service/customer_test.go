package service_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kmansoor/sims-backend/internal/entity"
)

func TestService_CreateCustomer(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(nil)

	c, err := s.CreateCustomer(context.Background(), entity.Customer{
		Name:   "Al Noor Trading",
		Email:  "info@alnoor.ae",
		Mobile: "+971501234567",
		TRN:    "100000000000003",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, c.ID)
	require.False(t, c.CreatedAt.IsZero())
}

func TestService_CreateCustomer_Validation(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name     string
		customer entity.Customer
	}{
		{
			name:     "missing name",
			customer: entity.Customer{Mobile: "+971501234567"},
		},
		{
			name:     "bad mobile",
			customer: entity.Customer{Name: "X", Mobile: "0501234567"},
		},
		{
			name:     "bad TRN",
			customer: entity.Customer{Name: "X", Mobile: "+971501234567", TRN: "999"},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _, _, _, _ := newTestService(t)

			_, err := s.CreateCustomer(context.Background(), tt.customer)
			require.ErrorIs(t, err, entity.ErrInvalidArgument)
		})
	}
}

func TestService_CreateCustomer_EmptyTRNAllowed(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	repo.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.CreateCustomer(context.Background(), entity.Customer{
		Name:   "Walk-in",
		Mobile: "+971501234567",
	})
	require.NoError(t, err)
}

func TestService_UpdateCustomer_BadMobile(t *testing.T) {
	t.Parallel()

	s, _, _, _, _ := newTestService(t)

	mobile := "12345"

	err := s.UpdateCustomer(context.Background(), uuid.Must(uuid.NewV4()), entity.CustomerUpdate{Mobile: &mobile})
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestService_UpdateCustomer(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	id := uuid.Must(uuid.NewV4())
	name := "Renamed"

	repo.EXPECT().UpdateCustomer(gomock.Any(), id, gomock.Any(), gomock.Any()).Return(nil)

	err := s.UpdateCustomer(context.Background(), id, entity.CustomerUpdate{Name: &name})
	require.NoError(t, err)
}
