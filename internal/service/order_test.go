package service_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kmansoor/sims-backend/internal/entity"
	"github.com/kmansoor/sims-backend/internal/mocks"
	"github.com/kmansoor/sims-backend/internal/service"
)

func TestService_CreateOrder(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	user := entity.User{ID: uuid.Must(uuid.NewV4())}
	customer := entity.Customer{ID: uuid.Must(uuid.NewV4())}
	product := entity.Product{
		ID:        uuid.Must(uuid.NewV4()),
		SKU:       "LP-01",
		UnitPrice: decimal.RequireFromString("5500"),
		Stock:     10,
		Active:    true,
	}

	repo.EXPECT().Customer(gomock.Any(), customer.ID).Return(customer, nil)
	repo.EXPECT().Product(gomock.Any(), product.ID).Return(product, nil)
	repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o entity.Order) (entity.Order, error) {
			require.Equal(t, entity.OrderStatusPending, o.Status)
			require.Equal(t, "11020", o.Total.String()) // 2 x 5500 + 20 shipping
			require.Equal(t, "LP-01", o.Items[0].SKU)

			o.Number = 1
			return o, nil
		})

	o, err := s.CreateOrder(entity.CtxWithUser(context.Background(), user), service.CreateOrderParams{
		CustomerID:      customer.ID,
		Items:           []service.OrderItemParams{{ProductID: product.ID, Quantity: 2}},
		ShippingCharges: decimal.RequireFromString("20"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), o.Number)
}

func TestService_CreateOrder_Validation(t *testing.T) {
	t.Parallel()

	user := entity.User{ID: uuid.Must(uuid.NewV4())}
	customer := entity.Customer{ID: uuid.Must(uuid.NewV4())}

	for _, tt := range []struct {
		name   string
		params service.CreateOrderParams
		setup  func(repo *mocks.MockRepository)
	}{
		{
			name:   "no items",
			params: service.CreateOrderParams{CustomerID: customer.ID},
			setup:  func(_ *mocks.MockRepository) {},
		},
		{
			name: "zero quantity",
			params: service.CreateOrderParams{
				CustomerID: customer.ID,
				Items:      []service.OrderItemParams{{ProductID: uuid.Must(uuid.NewV4()), Quantity: 0}},
			},
			setup: func(repo *mocks.MockRepository) {
				repo.EXPECT().Customer(gomock.Any(), customer.ID).Return(customer, nil)
			},
		},
		{
			name: "inactive product",
			params: service.CreateOrderParams{
				CustomerID: customer.ID,
				Items:      []service.OrderItemParams{{ProductID: uuid.Must(uuid.NewV4()), Quantity: 1}},
			},
			setup: func(repo *mocks.MockRepository) {
				repo.EXPECT().Customer(gomock.Any(), customer.ID).Return(customer, nil)
				repo.EXPECT().Product(gomock.Any(), gomock.Any()).
					Return(entity.Product{ID: uuid.Must(uuid.NewV4()), Active: false}, nil)
			},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, repo, _, _, _ := newTestService(t)
			tt.setup(repo)

			_, err := s.CreateOrder(entity.CtxWithUser(context.Background(), user), tt.params)
			require.ErrorIs(t, err, entity.ErrInvalidArgument)
		})
	}
}

func TestService_CreateOrder_InsufficientStock(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	user := entity.User{ID: uuid.Must(uuid.NewV4())}
	customer := entity.Customer{ID: uuid.Must(uuid.NewV4())}
	product := entity.Product{
		ID:        uuid.Must(uuid.NewV4()),
		SKU:       "LP-01",
		UnitPrice: decimal.RequireFromString("5500"),
		Stock:     1,
		Active:    true,
	}

	repo.EXPECT().Customer(gomock.Any(), customer.ID).Return(customer, nil)
	repo.EXPECT().Product(gomock.Any(), product.ID).Return(product, nil)
	repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(entity.Order{}, entity.ErrInsufficientStock)

	_, err := s.CreateOrder(entity.CtxWithUser(context.Background(), user), service.CreateOrderParams{
		CustomerID: customer.ID,
		Items:      []service.OrderItemParams{{ProductID: product.ID, Quantity: 5}},
	})
	require.ErrorIs(t, err, entity.ErrInsufficientStock)
}

func TestService_UpdateOrderStatus(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	id := uuid.Must(uuid.NewV4())

	repo.EXPECT().Order(gomock.Any(), id).Return(entity.Order{ID: id, Status: entity.OrderStatusPending}, nil)
	repo.EXPECT().UpdateOrderStatus(gomock.Any(), id, entity.OrderStatusProcessing, gomock.Any()).Return(nil)

	err := s.UpdateOrderStatus(context.Background(), id, entity.OrderStatusProcessing)
	require.NoError(t, err)
}

func TestService_UpdateOrderStatus_IllegalTransition(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	id := uuid.Must(uuid.NewV4())

	repo.EXPECT().Order(gomock.Any(), id).Return(entity.Order{ID: id, Status: entity.OrderStatusDelivered}, nil)

	err := s.UpdateOrderStatus(context.Background(), id, entity.OrderStatusCancelled)
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	t.Parallel()

	s, _, _, _, _ := newTestService(t)

	err := s.UpdateOrderStatus(context.Background(), uuid.Must(uuid.NewV4()), entity.OrderStatus("RETURNED"))
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}
