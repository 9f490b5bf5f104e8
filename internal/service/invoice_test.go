package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kmansoor/sims-backend/internal/billing"
	"github.com/kmansoor/sims-backend/internal/entity"
	"github.com/kmansoor/sims-backend/internal/mocks"
	"github.com/kmansoor/sims-backend/internal/service"
	"github.com/kmansoor/sims-backend/pkg/broker"
)

const (
	testJWTSecret = "test-secret"
	testTokenTTL  = time.Hour
)

func newTestService(t *testing.T) (*service.Service, *mocks.MockRepository, *mocks.MockProducer, *mocks.MockCache, *mocks.MockNotifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	producer := mocks.NewMockProducer(ctrl)
	cache := mocks.NewMockCache(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	return service.New(repo, producer, cache, notifier, testJWTSecret, testTokenTTL), repo, producer, cache, notifier
}

func userCtx(user entity.User) context.Context {
	return entity.CtxWithUser(context.Background(), user)
}

func TestService_SubmitInvoice(t *testing.T) {
	t.Parallel()

	s, repo, producer, _, notifier := newTestService(t)

	user := entity.User{ID: uuid.Must(uuid.NewV4()), Role: entity.RoleManager}
	customer := entity.Customer{ID: uuid.Must(uuid.NewV4()), Name: "Al Noor Trading"}

	repo.EXPECT().Customer(gomock.Any(), customer.ID).Return(customer, nil)
	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv entity.Invoice) (entity.Invoice, error) {
			require.Equal(t, customer.ID, inv.CustomerID)
			require.Equal(t, entity.InvoiceStatusPending, inv.Status)
			require.Equal(t, user.ID, inv.CreatedBy)
			require.Equal(t, "11000", inv.Subtotal.String())
			require.Equal(t, "1100", inv.TaxAmount.String())
			require.Equal(t, "12100", inv.Total.String())

			inv.Number = 42
			return inv, nil
		})
	producer.EXPECT().SendInvoiceEvent(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event broker.InvoiceEvent) {
			require.Equal(t, broker.EventInvoiceCreated, event.Type)
			require.Equal(t, int64(42), event.Number)
			require.Equal(t, "12100.00", event.Total)
		})
	notifier.EXPECT().NotifyInvoiceCreated(gomock.Any(), gomock.Any()).Return(nil)

	inv, err := s.SubmitInvoice(userCtx(user), service.SubmitInvoiceParams{
		CustomerID: customer.ID.String(),
		Items: []billing.RawLineItem{
			{Description: "Laptop", UnitPrice: "5500", Quantity: "2"},
		},
		TaxRatePercent: "10",
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), inv.Number)
}

func TestService_SubmitInvoice_InvalidDraft(t *testing.T) {
	t.Parallel()

	s, _, _, _, _ := newTestService(t)

	user := entity.User{ID: uuid.Must(uuid.NewV4())}

	_, err := s.SubmitInvoice(userCtx(user), service.SubmitInvoiceParams{})
	require.ErrorIs(t, err, entity.ErrDraftNotValid)

	var draftErr *service.DraftInvalidError
	require.ErrorAs(t, err, &draftErr)
	require.Equal(t, []string{billing.MsgCustomerRequired, billing.MsgItemRequired}, draftErr.Failures)
}

func TestService_SubmitInvoice_NoUser(t *testing.T) {
	t.Parallel()

	s, _, _, _, _ := newTestService(t)

	_, err := s.SubmitInvoice(context.Background(), service.SubmitInvoiceParams{})
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestService_SubmitInvoice_UnknownCustomer(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	user := entity.User{ID: uuid.Must(uuid.NewV4())}
	customerID := uuid.Must(uuid.NewV4())

	repo.EXPECT().Customer(gomock.Any(), customerID).Return(entity.Customer{}, entity.ErrNotFound)

	_, err := s.SubmitInvoice(userCtx(user), service.SubmitInvoiceParams{
		CustomerID: customerID.String(),
		Items: []billing.RawLineItem{
			{UnitPrice: "100", Quantity: "1"},
		},
	})
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestService_SubmitInvoice_DefaultTaxRate(t *testing.T) {
	t.Parallel()

	s, repo, producer, _, notifier := newTestService(t)

	user := entity.User{ID: uuid.Must(uuid.NewV4())}
	customer := entity.Customer{ID: uuid.Must(uuid.NewV4())}

	repo.EXPECT().Customer(gomock.Any(), customer.ID).Return(customer, nil)
	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv entity.Invoice) (entity.Invoice, error) {
			require.Equal(t, "5", inv.TaxRatePercent.String())
			require.Equal(t, "105", inv.Total.String())
			return inv, nil
		})
	producer.EXPECT().SendInvoiceEvent(gomock.Any(), gomock.Any())
	notifier.EXPECT().NotifyInvoiceCreated(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.SubmitInvoice(userCtx(user), service.SubmitInvoiceParams{
		CustomerID: customer.ID.String(),
		Items: []billing.RawLineItem{
			{UnitPrice: "100", Quantity: "1"},
		},
	})
	require.NoError(t, err)
}

func TestService_SubmitInvoice_RoundsStoredFigures(t *testing.T) {
	t.Parallel()

	s, repo, producer, _, notifier := newTestService(t)

	user := entity.User{ID: uuid.Must(uuid.NewV4())}
	customer := entity.Customer{ID: uuid.Must(uuid.NewV4())}

	repo.EXPECT().Customer(gomock.Any(), customer.ID).Return(customer, nil)
	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv entity.Invoice) (entity.Invoice, error) {
			require.Equal(t, "1", inv.Subtotal.String())
			require.Equal(t, "0.05", inv.TaxAmount.String())
			require.Equal(t, "0.01", inv.ShippingCharges.String())
			require.Equal(t, "1.06", inv.Total.String())
			// Stored figures stay additive after rounding.
			require.True(t, inv.Total.Equal(inv.Subtotal.Add(inv.TaxAmount).Add(inv.ShippingCharges)))
			return inv, nil
		})
	producer.EXPECT().SendInvoiceEvent(gomock.Any(), gomock.Any())
	notifier.EXPECT().NotifyInvoiceCreated(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.SubmitInvoice(userCtx(user), service.SubmitInvoiceParams{
		CustomerID: customer.ID.String(),
		Items: []billing.RawLineItem{
			{UnitPrice: "0.995", Quantity: "1"},
		},
		ShippingCharges: "0.005",
		TaxRatePercent:  "5",
	})
	require.NoError(t, err)
}

func TestService_PreviewTotals(t *testing.T) {
	t.Parallel()

	s, _, _, _, _ := newTestService(t)

	totals, failures := s.PreviewTotals(service.SubmitInvoiceParams{
		CustomerID: uuid.Must(uuid.NewV4()).String(),
		Items: []billing.RawLineItem{
			{UnitPrice: "100", Quantity: "3", DiscountPercent: "10"},
		},
		ShippingCharges: "20",
	})

	require.Nil(t, failures)
	require.Equal(t, "270.00", totals.Subtotal.StringFixed(2))
	require.Equal(t, "13.50", totals.TaxAmount.StringFixed(2))
	require.Equal(t, "303.50", totals.Total.StringFixed(2))
}

func TestService_PreviewTotals_EmptyDraft(t *testing.T) {
	t.Parallel()

	s, _, _, _, _ := newTestService(t)

	totals, failures := s.PreviewTotals(service.SubmitInvoiceParams{})

	require.Equal(t, []string{billing.MsgCustomerRequired, billing.MsgItemRequired}, failures)
	require.True(t, totals.Total.IsZero())
}

func TestService_InvoicePaid(t *testing.T) {
	t.Parallel()

	s, repo, producer, _, _ := newTestService(t)

	inv := entity.Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		Number:     7,
		CustomerID: uuid.Must(uuid.NewV4()),
		Total:      decimal.RequireFromString("303.50"),
		Status:     entity.InvoiceStatusPending,
	}

	repo.EXPECT().InvoiceByNumber(gomock.Any(), inv.Number).Return(inv, nil)
	repo.EXPECT().UpdateInvoiceStatus(gomock.Any(), inv.ID, entity.InvoiceStatusPaid, gomock.Any()).Return(nil)
	producer.EXPECT().SendInvoiceEvent(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event broker.InvoiceEvent) {
			require.Equal(t, broker.EventInvoicePaid, event.Type)
		})

	err := s.InvoicePaid(context.Background(), inv.Number, decimal.RequireFromString("303.5"))
	require.NoError(t, err)
}

func TestService_InvoicePaid_AlreadyPaid(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	inv := entity.Invoice{
		ID:     uuid.Must(uuid.NewV4()),
		Number: 7,
		Total:  decimal.RequireFromString("100"),
		Status: entity.InvoiceStatusPaid,
	}

	repo.EXPECT().InvoiceByNumber(gomock.Any(), inv.Number).Return(inv, nil)

	err := s.InvoicePaid(context.Background(), inv.Number, inv.Total)
	require.ErrorIs(t, err, entity.ErrAlreadyPaid)
}

func TestService_InvoicePaid_AmountMismatch(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	inv := entity.Invoice{
		ID:     uuid.Must(uuid.NewV4()),
		Number: 7,
		Total:  decimal.RequireFromString("100"),
		Status: entity.InvoiceStatusPending,
	}

	repo.EXPECT().InvoiceByNumber(gomock.Any(), inv.Number).Return(inv, nil)

	err := s.InvoicePaid(context.Background(), inv.Number, decimal.RequireFromString("99.99"))
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestService_MarkOverdueInvoices(t *testing.T) {
	t.Parallel()

	s, repo, _, _, _ := newTestService(t)

	repo.EXPECT().MarkOverdueInvoices(gomock.Any(), gomock.Any()).Return(int64(3), nil)

	err := s.MarkOverdueInvoices(context.Background())
	require.NoError(t, err)
}
