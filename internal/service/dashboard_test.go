package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kmansoor/sims-backend/internal/entity"
	"github.com/kmansoor/sims-backend/internal/repository"
)

func TestService_DashboardSummary_CacheMiss(t *testing.T) {
	t.Parallel()

	s, repo, _, cache, _ := newTestService(t)

	counts := repository.DashboardCounts{
		Customers:     10,
		Products:      20,
		Invoices:      5,
		Orders:        3,
		Revenue:       decimal.RequireFromString("12100.00"),
		Outstanding:   decimal.RequireFromString("303.50"),
		OverdueCount:  1,
		PendingOrders: 2,
	}

	cache.EXPECT().Get(gomock.Any(), "dashboard:summary", gomock.Any()).Return(false, nil)
	repo.EXPECT().DashboardSummary(gomock.Any()).Return(counts, nil)
	cache.EXPECT().Set(gomock.Any(), "dashboard:summary", gomock.Any(), gomock.Any()).Return(nil)

	got, err := s.DashboardSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(10), got.Customers)
	require.Equal(t, "12100.00", got.Revenue.StringFixed(2))
	require.Equal(t, int64(1), got.OverdueInvoices)
	require.False(t, got.GeneratedAt.IsZero())
}

func TestService_DashboardSummary_CacheHit(t *testing.T) {
	t.Parallel()

	s, _, _, cache, _ := newTestService(t)

	cache.EXPECT().Get(gomock.Any(), "dashboard:summary", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dst any) (bool, error) {
			summary, ok := dst.(*entity.DashboardSummary)
			require.True(t, ok)
			summary.Customers = 99
			return true, nil
		})

	got, err := s.DashboardSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(99), got.Customers)
}

func TestService_DashboardSummary_CacheErrorFallsThrough(t *testing.T) {
	t.Parallel()

	s, repo, _, cache, _ := newTestService(t)

	cache.EXPECT().Get(gomock.Any(), "dashboard:summary", gomock.Any()).Return(false, errors.New("redis down"))
	repo.EXPECT().DashboardSummary(gomock.Any()).Return(repository.DashboardCounts{Customers: 1}, nil)
	cache.EXPECT().Set(gomock.Any(), "dashboard:summary", gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	got, err := s.DashboardSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), got.Customers)
}

func TestService_RefreshDashboard(t *testing.T) {
	t.Parallel()

	s, repo, _, cache, _ := newTestService(t)

	repo.EXPECT().DashboardSummary(gomock.Any()).Return(repository.DashboardCounts{}, nil)
	cache.EXPECT().Set(gomock.Any(), "dashboard:summary", gomock.Any(), gomock.Any()).Return(nil)

	err := s.RefreshDashboard(context.Background())
	require.NoError(t, err)
}
