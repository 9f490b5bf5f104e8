package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kmansoor/sims-backend/internal/entity"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = time.Minute
)

// DashboardSummary serves the cached summary when fresh and recomputes it
// otherwise. A cache failure only costs the round trip to postgres.
func (s *Service) DashboardSummary(ctx context.Context) (entity.DashboardSummary, error) {
	var cached entity.DashboardSummary

	found, err := s.cache.Get(ctx, dashboardCacheKey, &cached)
	if err != nil {
		slog.WarnContext(ctx, "dashboard cache read failed", "error", err)
	}

	if found {
		return cached, nil
	}

	summary, err := s.computeDashboardSummary(ctx)
	if err != nil {
		return entity.DashboardSummary{}, err
	}

	err = s.cache.Set(ctx, dashboardCacheKey, summary, dashboardCacheTTL)
	if err != nil {
		slog.WarnContext(ctx, "dashboard cache write failed", "error", err)
	}

	return summary, nil
}

// RefreshDashboard is a background job keeping the cache warm.
func (s *Service) RefreshDashboard(ctx context.Context) error {
	summary, err := s.computeDashboardSummary(ctx)
	if err != nil {
		return err
	}

	err = s.cache.Set(ctx, dashboardCacheKey, summary, dashboardCacheTTL)
	if err != nil {
		return fmt.Errorf("cache dashboard summary: %w", err)
	}

	return nil
}

func (s *Service) computeDashboardSummary(ctx context.Context) (entity.DashboardSummary, error) {
	counts, err := s.repo.DashboardSummary(ctx)
	if err != nil {
		return entity.DashboardSummary{}, fmt.Errorf("dashboard summary: %w", err)
	}

	return entity.DashboardSummary{
		Customers:       counts.Customers,
		Products:        counts.Products,
		Invoices:        counts.Invoices,
		Orders:          counts.Orders,
		Revenue:         counts.Revenue,
		Outstanding:     counts.Outstanding,
		OverdueInvoices: counts.OverdueCount,
		PendingOrders:   counts.PendingOrders,
		GeneratedAt:     time.Now(),
	}, nil
}
