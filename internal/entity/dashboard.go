package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary is the cached headline view. Amounts are AED.
type DashboardSummary struct {
	Customers       int64           `json:"customers"`
	Products        int64           `json:"products"`
	Invoices        int64           `json:"invoices"`
	Orders          int64           `json:"orders"`
	Revenue         decimal.Decimal `json:"revenue"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	OverdueInvoices int64           `json:"overdueInvoices"`
	PendingOrders   int64           `json:"pendingOrders"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}
