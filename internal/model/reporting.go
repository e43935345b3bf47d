package model

import (
	"time"
)

// SalesSummary aggregates completed SALE transactions over a date range.
// All sums are cents.
type SalesSummary struct {
	SalesCount       int64 `json:"sales_count"`
	GrossCents       int64 `json:"gross_cents"`
	NetCents         int64 `json:"net_cents"`
	StripeFeeCents   int64 `json:"stripe_fee_cents"`
	PlatformFeeCents int64 `json:"platform_fee_cents"`
}

// RefundSummary aggregates completed REFUND transactions over a date range
type RefundSummary struct {
	RefundCount int64 `json:"refund_count"`
	AmountCents int64 `json:"amount_cents"`
}

// FunnelCounts holds storefront conversion stage totals.
// ConversionRate is purchases over views in whole percent, 0 when there
// are no views.
type FunnelCounts struct {
	Views          int64 `json:"views"`
	Carts          int64 `json:"carts"`
	Checkouts      int64 `json:"checkouts"`
	Purchases      int64 `json:"purchases"`
	ConversionRate int64 `json:"conversion_rate"`
}

// Profitability compares revenue against material costs for a period,
// with deltas against a comparison period. Margin is whole percent.
type Profitability struct {
	RevenueCents      int64   `json:"revenue_cents"`
	MaterialCostCents int64   `json:"material_cost_cents"`
	ProfitCents       int64   `json:"profit_cents"`
	ProfitMargin      int64   `json:"profit_margin"`
	RevenueChange     float64 `json:"revenue_change"` // percent vs comparison period
	ProfitChange      float64 `json:"profit_change"`  // percent vs comparison period
	MarginChange      float64 `json:"margin_change"`  // absolute percentage points
}

// DashboardStats is the merged dashboard response
type DashboardStats struct {
	PieceCount    int64           `json:"piece_count"`
	MediaCount    int64           `json:"media_count"`
	OrderCount    int64           `json:"order_count"`
	EnquiryCount  int64           `json:"enquiry_count"`
	RecentOrders  []Order         `json:"recent_orders"`
	Today         SalesSummary    `json:"today"`
	ThisMonth     SalesSummary    `json:"this_month"`
	LastMonth     SalesSummary    `json:"last_month"`
	Balance       BalanceSnapshot `json:"balance"`
	YTDFeeCents   int64           `json:"ytd_fee_cents"`
	Profitability Profitability   `json:"profitability"`
	Funnel        FunnelCounts    `json:"funnel"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// QuarterlyGSTReport is derived per request, never persisted. GST figures
// are extracted from GST-inclusive totals. The *_cents fields carry the
// aggregation values; the formatted fields are major units for display.
type QuarterlyGSTReport struct {
	Quarter           string    `json:"quarter"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	SalesGrossCents   int64     `json:"sales_gross_cents"`
	SalesCount        int64     `json:"sales_count"`
	RefundsTotalCents int64     `json:"refunds_total_cents"`
	RefundsCount      int64     `json:"refunds_count"`
	GSTCollectedCents int64     `json:"gst_collected_cents"`
	GSTPaidCents      int64     `json:"gst_paid_cents"`
	NetGSTCents       int64     `json:"net_gst_cents"`
	GSTCollected      string    `json:"gst_collected"`
	GSTPaid           string    `json:"gst_paid"`
	NetGST            string    `json:"net_gst"`
}
