package service

import (
	"math"

	"backend/internal/model"

	"github.com/google/uuid"
)

// CalculateProfitability joins paid order line items against the tenant's
// recorded cost of goods and compares the result with a previous period.
// Items whose piece has no recorded cogs contribute zero cost. The
// function never fails: missing data degrades to zero, and every ratio
// is guarded so a zero or negative baseline yields 0 rather than a
// division blow-up.
func CalculateProfitability(current, previous []model.Order, cogs map[uuid.UUID]int64) model.Profitability {
	revenue, costs := sumOrders(current, cogs)
	prevRevenue, prevCosts := sumOrders(previous, cogs)

	profit := revenue - costs
	prevProfit := prevRevenue - prevCosts

	margin := marginPercent(profit, revenue)
	prevMargin := marginPercent(prevProfit, prevRevenue)

	return model.Profitability{
		RevenueCents:      revenue,
		MaterialCostCents: costs,
		ProfitCents:       profit,
		ProfitMargin:      margin,
		RevenueChange:     percentChange(revenue, prevRevenue),
		ProfitChange:      percentChange(profit, prevProfit),
		MarginChange:      float64(margin - prevMargin),
	}
}

func sumOrders(orders []model.Order, cogs map[uuid.UUID]int64) (revenue, costs int64) {
	for _, order := range orders {
		for _, item := range order.Items {
			revenue += item.PriceCents * int64(item.Quantity)
			if c, ok := cogs[item.PieceID]; ok {
				costs += c * int64(item.Quantity)
			}
		}
	}
	return revenue, costs
}

// marginPercent returns profit over revenue in rounded whole percent,
// 0 when revenue is zero.
func marginPercent(profit, revenue int64) int64 {
	if revenue <= 0 {
		return 0
	}
	return int64(math.Round(float64(profit) / float64(revenue) * 100))
}

// percentChange reports the relative change against a baseline, rounded
// to one decimal place. A zero or negative baseline reports 0.
func percentChange(current, baseline int64) float64 {
	if baseline <= 0 {
		return 0
	}
	change := float64(current-baseline) / float64(baseline) * 100
	return math.Round(change*10) / 10
}
