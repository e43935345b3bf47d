package service

import (
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func paidOrder(items ...model.OrderItem) model.Order {
	return model.Order{
		ID:            uuid.New(),
		Status:        model.OrderStatusPaid,
		PaymentStatus: model.PaymentStatusPaid,
		Items:         items,
	}
}

func TestCalculateProfitability(t *testing.T) {
	mug := uuid.New()
	bowl := uuid.New()
	cogs := map[uuid.UUID]int64{
		mug:  2000,
		bowl: 3000,
	}

	current := []model.Order{
		paidOrder(model.OrderItem{PieceID: mug, Quantity: 2, PriceCents: 5000}),
		paidOrder(model.OrderItem{PieceID: bowl, Quantity: 1, PriceCents: 10000}),
	}

	t.Run("computes revenue, costs, profit and margin", func(t *testing.T) {
		got := CalculateProfitability(current, nil, cogs)

		assert.Equal(t, int64(20000), got.RevenueCents)
		assert.Equal(t, int64(7000), got.MaterialCostCents)
		assert.Equal(t, int64(13000), got.ProfitCents)
		assert.Equal(t, int64(65), got.ProfitMargin)
	})

	t.Run("zero previous period reports zero change", func(t *testing.T) {
		got := CalculateProfitability(current, nil, cogs)

		assert.Zero(t, got.RevenueChange)
		assert.Zero(t, got.ProfitChange)
		assert.Equal(t, float64(65), got.MarginChange)
	})

	t.Run("change against previous period", func(t *testing.T) {
		previous := []model.Order{
			paidOrder(model.OrderItem{PieceID: mug, Quantity: 2, PriceCents: 5000}),
		}

		got := CalculateProfitability(current, previous, cogs)

		// 20000 vs 10000 revenue, 13000 vs 6000 profit
		assert.Equal(t, float64(100), got.RevenueChange)
		assert.InDelta(t, 116.7, got.ProfitChange, 0.001)
		assert.Equal(t, float64(5), got.MarginChange) // 65% vs 60%
	})

	t.Run("missing cogs contributes zero cost", func(t *testing.T) {
		unknown := uuid.New()
		orders := []model.Order{
			paidOrder(model.OrderItem{PieceID: unknown, Quantity: 3, PriceCents: 4000}),
		}

		got := CalculateProfitability(orders, nil, cogs)

		assert.Equal(t, int64(12000), got.RevenueCents)
		assert.Zero(t, got.MaterialCostCents)
		assert.Equal(t, int64(12000), got.ProfitCents)
		assert.Equal(t, int64(100), got.ProfitMargin)
	})

	t.Run("no orders yields all zeros", func(t *testing.T) {
		got := CalculateProfitability(nil, nil, nil)

		assert.Equal(t, model.Profitability{}, got)
	})

	t.Run("negative profit keeps a negative margin", func(t *testing.T) {
		orders := []model.Order{
			paidOrder(model.OrderItem{PieceID: bowl, Quantity: 1, PriceCents: 1500}),
		}

		got := CalculateProfitability(orders, nil, cogs)

		assert.Equal(t, int64(-1500), got.ProfitCents)
		assert.Equal(t, int64(-100), got.ProfitMargin)
	})
}

func TestMarginPercent(t *testing.T) {
	assert.Equal(t, int64(0), marginPercent(500, 0))
	assert.Equal(t, int64(0), marginPercent(500, -100))
	assert.Equal(t, int64(50), marginPercent(500, 1000))
	assert.Equal(t, int64(33), marginPercent(1, 3))
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, float64(0), percentChange(1000, 0))
	assert.Equal(t, float64(0), percentChange(1000, -50))
	assert.Equal(t, float64(100), percentChange(2000, 1000))
	assert.Equal(t, float64(-50), percentChange(500, 1000))
	assert.Equal(t, 33.3, percentChange(4000, 3000))
}
