package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"backend/internal/cache"
	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubPieceRepo struct {
	count int64
	cogs  map[uuid.UUID]int64
}

func (s *stubPieceRepo) Create(ctx context.Context, piece *model.Piece) error { return nil }
func (s *stubPieceRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Piece, error) {
	return nil, nil
}
func (s *stubPieceRepo) Update(ctx context.Context, piece *model.Piece) error        { return nil }
func (s *stubPieceRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error    { return nil }
func (s *stubPieceRepo) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return s.count, nil
}
func (s *stubPieceRepo) List(ctx context.Context, tenantID uuid.UUID, status string, page, limit int) ([]model.Piece, int64, error) {
	return nil, 0, nil
}
func (s *stubPieceRepo) BulkUpdateStatus(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, status string) (int64, error) {
	return 0, nil
}
func (s *stubPieceRepo) CogsByPieceIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	return s.cogs, nil
}

type stubOrderRepo struct {
	count       int64
	recent      []model.Order
	current     []model.Order
	previous    []model.Order
	order       *model.Order
	updateErr   error
	bulkUpdated int64
	windowStart time.Time
	countCalls  atomic.Int64
}

func (s *stubOrderRepo) FindByIDWithItems(ctx context.Context, tenantID, id uuid.UUID) (*model.Order, error) {
	if s.order == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}
func (s *stubOrderRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.order != nil {
		s.order.Status = status
	}
	return nil
}
func (s *stubOrderRepo) BulkUpdateStatus(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, status string) (int64, error) {
	return s.bulkUpdated, nil
}
func (s *stubOrderRepo) List(ctx context.Context, tenantID uuid.UUID, status string, page, limit int) ([]model.Order, int64, error) {
	return nil, 0, nil
}
func (s *stubOrderRepo) Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]model.Order, error) {
	return s.recent, nil
}
func (s *stubOrderRepo) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	s.countCalls.Add(1)
	return s.count, nil
}
func (s *stubOrderRepo) PaidInRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]model.Order, error) {
	if start.Before(s.windowStart) {
		return s.previous, nil
	}
	return s.current, nil
}

type stubEngagementRepo struct {
	enquiries int64
	media     int64
	funnel    model.FunnelCounts
	created   *model.Enquiry
}

func (s *stubEngagementRepo) CreateEnquiry(ctx context.Context, enquiry *model.Enquiry) error {
	s.created = enquiry
	return nil
}
func (s *stubEngagementRepo) ListEnquiries(ctx context.Context, tenantID uuid.UUID, status string, page, limit int) ([]model.Enquiry, int64, error) {
	return nil, 0, nil
}
func (s *stubEngagementRepo) UpdateEnquiryStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	return nil
}
func (s *stubEngagementRepo) CountEnquiries(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return s.enquiries, nil
}
func (s *stubEngagementRepo) CountMedia(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return s.media, nil
}
func (s *stubEngagementRepo) FunnelCounts(ctx context.Context, tenantID uuid.UUID) (model.FunnelCounts, error) {
	return s.funnel, nil
}

func newTestDashboard(pieces *stubPieceRepo, orders *stubOrderRepo, txns *stubTxnRepo, engagement *stubEngagementRepo, at time.Time) *dashboardService {
	return &dashboardService{
		pieces:     pieces,
		orders:     orders,
		txns:       txns,
		engagement: engagement,
		cache:      cache.NewMemoryCache(),
		now:        func() time.Time { return at },
	}
}

func TestDashboardStats(t *testing.T) {
	tenantID := uuid.New()
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	t.Run("tenant with no data gets a zero payload", func(t *testing.T) {
		orders := &stubOrderRepo{windowStart: now.Add(-profitWindow)}
		svc := newTestDashboard(&stubPieceRepo{}, orders, &stubTxnRepo{}, &stubEngagementRepo{}, now)

		payload, err := svc.Stats(context.Background(), tenantID)
		require.NoError(t, err)

		var stats model.DashboardStats
		require.NoError(t, json.Unmarshal(payload, &stats))

		assert.Zero(t, stats.PieceCount)
		assert.Zero(t, stats.OrderCount)
		assert.Zero(t, stats.Today.GrossCents)
		assert.Zero(t, stats.Profitability.RevenueCents)
		assert.Zero(t, stats.Funnel.ConversionRate)
		assert.NotNil(t, stats.RecentOrders)
		assert.Empty(t, stats.RecentOrders)
		assert.Equal(t, now, stats.GeneratedAt)
	})

	t.Run("aggregates counts, summaries and profitability", func(t *testing.T) {
		mug := uuid.New()
		orders := &stubOrderRepo{
			count:       8,
			windowStart: now.Add(-profitWindow),
			recent: []model.Order{
				{ID: uuid.New(), OrderNo: "ORD-100", TotalCents: 5500},
			},
			current: []model.Order{
				paidOrder(model.OrderItem{PieceID: mug, Quantity: 2, PriceCents: 5000}),
			},
			previous: []model.Order{
				paidOrder(model.OrderItem{PieceID: mug, Quantity: 1, PriceCents: 5000}),
			},
		}
		txns := &stubTxnRepo{
			sales:   model.SalesSummary{SalesCount: 4, GrossCents: 44000, NetCents: 41000, StripeFeeCents: 2000, PlatformFeeCents: 1000},
			fees:    1200,
			balance: model.BalanceSnapshot{PendingCents: 3000, AvailableCents: 25000},
		}
		engagement := &stubEngagementRepo{
			enquiries: 3,
			media:     17,
			funnel:    model.FunnelCounts{Views: 200, Carts: 40, Checkouts: 20, Purchases: 10, ConversionRate: 5},
		}
		svc := newTestDashboard(&stubPieceRepo{count: 42, cogs: map[uuid.UUID]int64{mug: 2000}}, orders, txns, engagement, now)

		payload, err := svc.Stats(context.Background(), tenantID)
		require.NoError(t, err)

		var stats model.DashboardStats
		require.NoError(t, json.Unmarshal(payload, &stats))

		assert.Equal(t, int64(42), stats.PieceCount)
		assert.Equal(t, int64(17), stats.MediaCount)
		assert.Equal(t, int64(8), stats.OrderCount)
		assert.Equal(t, int64(3), stats.EnquiryCount)
		assert.Len(t, stats.RecentOrders, 1)
		assert.Equal(t, int64(44000), stats.Today.GrossCents)

		// with non-negative fees, gross never drops below net
		for _, summary := range []model.SalesSummary{stats.Today, stats.ThisMonth, stats.LastMonth} {
			assert.GreaterOrEqual(t, summary.GrossCents, summary.NetCents)
			assert.Equal(t, summary.GrossCents, summary.NetCents+summary.StripeFeeCents+summary.PlatformFeeCents)
		}

		assert.Equal(t, int64(25000), stats.Balance.AvailableCents)
		assert.Equal(t, int64(1200), stats.YTDFeeCents)
		assert.Equal(t, int64(5), stats.Funnel.ConversionRate)

		assert.Equal(t, int64(10000), stats.Profitability.RevenueCents)
		assert.Equal(t, int64(4000), stats.Profitability.MaterialCostCents)
		assert.Equal(t, int64(6000), stats.Profitability.ProfitCents)
		assert.Equal(t, int64(60), stats.Profitability.ProfitMargin)
		assert.Equal(t, float64(100), stats.Profitability.RevenueChange)
	})

	t.Run("repeated reads within the TTL are byte-identical", func(t *testing.T) {
		orders := &stubOrderRepo{count: 5, windowStart: now.Add(-profitWindow)}
		svc := newTestDashboard(&stubPieceRepo{count: 9}, orders, &stubTxnRepo{}, &stubEngagementRepo{}, now)

		first, err := svc.Stats(context.Background(), tenantID)
		require.NoError(t, err)
		second, err := svc.Stats(context.Background(), tenantID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int64(1), orders.countCalls.Load(), "second read must come from cache")
	})

	t.Run("invalidate forces a recompute", func(t *testing.T) {
		orders := &stubOrderRepo{windowStart: now.Add(-profitWindow)}
		svc := newTestDashboard(&stubPieceRepo{}, orders, &stubTxnRepo{}, &stubEngagementRepo{}, now)

		_, err := svc.Stats(context.Background(), tenantID)
		require.NoError(t, err)

		svc.Invalidate(context.Background(), tenantID)

		_, err = svc.Stats(context.Background(), tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), orders.countCalls.Load())
	})

	t.Run("a failed read fails the whole aggregation", func(t *testing.T) {
		orders := &stubOrderRepo{windowStart: now.Add(-profitWindow)}
		txns := &stubTxnRepo{salesErr: errors.New("connection reset")}
		svc := newTestDashboard(&stubPieceRepo{}, orders, txns, &stubEngagementRepo{}, now)

		_, err := svc.Stats(context.Background(), tenantID)
		require.Error(t, err)
	})

	t.Run("tenants are cached independently", func(t *testing.T) {
		orders := &stubOrderRepo{windowStart: now.Add(-profitWindow)}
		svc := newTestDashboard(&stubPieceRepo{}, orders, &stubTxnRepo{}, &stubEngagementRepo{}, now)

		_, err := svc.Stats(context.Background(), tenantID)
		require.NoError(t, err)
		_, err = svc.Stats(context.Background(), uuid.New())
		require.NoError(t, err)

		assert.Equal(t, int64(2), orders.countCalls.Load())
	})
}
