package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backend/internal/cache"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DashboardTTL bounds how stale a cached dashboard may be. The dashboard
// is read-mostly; sub-minute staleness is acceptable.
const DashboardTTL = 60 * time.Second

const profitWindow = 30 * 24 * time.Hour

// DashboardService merges counts, sales summaries, balance, funnel and
// profitability into the single stats payload the admin UI renders.
type DashboardService interface {
	// Stats returns the serialized stats JSON. Serving bytes straight
	// from the cache keeps repeated reads within the TTL byte-identical.
	Stats(ctx context.Context, tenantID uuid.UUID) ([]byte, error)
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

type dashboardService struct {
	pieces     repository.PieceRepository
	orders     repository.OrderRepository
	txns       repository.TransactionRepository
	engagement repository.EngagementRepository
	cache      cache.Cache
	now        func() time.Time
}

func NewDashboardService(
	pieces repository.PieceRepository,
	orders repository.OrderRepository,
	txns repository.TransactionRepository,
	engagement repository.EngagementRepository,
	c cache.Cache,
) DashboardService {
	return &dashboardService{
		pieces:     pieces,
		orders:     orders,
		txns:       txns,
		engagement: engagement,
		cache:      c,
		now:        time.Now,
	}
}

func dashboardCacheKey(tenantID uuid.UUID) string {
	return "dashboard:stats:" + tenantID.String()
}

func (s *dashboardService) Stats(ctx context.Context, tenantID uuid.UUID) ([]byte, error) {
	key := dashboardCacheKey(tenantID)
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	stats, err := s.aggregate(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dashboard stats: %w", err)
	}

	s.cache.Set(ctx, key, payload, DashboardTTL)
	return payload, nil
}

func (s *dashboardService) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	s.cache.Delete(ctx, dashboardCacheKey(tenantID))
}

// aggregate fans out the independent reads concurrently. They touch
// disjoint data, so no ordering is needed among them; only the
// profitability step waits for the two order windows.
func (s *dashboardService) aggregate(ctx context.Context, tenantID uuid.UUID) (model.DashboardStats, error) {
	now := s.now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	lastMonthEnd := monthStart.Add(-time.Nanosecond)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	windowStart := now.Add(-profitWindow)
	prevWindowStart := now.Add(-2 * profitWindow)

	stats := model.DashboardStats{GeneratedAt: now}
	var currentOrders, previousOrders []model.Order

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.PieceCount, err = s.pieces.Count(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.MediaCount, err = s.engagement.CountMedia(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.OrderCount, err = s.orders.Count(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.EnquiryCount, err = s.engagement.CountEnquiries(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.RecentOrders, err = s.orders.Recent(gctx, tenantID, 5)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Today, err = s.txns.SummarizeSales(gctx, tenantID, todayStart, now)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ThisMonth, err = s.txns.SummarizeSales(gctx, tenantID, monthStart, now)
		return err
	})
	g.Go(func() error {
		var err error
		stats.LastMonth, err = s.txns.SummarizeSales(gctx, tenantID, lastMonthStart, lastMonthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Balance, err = s.txns.LatestBalance(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.YTDFeeCents, err = s.txns.SumFees(gctx, tenantID, yearStart, now)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Funnel, err = s.engagement.FunnelCounts(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		currentOrders, err = s.orders.PaidInRange(gctx, tenantID, windowStart, now)
		return err
	})
	g.Go(func() error {
		var err error
		previousOrders, err = s.orders.PaidInRange(gctx, tenantID, prevWindowStart, windowStart.Add(-time.Nanosecond))
		return err
	})

	if err := g.Wait(); err != nil {
		return model.DashboardStats{}, fmt.Errorf("dashboard aggregation failed: %w", err)
	}

	cogs, err := s.pieces.CogsByPieceIDs(ctx, tenantID, pieceIDsFromOrders(currentOrders, previousOrders))
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("failed to fetch piece costs: %w", err)
	}
	stats.Profitability = CalculateProfitability(currentOrders, previousOrders, cogs)

	if stats.RecentOrders == nil {
		stats.RecentOrders = []model.Order{}
	}

	return stats, nil
}

func pieceIDsFromOrders(orderSets ...[]model.Order) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, orders := range orderSets {
		for _, order := range orders {
			for _, item := range order.Items {
				if _, ok := seen[item.PieceID]; ok {
					continue
				}
				seen[item.PieceID] = struct{}{}
				ids = append(ids, item.PieceID)
			}
		}
	}
	return ids
}
