package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier pushes admin notifications to a tenant's connected dashboard
// clients. Implemented by the websocket hub.
type Notifier interface {
	NotifyTenant(tenantID uuid.UUID, event string, payload interface{})
}

// --- DTOs ---

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PAID SHIPPED DELIVERED CANCELLED"`
}

type OrderListFilter struct {
	Status string
	Page   int
	Limit  int
}

// --- Interface ---

type OrderService interface {
	Get(ctx context.Context, tenantID uuid.UUID, id string) (*model.Order, error)
	List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, tenantID uuid.UUID, id string, req UpdateOrderStatusRequest) (*model.Order, error)
	BulkStatus(ctx context.Context, tenantID uuid.UUID, req BulkStatusRequest) (BulkStatusResponse, error)
	ExportCSV(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]byte, error)
}

type orderService struct {
	orders    repository.OrderRepository
	txManager repository.TransactionManager
	dashboard DashboardService
	notifier  Notifier
}

func NewOrderService(orders repository.OrderRepository, txManager repository.TransactionManager, dashboard DashboardService, notifier Notifier) OrderService {
	return &orderService{
		orders:    orders,
		txManager: txManager,
		dashboard: dashboard,
		notifier:  notifier,
	}
}

// --- Implementation ---

var validOrderStatuses = map[string]bool{
	model.OrderStatusPending:   true,
	model.OrderStatusPaid:      true,
	model.OrderStatusShipped:   true,
	model.OrderStatusDelivered: true,
	model.OrderStatusCancelled: true,
}

func (s *orderService) Get(ctx context.Context, tenantID uuid.UUID, id string) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order id", ErrValidation)
	}

	order, err := s.orders.FindByIDWithItems(ctx, tenantID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]model.Order, int64, error) {
	if filter.Status != "" && !validOrderStatuses[filter.Status] {
		return nil, 0, fmt.Errorf("%w: unknown order status %q", ErrValidation, filter.Status)
	}

	orders, total, err := s.orders.List(ctx, tenantID, filter.Status, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, tenantID uuid.UUID, id string, req UpdateOrderStatusRequest) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order id", ErrValidation)
	}

	if err := s.orders.UpdateStatus(ctx, tenantID, orderID, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order, err := s.orders.FindByIDWithItems(ctx, tenantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated order: %w", err)
	}

	s.dashboard.Invalidate(ctx, tenantID)
	s.notifier.NotifyTenant(tenantID, "order.status_changed", map[string]string{
		"order_id": order.ID.String(),
		"order_no": order.OrderNo,
		"status":   order.Status,
	})

	return order, nil
}

// BulkStatus updates every listed order in one database transaction so a
// partial failure doesn't leave a half-applied batch.
func (s *orderService) BulkStatus(ctx context.Context, tenantID uuid.UUID, req BulkStatusRequest) (BulkStatusResponse, error) {
	if !validOrderStatuses[req.Status] {
		return BulkStatusResponse{}, fmt.Errorf("%w: unknown order status %q", ErrValidation, req.Status)
	}

	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		return BulkStatusResponse{}, err
	}

	var updated int64
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		updated, txErr = s.orders.BulkUpdateStatus(txCtx, tenantID, ids, req.Status)
		return txErr
	})
	if err != nil {
		return BulkStatusResponse{}, fmt.Errorf("failed to bulk update orders: %w", err)
	}

	s.dashboard.Invalidate(ctx, tenantID)
	s.notifier.NotifyTenant(tenantID, "order.bulk_status_changed", map[string]interface{}{
		"updated": updated,
		"status":  req.Status,
	})

	return BulkStatusResponse{Updated: updated}, nil
}

// ExportCSV writes paid orders in range as a flat line-item CSV. Amounts
// are major units for spreadsheet use.
func (s *orderService) ExportCSV(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]byte, error) {
	orders, err := s.orders.PaidInRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"order_no", "status", "paid_at", "piece_id", "quantity", "unit_price", "line_total", "currency"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, order := range orders {
		paidAt := ""
		if order.PaidAt != nil {
			paidAt = order.PaidAt.Format(time.RFC3339)
		}
		for _, item := range order.Items {
			lineTotal := item.PriceCents * int64(item.Quantity)
			record := []string{
				order.OrderNo,
				order.Status,
				paidAt,
				item.PieceID.String(),
				strconv.Itoa(item.Quantity),
				formatCents(item.PriceCents),
				formatCents(lineTotal),
				order.Currency,
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write csv record: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
