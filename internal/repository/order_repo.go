package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	FindByIDWithItems(ctx context.Context, tenantID, id uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error
	BulkUpdateStatus(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, status string) (int64, error)
	List(ctx context.Context, tenantID uuid.UUID, status string, page, limit int) ([]model.Order, int64, error)
	Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]model.Order, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
	PaidInRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByIDWithItems(ctx context.Context, tenantID, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Preload("Customer").
		First(&order, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	res := GetDB(ctx, r.db).Model(&model.Order{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) BulkUpdateStatus(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, status string) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Order{}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *orderRepository) List(ctx context.Context, tenantID uuid.UUID, status string, page, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Order{}).Where("tenant_id = ?", tenantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Items").
		Preload("Customer").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]model.Order, error) {
	var orders []model.Order
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Order{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

// PaidInRange returns paid orders with items for profitability reporting.
// The range is inclusive on both ends, matching the transaction summaries.
func (r *orderRepository) PaidInRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]model.Order, error) {
	var orders []model.Order
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND payment_status = ? AND paid_at >= ? AND paid_at <= ?",
			tenantID, model.PaymentStatusPaid, start, end).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
