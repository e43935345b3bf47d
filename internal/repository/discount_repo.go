package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(ctx context.Context, discount *model.Discount) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Discount, error)
	Update(ctx context.Context, discount *model.Discount) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.Discount, int64, error)
	CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, discount *model.Discount) error {
	return GetDB(ctx, r.db).Create(discount).Error
}

func (r *discountRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Discount, error) {
	var discount model.Discount
	if err := GetDB(ctx, r.db).First(&discount, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) Update(ctx context.Context, discount *model.Discount) error {
	return GetDB(ctx, r.db).Save(discount).Error
}

func (r *discountRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Discount{}, "id = ? AND tenant_id = ?", id, tenantID).Error
}

func (r *discountRepository) List(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.Discount, int64, error) {
	var discounts []model.Discount
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Discount{}).Where("tenant_id = ?", tenantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&discounts).Error; err != nil {
		return nil, 0, err
	}

	return discounts, total, nil
}

func (r *discountRepository) CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Discount{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Count(&count).Error
	return count, err
}
