package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EngagementRepository covers the storefront-side signals the dashboard
// reads: enquiries, media counts and the conversion funnel.
type EngagementRepository interface {
	CreateEnquiry(ctx context.Context, enquiry *model.Enquiry) error
	ListEnquiries(ctx context.Context, tenantID uuid.UUID, status string, page, limit int) ([]model.Enquiry, int64, error)
	UpdateEnquiryStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error
	CountEnquiries(ctx context.Context, tenantID uuid.UUID) (int64, error)
	CountMedia(ctx context.Context, tenantID uuid.UUID) (int64, error)
	FunnelCounts(ctx context.Context, tenantID uuid.UUID) (model.FunnelCounts, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) CreateEnquiry(ctx context.Context, enquiry *model.Enquiry) error {
	return GetDB(ctx, r.db).Create(enquiry).Error
}

func (r *engagementRepository) ListEnquiries(ctx context.Context, tenantID uuid.UUID, status string, page, limit int) ([]model.Enquiry, int64, error) {
	var enquiries []model.Enquiry
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Enquiry{}).Where("tenant_id = ?", tenantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&enquiries).Error; err != nil {
		return nil, 0, err
	}

	return enquiries, total, nil
}

func (r *engagementRepository) UpdateEnquiryStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	res := GetDB(ctx, r.db).Model(&model.Enquiry{}).
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

func (r *engagementRepository) CountEnquiries(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Enquiry{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (r *engagementRepository) CountMedia(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.MediaAsset{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (r *engagementRepository) FunnelCounts(ctx context.Context, tenantID uuid.UUID) (model.FunnelCounts, error) {
	type row struct {
		Stage string
		Total int64
	}
	var rows []row

	err := GetDB(ctx, r.db).Model(&model.FunnelEvent{}).
		Select("stage, COUNT(*) as total").
		Where("tenant_id = ?", tenantID).
		Group("stage").
		Scan(&rows).Error
	if err != nil {
		return model.FunnelCounts{}, err
	}

	var funnel model.FunnelCounts
	for _, r := range rows {
		switch r.Stage {
		case model.FunnelStageView:
			funnel.Views = r.Total
		case model.FunnelStageCart:
			funnel.Carts = r.Total
		case model.FunnelStageCheckout:
			funnel.Checkouts = r.Total
		case model.FunnelStagePurchase:
			funnel.Purchases = r.Total
		}
	}
	if funnel.Views > 0 {
		funnel.ConversionRate = funnel.Purchases * 100 / funnel.Views
	}

	return funnel, nil
}
