package repository

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	List(ctx context.Context, tenantID uuid.UUID, txType, status string, page, limit int) ([]model.Transaction, int64, error)
	SummarizeSales(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (model.SalesSummary, error)
	SummarizeRefunds(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (model.RefundSummary, error)
	SumFees(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (int64, error)
	LatestBalance(ctx context.Context, tenantID uuid.UUID) (model.BalanceSnapshot, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) List(ctx context.Context, tenantID uuid.UUID, txType, status string, page, limit int) ([]model.Transaction, int64, error) {
	var txns []model.Transaction
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Transaction{}).Where("tenant_id = ?", tenantID)
	if txType != "" {
		query = query.Where("type = ?", txType)
	}
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
		Find(&txns).Error; err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}

// SummarizeSales sums completed SALE transactions in the inclusive range.
// COALESCE keeps empty ranges at zero rather than NULL.
func (r *transactionRepository) SummarizeSales(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (model.SalesSummary, error) {
	var row struct {
		SalesCount       int64
		GrossCents       int64
		NetCents         int64
		StripeFeeCents   int64
		PlatformFeeCents int64
	}

	err := GetDB(ctx, r.db).Model(&model.Transaction{}).
		Select(`COUNT(*) as sales_count,
			COALESCE(SUM(gross_cents), 0) as gross_cents,
			COALESCE(SUM(net_cents), 0) as net_cents,
			COALESCE(SUM(stripe_fee_cents), 0) as stripe_fee_cents,
			COALESCE(SUM(platform_fee_cents), 0) as platform_fee_cents`).
		Where("tenant_id = ? AND type = ? AND status = ? AND created_at >= ? AND created_at <= ?",
			tenantID, model.TxTypeSale, model.TxStatusCompleted, start, end).
		Scan(&row).Error
	if err != nil {
		return model.SalesSummary{}, err
	}

	return model.SalesSummary{
		SalesCount:       row.SalesCount,
		GrossCents:       row.GrossCents,
		NetCents:         row.NetCents,
		StripeFeeCents:   row.StripeFeeCents,
		PlatformFeeCents: row.PlatformFeeCents,
	}, nil
}

func (r *transactionRepository) SummarizeRefunds(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (model.RefundSummary, error) {
	var row struct {
		RefundCount int64
		AmountCents int64
	}

	err := GetDB(ctx, r.db).Model(&model.Transaction{}).
		Select("COUNT(*) as refund_count, COALESCE(SUM(gross_cents), 0) as amount_cents").
		Where("tenant_id = ? AND type = ? AND status = ? AND created_at >= ? AND created_at <= ?",
			tenantID, model.TxTypeRefund, model.TxStatusCompleted, start, end).
		Scan(&row).Error
	if err != nil {
		return model.RefundSummary{}, err
	}

	return model.RefundSummary{
		RefundCount: row.RefundCount,
		AmountCents: row.AmountCents,
	}, nil
}

// SumFees totals stripe and platform fees over completed sales plus
// standalone FEE transactions in the range.
func (r *transactionRepository) SumFees(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (int64, error) {
	var row struct {
		FeeCents int64
	}

	err := GetDB(ctx, r.db).Model(&model.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN type = ? THEN gross_cents ELSE stripe_fee_cents + platform_fee_cents END), 0) as fee_cents`,
			model.TxTypeFee).
		Where("tenant_id = ? AND status = ? AND type IN ? AND created_at >= ? AND created_at <= ?",
			tenantID, model.TxStatusCompleted, []string{model.TxTypeSale, model.TxTypeFee}, start, end).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}

	return row.FeeCents, nil
}

// LatestBalance returns the newest balance snapshot, or zeros when the
// tenant has none yet.
func (r *transactionRepository) LatestBalance(ctx context.Context, tenantID uuid.UUID) (model.BalanceSnapshot, error) {
	var snapshot model.BalanceSnapshot
	err := GetDB(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("captured_at DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.BalanceSnapshot{TenantID: tenantID}, nil
		}
		return model.BalanceSnapshot{}, err
	}
	return snapshot, nil
}
