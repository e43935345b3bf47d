package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Free-plan tenants may hold this many active discounts at once
const freePlanDiscountLimit = 3

// --- DTOs ---

type CreateDiscountRequest struct {
	Code      string     `json:"code" binding:"required,max=50"`
	Kind      string     `json:"kind" binding:"required,oneof=PERCENT FIXED"`
	Value     int64      `json:"value" binding:"required,gt=0"`
	Active    *bool      `json:"active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type UpdateDiscountRequest struct {
	Kind      string     `json:"kind" binding:"required,oneof=PERCENT FIXED"`
	Value     int64      `json:"value" binding:"required,gt=0"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// --- Interface ---

type DiscountService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req CreateDiscountRequest) (*model.Discount, error)
	Update(ctx context.Context, tenantID uuid.UUID, id string, req UpdateDiscountRequest) (*model.Discount, error)
	Delete(ctx context.Context, tenantID uuid.UUID, id string) error
	List(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.Discount, int64, error)
}

type discountService struct {
	discounts repository.DiscountRepository
	tenants   repository.TenantRepository
}

func NewDiscountService(discounts repository.DiscountRepository, tenants repository.TenantRepository) DiscountService {
	return &discountService{discounts: discounts, tenants: tenants}
}

// --- Implementation ---

func (s *discountService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDiscountRequest) (*model.Discount, error) {
	if req.Kind == model.DiscountKindPercent && req.Value > 100 {
		return nil, fmt.Errorf("%w: percent discount cannot exceed 100", ErrValidation)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tenant: %w", err)
	}

	// Plan gating: the free plan caps concurrent active discounts
	if active && tenant.Plan == model.PlanFree {
		count, err := s.discounts.CountActive(ctx, tenant.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count active discounts: %w", err)
		}
		if count >= freePlanDiscountLimit {
			return nil, fmt.Errorf("%w: free plan allows %d active discounts", ErrSubscriptionLimit, freePlanDiscountLimit)
		}
	}

	discount := &model.Discount{
		TenantID:  tenant.ID,
		Code:      req.Code,
		Kind:      req.Kind,
		Value:     req.Value,
		Active:    active,
		ExpiresAt: req.ExpiresAt,
	}
	if err := s.discounts.Create(ctx, discount); err != nil {
		return nil, fmt.Errorf("failed to create discount: %w", err)
	}
	return discount, nil
}

func (s *discountService) Update(ctx context.Context, tenantID uuid.UUID, id string, req UpdateDiscountRequest) (*model.Discount, error) {
	discountID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid discount id", ErrValidation)
	}

	discount, err := s.discounts.FindByID(ctx, tenantID, discountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: discount", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch discount: %w", err)
	}

	if req.Kind == model.DiscountKindPercent && req.Value > 100 {
		return nil, fmt.Errorf("%w: percent discount cannot exceed 100", ErrValidation)
	}

	discount.Kind = req.Kind
	discount.Value = req.Value
	discount.Active = req.Active
	discount.ExpiresAt = req.ExpiresAt

	if err := s.discounts.Update(ctx, discount); err != nil {
		return nil, fmt.Errorf("failed to update discount: %w", err)
	}
	return discount, nil
}

func (s *discountService) Delete(ctx context.Context, tenantID uuid.UUID, id string) error {
	discountID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid discount id", ErrValidation)
	}

	discount, err := s.discounts.FindByID(ctx, tenantID, discountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: discount", ErrNotFound)
		}
		return fmt.Errorf("failed to fetch discount: %w", err)
	}

	if err := s.discounts.Delete(ctx, tenantID, discount.ID); err != nil {
		return fmt.Errorf("failed to delete discount: %w", err)
	}
	return nil
}

func (s *discountService) List(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.Discount, int64, error) {
	discounts, total, err := s.discounts.List(ctx, tenantID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list discounts: %w", err)
	}
	return discounts, total, nil
}
