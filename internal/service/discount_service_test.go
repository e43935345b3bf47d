package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDiscountRepo struct {
	activeCount int64
	created     *model.Discount
}

func (s *stubDiscountRepo) Create(ctx context.Context, discount *model.Discount) error {
	s.created = discount
	return nil
}
func (s *stubDiscountRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Discount, error) {
	return nil, nil
}
func (s *stubDiscountRepo) Update(ctx context.Context, discount *model.Discount) error { return nil }
func (s *stubDiscountRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error   { return nil }
func (s *stubDiscountRepo) List(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.Discount, int64, error) {
	return nil, 0, nil
}
func (s *stubDiscountRepo) CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return s.activeCount, nil
}

func TestDiscountCreate(t *testing.T) {
	tenantID := uuid.New()
	freeTenant := &model.Tenant{ID: tenantID, Plan: model.PlanFree}
	proTenant := &model.Tenant{ID: tenantID, Plan: model.PlanPro}

	req := CreateDiscountRequest{Code: "LAUNCH10", Kind: model.DiscountKindPercent, Value: 10}

	t.Run("free plan under the cap succeeds", func(t *testing.T) {
		repo := &stubDiscountRepo{activeCount: 2}
		svc := NewDiscountService(repo, &stubTenantRepo{tenant: freeTenant})

		discount, err := svc.Create(context.Background(), tenantID, req)
		require.NoError(t, err)
		assert.True(t, discount.Active)
		assert.Equal(t, tenantID, repo.created.TenantID)
	})

	t.Run("free plan at the cap is rejected", func(t *testing.T) {
		repo := &stubDiscountRepo{activeCount: freePlanDiscountLimit}
		svc := NewDiscountService(repo, &stubTenantRepo{tenant: freeTenant})

		_, err := svc.Create(context.Background(), tenantID, req)
		assert.ErrorIs(t, err, ErrSubscriptionLimit)
		assert.Nil(t, repo.created)
	})

	t.Run("pro plan ignores the cap", func(t *testing.T) {
		repo := &stubDiscountRepo{activeCount: 50}
		svc := NewDiscountService(repo, &stubTenantRepo{tenant: proTenant})

		_, err := svc.Create(context.Background(), tenantID, req)
		require.NoError(t, err)
	})

	t.Run("inactive discount skips the cap", func(t *testing.T) {
		inactive := false
		repo := &stubDiscountRepo{activeCount: freePlanDiscountLimit}
		svc := NewDiscountService(repo, &stubTenantRepo{tenant: freeTenant})

		r := req
		r.Active = &inactive
		discount, err := svc.Create(context.Background(), tenantID, r)
		require.NoError(t, err)
		assert.False(t, discount.Active)
	})

	t.Run("percent over 100 is invalid", func(t *testing.T) {
		svc := NewDiscountService(&stubDiscountRepo{}, &stubTenantRepo{tenant: freeTenant})

		r := req
		r.Value = 150
		_, err := svc.Create(context.Background(), tenantID, r)
		assert.ErrorIs(t, err, ErrValidation)
	})
}
