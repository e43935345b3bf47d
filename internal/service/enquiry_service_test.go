package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnquiryCreate(t *testing.T) {
	tenantID := uuid.New()
	tenant := &model.Tenant{ID: tenantID, Slug: "clay-and-kiln"}
	req := CreateEnquiryRequest{Email: "visitor@example.com", Subject: "Commission?", Body: "Do you take custom orders?"}

	t.Run("records the enquiry and notifies the dashboard", func(t *testing.T) {
		engagement := &stubEngagementRepo{}
		dashboard := &noopDashboard{}
		notifier := &stubNotifier{}
		svc := NewEnquiryService(engagement, &stubTenantRepo{tenant: tenant}, dashboard, notifier)

		enquiry, err := svc.Create(context.Background(), "clay-and-kiln", req)
		require.NoError(t, err)

		assert.Equal(t, tenantID, enquiry.TenantID)
		assert.Equal(t, model.EnquiryStatusNew, enquiry.Status)
		assert.Equal(t, tenantID, engagement.created.TenantID)
		assert.Equal(t, 1, dashboard.invalidations)
		assert.Equal(t, []string{"enquiry.created"}, notifier.events)
	})

	t.Run("unknown slug maps to not found", func(t *testing.T) {
		svc := NewEnquiryService(&stubEngagementRepo{}, &stubTenantRepo{err: gorm.ErrRecordNotFound}, &noopDashboard{}, &stubNotifier{})

		_, err := svc.Create(context.Background(), "nobody-here", req)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestEnquiryUpdateStatus(t *testing.T) {
	tenantID := uuid.New()

	t.Run("invalidates the dashboard after an update", func(t *testing.T) {
		dashboard := &noopDashboard{}
		svc := NewEnquiryService(&stubEngagementRepo{}, &stubTenantRepo{}, dashboard, &stubNotifier{})

		err := svc.UpdateStatus(context.Background(), tenantID, uuid.New().String(), UpdateEnquiryStatusRequest{Status: model.EnquiryStatusReplied})
		require.NoError(t, err)
		assert.Equal(t, 1, dashboard.invalidations)
	})

	t.Run("malformed id is invalid", func(t *testing.T) {
		svc := NewEnquiryService(&stubEngagementRepo{}, &stubTenantRepo{}, &noopDashboard{}, &stubNotifier{})

		err := svc.UpdateStatus(context.Background(), tenantID, "oops", UpdateEnquiryStatusRequest{Status: model.EnquiryStatusClosed})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
