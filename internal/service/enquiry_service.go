package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateEnquiryRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=255"`
	Body    string `json:"body" binding:"omitempty,max=5000"`
}

type UpdateEnquiryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=NEW REPLIED CLOSED"`
}

type EnquiryListFilter struct {
	Status string
	Page   int
	Limit  int
}

// --- Interface ---

type EnquiryService interface {
	// Create records a storefront visitor's enquiry, addressed by the
	// tenant's public slug, and notifies connected dashboard sessions.
	Create(ctx context.Context, slug string, req CreateEnquiryRequest) (*model.Enquiry, error)
	List(ctx context.Context, tenantID uuid.UUID, filter EnquiryListFilter) ([]model.Enquiry, int64, error)
	UpdateStatus(ctx context.Context, tenantID uuid.UUID, id string, req UpdateEnquiryStatusRequest) error
}

type enquiryService struct {
	engagement repository.EngagementRepository
	tenants    repository.TenantRepository
	dashboard  DashboardService
	notifier   Notifier
}

func NewEnquiryService(engagement repository.EngagementRepository, tenants repository.TenantRepository, dashboard DashboardService, notifier Notifier) EnquiryService {
	return &enquiryService{
		engagement: engagement,
		tenants:    tenants,
		dashboard:  dashboard,
		notifier:   notifier,
	}
}

// --- Implementation ---

func (s *enquiryService) Create(ctx context.Context, slug string, req CreateEnquiryRequest) (*model.Enquiry, error) {
	tenant, err := s.tenants.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: store", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch tenant: %w", err)
	}

	enquiry := &model.Enquiry{
		TenantID: tenant.ID,
		Email:    req.Email,
		Subject:  req.Subject,
		Body:     req.Body,
		Status:   model.EnquiryStatusNew,
	}
	if err := s.engagement.CreateEnquiry(ctx, enquiry); err != nil {
		return nil, fmt.Errorf("failed to create enquiry: %w", err)
	}

	s.dashboard.Invalidate(ctx, tenant.ID)
	s.notifier.NotifyTenant(tenant.ID, "enquiry.created", map[string]string{
		"enquiry_id": enquiry.ID.String(),
		"email":      enquiry.Email,
		"subject":    enquiry.Subject,
	})

	return enquiry, nil
}

func (s *enquiryService) List(ctx context.Context, tenantID uuid.UUID, filter EnquiryListFilter) ([]model.Enquiry, int64, error) {
	enquiries, total, err := s.engagement.ListEnquiries(ctx, tenantID, filter.Status, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enquiries: %w", err)
	}
	return enquiries, total, nil
}

func (s *enquiryService) UpdateStatus(ctx context.Context, tenantID uuid.UUID, id string, req UpdateEnquiryStatusRequest) error {
	enquiryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid enquiry id", ErrValidation)
	}

	if err := s.engagement.UpdateEnquiryStatus(ctx, tenantID, enquiryID, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: enquiry", ErrNotFound)
		}
		return fmt.Errorf("failed to update enquiry status: %w", err)
	}

	s.dashboard.Invalidate(ctx, tenantID)
	return nil
}
