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

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"omitempty,max=20"`
}

type UpdateCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"omitempty,max=20"`
}

// --- Interface ---

type CustomerService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*model.Customer, error)
	Get(ctx context.Context, tenantID uuid.UUID, id string) (*model.Customer, error)
	Update(ctx context.Context, tenantID uuid.UUID, id string, req UpdateCustomerRequest) (*model.Customer, error)
	Delete(ctx context.Context, tenantID uuid.UUID, id string) error
	List(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.Customer, int64, error)
}

type customerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

// --- Implementation ---

func (s *customerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) Get(ctx context.Context, tenantID uuid.UUID, id string) (*model.Customer, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer id", ErrValidation)
	}

	customer, err := s.customers.FindByID(ctx, tenantID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, tenantID uuid.UUID, id string, req UpdateCustomerRequest) (*model.Customer, error) {
	customer, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, tenantID uuid.UUID, id string) error {
	customer, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := s.customers.Delete(ctx, tenantID, customer.ID); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (s *customerService) List(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.Customer, int64, error) {
	customers, total, err := s.customers.List(ctx, tenantID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}
