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

type CreatePieceRequest struct {
	SKU        string `json:"sku" binding:"required,max=100"`
	Title      string `json:"title" binding:"required,max=255"`
	Status     string `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE SOLD ARCHIVED"`
	PriceCents int64  `json:"price_cents" binding:"required,gt=0"`
	CogsCents  *int64 `json:"cogs_cents" binding:"omitempty,gte=0"`
	Quantity   int    `json:"quantity" binding:"omitempty,gte=0"`
}

type UpdatePieceRequest struct {
	Title      string `json:"title" binding:"required,max=255"`
	Status     string `json:"status" binding:"required,oneof=DRAFT ACTIVE SOLD ARCHIVED"`
	PriceCents int64  `json:"price_cents" binding:"required,gt=0"`
	CogsCents  *int64 `json:"cogs_cents" binding:"omitempty,gte=0"`
	Quantity   int    `json:"quantity" binding:"gte=0"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1,max=100"`
	Status string   `json:"status" binding:"required"`
}

type BulkStatusResponse struct {
	Updated int64 `json:"updated"`
}

type PieceListFilter struct {
	Status string
	Page   int
	Limit  int
}

// --- Interface ---

type PieceService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req CreatePieceRequest) (*model.Piece, error)
	Get(ctx context.Context, tenantID uuid.UUID, id string) (*model.Piece, error)
	Update(ctx context.Context, tenantID uuid.UUID, id string, req UpdatePieceRequest) (*model.Piece, error)
	Delete(ctx context.Context, tenantID uuid.UUID, id string) error
	List(ctx context.Context, tenantID uuid.UUID, filter PieceListFilter) ([]model.Piece, int64, error)
	BulkStatus(ctx context.Context, tenantID uuid.UUID, req BulkStatusRequest) (BulkStatusResponse, error)
}

type pieceService struct {
	pieces    repository.PieceRepository
	dashboard DashboardService
}

func NewPieceService(pieces repository.PieceRepository, dashboard DashboardService) PieceService {
	return &pieceService{pieces: pieces, dashboard: dashboard}
}

// --- Implementation ---

var validPieceStatuses = map[string]bool{
	model.PieceStatusDraft:    true,
	model.PieceStatusActive:   true,
	model.PieceStatusSold:     true,
	model.PieceStatusArchived: true,
}

func (s *pieceService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePieceRequest) (*model.Piece, error) {
	status := req.Status
	if status == "" {
		status = model.PieceStatusDraft
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	piece := &model.Piece{
		TenantID:   tenantID,
		SKU:        req.SKU,
		Title:      req.Title,
		Status:     status,
		PriceCents: req.PriceCents,
		CogsCents:  req.CogsCents,
		Quantity:   quantity,
	}

	if err := s.pieces.Create(ctx, piece); err != nil {
		return nil, fmt.Errorf("failed to create piece: %w", err)
	}

	s.dashboard.Invalidate(ctx, tenantID)
	return piece, nil
}

func (s *pieceService) Get(ctx context.Context, tenantID uuid.UUID, id string) (*model.Piece, error) {
	pieceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid piece id", ErrValidation)
	}

	piece, err := s.pieces.FindByID(ctx, tenantID, pieceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: piece", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch piece: %w", err)
	}
	return piece, nil
}

func (s *pieceService) Update(ctx context.Context, tenantID uuid.UUID, id string, req UpdatePieceRequest) (*model.Piece, error) {
	piece, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	piece.Title = req.Title
	piece.Status = req.Status
	piece.PriceCents = req.PriceCents
	piece.CogsCents = req.CogsCents
	piece.Quantity = req.Quantity

	if err := s.pieces.Update(ctx, piece); err != nil {
		return nil, fmt.Errorf("failed to update piece: %w", err)
	}

	s.dashboard.Invalidate(ctx, tenantID)
	return piece, nil
}

func (s *pieceService) Delete(ctx context.Context, tenantID uuid.UUID, id string) error {
	piece, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := s.pieces.Delete(ctx, tenantID, piece.ID); err != nil {
		return fmt.Errorf("failed to delete piece: %w", err)
	}

	s.dashboard.Invalidate(ctx, tenantID)
	return nil
}

func (s *pieceService) List(ctx context.Context, tenantID uuid.UUID, filter PieceListFilter) ([]model.Piece, int64, error) {
	if filter.Status != "" && !validPieceStatuses[filter.Status] {
		return nil, 0, fmt.Errorf("%w: unknown piece status %q", ErrValidation, filter.Status)
	}

	pieces, total, err := s.pieces.List(ctx, tenantID, filter.Status, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pieces: %w", err)
	}
	return pieces, total, nil
}

func (s *pieceService) BulkStatus(ctx context.Context, tenantID uuid.UUID, req BulkStatusRequest) (BulkStatusResponse, error) {
	if !validPieceStatuses[req.Status] {
		return BulkStatusResponse{}, fmt.Errorf("%w: unknown piece status %q", ErrValidation, req.Status)
	}

	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		return BulkStatusResponse{}, err
	}

	updated, err := s.pieces.BulkUpdateStatus(ctx, tenantID, ids, req.Status)
	if err != nil {
		return BulkStatusResponse{}, fmt.Errorf("failed to bulk update pieces: %w", err)
	}

	s.dashboard.Invalidate(ctx, tenantID)
	return BulkStatusResponse{Updated: updated}, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid id %q", ErrValidation, r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
