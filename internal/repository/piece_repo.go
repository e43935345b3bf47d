package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PieceRepository interface {
	Create(ctx context.Context, piece *model.Piece) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Piece, error)
	Update(ctx context.Context, piece *model.Piece) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, status string, page, limit int) ([]model.Piece, int64, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
	BulkUpdateStatus(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, status string) (int64, error)
	CogsByPieceIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]int64, error)
}

type pieceRepository struct {
	db *gorm.DB
}

func NewPieceRepository(db *gorm.DB) PieceRepository {
	return &pieceRepository{db: db}
}

func (r *pieceRepository) Create(ctx context.Context, piece *model.Piece) error {
	return GetDB(ctx, r.db).Create(piece).Error
}

func (r *pieceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Piece, error) {
	var piece model.Piece
	if err := GetDB(ctx, r.db).First(&piece, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return nil, err
	}
	return &piece, nil
}

func (r *pieceRepository) Update(ctx context.Context, piece *model.Piece) error {
	return GetDB(ctx, r.db).Save(piece).Error
}

func (r *pieceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Piece{}, "id = ? AND tenant_id = ?", id, tenantID).Error
}

func (r *pieceRepository) List(ctx context.Context, tenantID uuid.UUID, status string, page, limit int) ([]model.Piece, int64, error) {
	var pieces []model.Piece
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Piece{}).Where("tenant_id = ?", tenantID)
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
		Find(&pieces).Error; err != nil {
		return nil, 0, err
	}

	return pieces, total, nil
}

func (r *pieceRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Piece{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (r *pieceRepository) BulkUpdateStatus(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, status string) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Piece{}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// CogsByPieceIDs returns recorded cost of goods per piece id. Pieces
// without a cogs value are absent from the map.
func (r *pieceRepository) CogsByPieceIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]int64{}, nil
	}

	type row struct {
		ID        uuid.UUID
		CogsCents int64
	}
	var rows []row
	err := GetDB(ctx, r.db).Model(&model.Piece{}).
		Select("id, cogs_cents").
		Where("tenant_id = ? AND id IN ? AND cogs_cents IS NOT NULL", tenantID, ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	cogs := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		cogs[r.ID] = r.CogsCents
	}
	return cogs, nil
}
