package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PieceStatus constants
const (
	PieceStatusDraft    = "DRAFT"
	PieceStatusActive   = "ACTIVE"
	PieceStatusSold     = "SOLD"
	PieceStatusArchived = "ARCHIVED"
)

// Piece represents a sellable product in a tenant's storefront.
// All monetary fields are integer minor units (cents).
type Piece struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	SKU        string         `gorm:"type:varchar(100);not null;index:idx_pieces_tenant_sku,unique" json:"sku"`
	Title      string         `gorm:"type:varchar(255);not null" json:"title"`
	Status     string         `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	PriceCents int64          `gorm:"type:bigint;not null" json:"price_cents"`
	CogsCents  *int64         `gorm:"type:bigint" json:"cogs_cents"` // Cost of goods sold; nil when the maker hasn't recorded one
	Quantity   int            `gorm:"type:int;not null;default:1" json:"quantity"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
