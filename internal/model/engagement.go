package model

import (
	"time"

	"github.com/google/uuid"
)

// MediaKind constants
const (
	MediaKindImage = "IMAGE"
	MediaKindVideo = "VIDEO"
)

// MediaAsset is an uploaded image/video attached to a tenant's storefront
type MediaAsset struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Kind      string    `gorm:"type:varchar(20);not null;default:'IMAGE'" json:"kind"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Bytes     int64     `gorm:"type:bigint;not null;default:0" json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FunnelStage constants, in visit order
const (
	FunnelStageView     = "VIEW"
	FunnelStageCart     = "CART"
	FunnelStageCheckout = "CHECKOUT"
	FunnelStagePurchase = "PURCHASE"
)

// FunnelEvent records one storefront visitor step for conversion reporting
type FunnelEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Stage     string    `gorm:"type:varchar(20);not null;index" json:"stage"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
