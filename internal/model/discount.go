package model

import (
	"time"

	"github.com/google/uuid"
)

// DiscountKind constants
const (
	DiscountKindPercent = "PERCENT"
	DiscountKindFixed   = "FIXED"
)

// Discount is a storefront promo code. Value is whole percent for
// PERCENT kind and cents for FIXED kind.
type Discount struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Code      string     `gorm:"type:varchar(50);not null;index:idx_discounts_tenant_code,unique" json:"code"`
	Kind      string     `gorm:"type:varchar(20);not null" json:"kind"`
	Value     int64      `gorm:"type:bigint;not null" json:"value"`
	Active    bool       `gorm:"default:true;index" json:"active"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
