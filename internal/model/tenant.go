package model

import (
	"time"

	"github.com/google/uuid"
)

// Plan enum constants
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Tenant represents one seller/store account. Every domain row is scoped
// by tenant id.
type Tenant struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug          string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Plan          string    `gorm:"type:varchar(20);not null;default:'free'" json:"plan"` // free, pro
	Currency      string    `gorm:"type:varchar(10);not null;default:'AUD'" json:"currency"`
	GSTRegistered bool      `gorm:"default:false" json:"gst_registered"`
	GSTRate       int64     `gorm:"type:int;not null;default:10" json:"gst_rate"` // percent
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
