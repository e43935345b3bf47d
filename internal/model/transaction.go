package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType constants
const (
	TxTypeSale         = "SALE"
	TxTypeRefund       = "REFUND"
	TxTypePayout       = "PAYOUT"
	TxTypeFee          = "FEE"
	TxTypeSubscription = "SUBSCRIPTION"
)

// TransactionStatus constants
const (
	TxStatusPending   = "PENDING"
	TxStatusCompleted = "COMPLETED"
	TxStatusFailed    = "FAILED"
	TxStatusReversed  = "REVERSED"
)

// Transaction is one ledger entry produced by the payment workflows.
// Completed rows are immutable; reporting reads them, never writes.
// Amounts are integer minor units (cents).
type Transaction struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Type             string     `gorm:"type:varchar(20);not null;index" json:"type"`
	Status           string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	GrossCents       int64      `gorm:"type:bigint;not null" json:"gross_cents"`
	NetCents         int64      `gorm:"type:bigint;not null" json:"net_cents"`
	StripeFeeCents   int64      `gorm:"type:bigint;not null;default:0" json:"stripe_fee_cents"`
	PlatformFeeCents int64      `gorm:"type:bigint;not null;default:0" json:"platform_fee_cents"`
	Currency         string     `gorm:"type:varchar(10);not null;default:'AUD'" json:"currency"`
	OrderID          *uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
}

// BalanceSnapshot records the payment provider's balance for a tenant at
// a point in time. The dashboard shows the latest snapshot only.
type BalanceSnapshot struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	PendingCents   int64     `gorm:"type:bigint;not null;default:0" json:"pending_cents"`
	AvailableCents int64     `gorm:"type:bigint;not null;default:0" json:"available_cents"`
	CapturedAt     time.Time `gorm:"index" json:"captured_at"`
}
