package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus constants
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// PaymentStatus constants
const (
	PaymentStatusUnpaid   = "UNPAID"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"
)

// Order represents a customer purchase from a tenant's storefront
type Order struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"tenant_id"`
	OrderNo       string      `gorm:"type:varchar(100);not null;index:idx_orders_tenant_no,unique" json:"order_no"`
	Status        string      `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	PaymentStatus string      `gorm:"type:varchar(20);not null;default:'UNPAID';index" json:"payment_status"`
	TotalCents    int64       `gorm:"type:bigint;not null;default:0" json:"total_cents"`
	Currency      string      `gorm:"type:varchar(10);not null;default:'AUD'" json:"currency"`
	CustomerID    *uuid.UUID  `gorm:"type:uuid;index" json:"customer_id"`
	Customer      *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Note          string      `gorm:"type:text" json:"note"`
	PaidAt        *time.Time  `gorm:"index" json:"paid_at"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem represents a line item within an Order. PriceCents is the
// unit price captured at purchase time.
type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	PieceID    uuid.UUID `gorm:"type:uuid;not null;index" json:"piece_id"`
	Piece      Piece     `gorm:"foreignKey:PieceID" json:"-"`
	Quantity   int       `gorm:"type:int;not null" json:"quantity"`
	PriceCents int64     `gorm:"type:bigint;not null" json:"price_cents"`
}
