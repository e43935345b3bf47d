package database

import (
	"backend/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.Tenant{},
		&model.User{},
		&model.RefreshToken{},
		&model.Piece{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.Enquiry{},
		&model.MediaAsset{},
		&model.Discount{},
		&model.Transaction{},
		&model.BalanceSnapshot{},
		&model.FunnelEvent{},
	)
	if err != nil {
		logrus.WithError(err).Warn("Failed to auto-migrate models")
	}

	return db, nil
}
