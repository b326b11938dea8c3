package models

import (
	"time"

	"github.com/google/uuid"
)

type DonationModel struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DonorID                 uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount                  float64    `gorm:"type:decimal(12,2);not null"`
	Currency                string     `gorm:"type:varchar(3);not null;default:'GHS'"`
	Type                    string     `gorm:"type:varchar(20);not null;default:'one-time'"`
	Note                    *string    `gorm:"type:text"`
	Anonymous               bool       `gorm:"not null;default:false"`
	PaymentMethod           string     `gorm:"type:varchar(30);not null"`
	PaymentProvider         string     `gorm:"type:varchar(30);not null"`
	PaymentReference        string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	PaymentAuthorizationURL *string    `gorm:"type:text"`
	PaymentChannel          *string    `gorm:"type:varchar(30)"`
	PaidAt                  *time.Time `gorm:"index"`
	Status                  string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt               time.Time  `gorm:"not null;index"`
	UpdatedAt               time.Time  `gorm:"not null"`
}

func (DonationModel) TableName() string {
	return "donations"
}
