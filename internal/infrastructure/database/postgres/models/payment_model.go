package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount        float64    `gorm:"type:decimal(12,2);not null"`
	Currency      string     `gorm:"type:varchar(3);not null;default:'GHS'"`
	Method        string     `gorm:"type:varchar(20);not null"`
	TransactionID string     `gorm:"type:varchar(40);not null;uniqueIndex"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Description   *string    `gorm:"type:text"`
	ProcessedBy   *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt   *time.Time `gorm:"index"`
	CreatedAt     time.Time  `gorm:"not null;index"`
	UpdatedAt     time.Time  `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
