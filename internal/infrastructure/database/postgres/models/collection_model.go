package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollectionModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CollectorID uuid.UUID      `gorm:"type:uuid;not null;index"`
	HubID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Weight      float64        `gorm:"type:decimal(12,2);not null"`
	PlasticType string         `gorm:"type:varchar(10);not null;index"`
	CashAmount  float64        `gorm:"type:decimal(12,2);not null;default:0"`
	TokenAmount float64        `gorm:"type:decimal(12,2);not null;default:0"`
	Status      string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes       *string        `gorm:"type:text"`
	VerifiedBy  *uuid.UUID     `gorm:"type:uuid"`
	VerifiedAt  *time.Time     `gorm:"index"`
	CreatedAt   time.Time      `gorm:"not null;index"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Collector *UserModel `gorm:"foreignKey:CollectorID"`
	Hub       *HubModel  `gorm:"foreignKey:HubID"`
}

func (CollectionModel) TableName() string {
	return "collections"
}
