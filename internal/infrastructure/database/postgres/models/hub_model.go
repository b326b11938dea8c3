package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HubModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name            string         `gorm:"type:varchar(255);not null"`
	Region          string         `gorm:"type:varchar(100);not null;index"`
	Location        string         `gorm:"type:varchar(255);not null"`
	Latitude        *float64       `gorm:"type:decimal(9,6)"`
	Longitude       *float64       `gorm:"type:decimal(9,6)"`
	Capacity        float64        `gorm:"type:decimal(12,2);not null"`
	CurrentCapacity float64        `gorm:"type:decimal(12,2);not null;default:0"`
	Status          string         `gorm:"type:varchar(20);not null;default:'active';index"`
	ManagerID       *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt       time.Time      `gorm:"not null"`
	UpdatedAt       time.Time      `gorm:"not null"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (HubModel) TableName() string {
	return "hubs"
}
