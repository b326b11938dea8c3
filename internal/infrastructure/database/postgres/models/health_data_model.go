package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthDataModel struct {
	ID                   uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Location             string                 `gorm:"type:varchar(255);not null;index"`
	Region               string                 `gorm:"type:varchar(100);not null;index"`
	RiskLevel            string                 `gorm:"type:varchar(20);not null;index"`
	DiseaseCases         map[string]int         `gorm:"type:text;serializer:json"`
	EnvironmentalFactors map[string]interface{} `gorm:"type:text;serializer:json"`
	ReportedBy           uuid.UUID              `gorm:"type:uuid;not null"`
	RecordedAt           time.Time              `gorm:"not null;index"`
	CreatedAt            time.Time              `gorm:"not null"`
	UpdatedAt            time.Time              `gorm:"not null"`
	DeletedAt            gorm.DeletedAt         `gorm:"index"`
}

func (HealthDataModel) TableName() string {
	return "health_data"
}
