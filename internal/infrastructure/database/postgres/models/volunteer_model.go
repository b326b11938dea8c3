package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VolunteerModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Skills       []string       `gorm:"type:text;serializer:json"`
	Availability string         `gorm:"type:varchar(100);not null"`
	Region       string         `gorm:"type:varchar(100);not null;index"`
	Motivation   *string        `gorm:"type:text"`
	Status       string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	HoursLogged  float64        `gorm:"type:decimal(8,2);not null;default:0"`
	ReviewedBy   *uuid.UUID     `gorm:"type:uuid"`
	ReviewedAt   *time.Time     `gorm:"index"`
	CreatedAt    time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (VolunteerModel) TableName() string {
	return "volunteers"
}
