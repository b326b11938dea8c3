package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone        *string   `gorm:"type:varchar(20)"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(30);not null;default:'collector';index"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active';index"`
	Region       *string   `gorm:"type:varchar(100);index"`
	CashBalance  float64   `gorm:"type:decimal(12,2);not null;default:0"`
	TokenBalance float64   `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
