package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SenderID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	RecipientID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Subject            string     `gorm:"type:varchar(255);not null"`
	Content            string     `gorm:"type:text;not null"`
	Read               bool       `gorm:"not null;default:false"`
	ReadAt             *time.Time `gorm:"index"`
	DeletedBySender    bool       `gorm:"not null;default:false"`
	DeletedByRecipient bool       `gorm:"not null;default:false"`
	CreatedAt          time.Time  `gorm:"not null;index"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

func (MessageModel) TableName() string {
	return "messages"
}
