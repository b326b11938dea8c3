package volunteer

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

const MaxHoursPerEntry = 24

type Volunteer struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Skills       []string
	Availability string
	Region       string
	Motivation   *string
	Status       Status
	HoursLogged  float64
	ReviewedBy   *uuid.UUID
	ReviewedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v *Volunteer) IsApproved() bool {
	return v.Status == StatusApproved
}

type Filter struct {
	Status   *Status
	Region   string
	Page     int
	PageSize int
}
