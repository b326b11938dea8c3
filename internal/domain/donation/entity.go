package donation

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Type string

const (
	TypeOneTime   Type = "one-time"
	TypeMonthly   Type = "monthly"
	TypeQuarterly Type = "quarterly"
	TypeAnnual    Type = "annual"
)

// Payment describes how a donation was (or will be) paid
type Payment struct {
	Method           string
	Provider         string
	Reference        string
	AuthorizationURL *string
	Channel          *string
	PaidAt           *time.Time
}

type Donation struct {
	ID        uuid.UUID
	DonorID   uuid.UUID
	Amount    float64
	Currency  string
	Type      Type
	Note      *string
	Anonymous bool
	Payment   Payment
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Donation) IsCompleted() bool {
	return d.Status == StatusCompleted
}

type Filter struct {
	DonorID  *uuid.UUID
	Status   *Status
	Type     *Type
	Page     int
	PageSize int
}

type Stats struct {
	TotalAmount    float64
	CompletedCount int64
	PendingCount   int64
	AverageAmount  float64
	ByType         map[string]float64
}
