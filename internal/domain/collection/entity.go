package collection

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
)

type PlasticType string

const (
	PlasticPET   PlasticType = "PET"
	PlasticHDPE  PlasticType = "HDPE"
	PlasticLDPE  PlasticType = "LDPE"
	PlasticPP    PlasticType = "PP"
	PlasticPS    PlasticType = "PS"
	PlasticOther PlasticType = "OTHER"
)

// Collection is a weighed batch of plastic handed in at a hub
type Collection struct {
	ID          uuid.UUID
	CollectorID uuid.UUID
	HubID       uuid.UUID
	Weight      float64
	PlasticType PlasticType
	CashAmount  float64
	TokenAmount float64
	Status      Status
	Notes       *string
	VerifiedBy  *uuid.UUID
	VerifiedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Collection) IsVerified() bool {
	return c.Status == StatusVerified
}

// Filter represents filtering options for listing collections
type Filter struct {
	CollectorID *uuid.UUID
	HubID       *uuid.UUID
	Status      *Status
	PlasticType *PlasticType
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
	SortOrder   string
}

// Fact is the slim projection analytics aggregates over.
type Fact struct {
	CollectorID uuid.UUID
	HubID       uuid.UUID
	Weight      float64
	PlasticType string
	CashAmount  float64
	TokenAmount float64
	Status      string
	CreatedAt   time.Time
	VerifiedAt  *time.Time
}

// Statistics summarises collections by status and plastic type
type Statistics struct {
	TotalCount     int64
	PendingCount   int64
	VerifiedCount  int64
	TotalWeight    float64
	VerifiedWeight float64
	PendingWeight  float64
	ByPlasticType  map[string]TypeBreakdown
}

type TypeBreakdown struct {
	Count  int64
	Weight float64
}

// VerificationResult reports what a verification changed besides the collection.
type VerificationResult struct {
	Collection  *Collection
	HubFull     bool
	HubCapacity float64
	HubCurrent  float64
}
