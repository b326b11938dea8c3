package hub

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusFull        Status = "full"
	StatusMaintenance Status = "maintenance"
	StatusInactive    Status = "inactive"
)

// Hub is a drop-off point where collections are weighed
type Hub struct {
	ID              uuid.UUID
	Name            string
	Region          string
	Location        string
	Latitude        *float64
	Longitude       *float64
	Capacity        float64
	CurrentCapacity float64
	Status          Status
	ManagerID       *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (h *Hub) IsAccepting() bool {
	return h.Status == StatusActive
}

// Utilisation returns the fill level in percent.
func (h *Hub) Utilisation() float64 {
	if h.Capacity <= 0 {
		return 0
	}
	return h.CurrentCapacity / h.Capacity * 100
}

type Filter struct {
	Region    string
	Status    *Status
	ManagerID *uuid.UUID
	Search    string
	Page      int
	PageSize  int
}

type Stats struct {
	HubID           uuid.UUID
	CollectionCount int64
	PendingCount    int64
	VerifiedWeight  float64
	Capacity        float64
	CurrentCapacity float64
	Utilisation     float64
}
