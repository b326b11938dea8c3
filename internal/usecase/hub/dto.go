package hub

import (
	"time"

	domainHub "sankofa/internal/domain/hub"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
)

type CreateHubRequest struct {
	Name      string     `json:"name" validate:"required,min=2,max=255"`
	Region    string     `json:"region" validate:"required,max=100"`
	Location  string     `json:"location" validate:"required,max=255"`
	Latitude  *float64   `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64   `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Capacity  float64    `json:"capacity" validate:"required,gt=0"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

type UpdateHubRequest struct {
	Name      *string    `json:"name" validate:"omitempty,min=2,max=255"`
	Region    *string    `json:"region" validate:"omitempty,max=100"`
	Location  *string    `json:"location" validate:"omitempty,max=255"`
	Latitude  *float64   `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64   `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Capacity  *float64   `json:"capacity" validate:"omitempty,gt=0"`
	Status    *string    `json:"status" validate:"omitempty,oneof=active full maintenance inactive"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

type ListHubsRequest struct {
	Region   string `form:"region"`
	Status   string `form:"status" validate:"omitempty,oneof=active full maintenance inactive"`
	Search   string `form:"search" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type HubResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Region          string     `json:"region"`
	Location        string     `json:"location"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	Capacity        float64    `json:"capacity"`
	CurrentCapacity float64    `json:"current_capacity"`
	Utilisation     float64    `json:"utilisation"`
	Status          string     `json:"status"`
	ManagerID       *uuid.UUID `json:"manager_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type StatsResponse struct {
	HubID           uuid.UUID `json:"hub_id"`
	CollectionCount int64     `json:"collection_count"`
	PendingCount    int64     `json:"pending_count"`
	VerifiedWeight  float64   `json:"verified_weight"`
	Capacity        float64   `json:"capacity"`
	CurrentCapacity float64   `json:"current_capacity"`
	Utilisation     float64   `json:"utilisation"`
}

func ToHubResponse(h *domainHub.Hub) *HubResponse {
	if h == nil {
		return nil
	}
	return &HubResponse{
		ID:              h.ID,
		Name:            h.Name,
		Region:          h.Region,
		Location:        h.Location,
		Latitude:        h.Latitude,
		Longitude:       h.Longitude,
		Capacity:        h.Capacity,
		CurrentCapacity: h.CurrentCapacity,
		Utilisation:     utils.Round2(h.Utilisation()),
		Status:          string(h.Status),
		ManagerID:       h.ManagerID,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

func ToHubResponses(hubs []*domainHub.Hub) []*HubResponse {
	out := make([]*HubResponse, len(hubs))
	for i, h := range hubs {
		out[i] = ToHubResponse(h)
	}
	return out
}

func (r *ListHubsRequest) ToFilter() *domainHub.Filter {
	filter := &domainHub.Filter{
		Region:   r.Region,
		Search:   r.Search,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	if r.Status != "" {
		status := domainHub.Status(r.Status)
		filter.Status = &status
	}
	return filter
}
