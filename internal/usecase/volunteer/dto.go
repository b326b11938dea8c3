package volunteer

import (
	"time"

	domainVolunteer "sankofa/internal/domain/volunteer"

	"github.com/google/uuid"
)

type ApplyRequest struct {
	Skills       []string `json:"skills" validate:"required,min=1,max=20,dive,required,max=100"`
	Availability string   `json:"availability" validate:"required,oneof=weekdays weekends evenings full-time flexible"`
	Region       string   `json:"region" validate:"required,max=100"`
	Motivation   *string  `json:"motivation" validate:"omitempty,max=2000"`
}

type ReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type LogHoursRequest struct {
	Hours float64 `json:"hours" validate:"required,gt=0,lte=24"`
}

type ListVolunteersRequest struct {
	Status   string `form:"status" validate:"omitempty,oneof=pending approved rejected"`
	Region   string `form:"region"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type VolunteerResponse struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Skills       []string   `json:"skills"`
	Availability string     `json:"availability"`
	Region       string     `json:"region"`
	Motivation   *string    `json:"motivation"`
	Status       string     `json:"status"`
	HoursLogged  float64    `json:"hours_logged"`
	ReviewedBy   *uuid.UUID `json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func ToVolunteerResponse(v *domainVolunteer.Volunteer) *VolunteerResponse {
	if v == nil {
		return nil
	}
	return &VolunteerResponse{
		ID:           v.ID,
		UserID:       v.UserID,
		Skills:       v.Skills,
		Availability: v.Availability,
		Region:       v.Region,
		Motivation:   v.Motivation,
		Status:       string(v.Status),
		HoursLogged:  v.HoursLogged,
		ReviewedBy:   v.ReviewedBy,
		ReviewedAt:   v.ReviewedAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func ToVolunteerResponses(volunteers []*domainVolunteer.Volunteer) []*VolunteerResponse {
	out := make([]*VolunteerResponse, len(volunteers))
	for i, v := range volunteers {
		out[i] = ToVolunteerResponse(v)
	}
	return out
}

func (r *ListVolunteersRequest) ToFilter() *domainVolunteer.Filter {
	filter := &domainVolunteer.Filter{
		Region:   r.Region,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	if r.Status != "" {
		status := domainVolunteer.Status(r.Status)
		filter.Status = &status
	}
	return filter
}
