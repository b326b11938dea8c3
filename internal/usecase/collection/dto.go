package collection

import (
	"time"

	domainCollection "sankofa/internal/domain/collection"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
)

type CreateCollectionRequest struct {
	HubID       uuid.UUID `json:"hub_id" validate:"required"`
	Weight      float64   `json:"weight" validate:"required,gt=0,lte=10000"`
	PlasticType string    `json:"plastic_type" validate:"required,plastic_type"`
	Notes       *string   `json:"notes" validate:"omitempty,max=500"`
}

type ListCollectionsRequest struct {
	CollectorID string `form:"collector_id"`
	HubID       string `form:"hub_id"`
	Status      string `form:"status" validate:"omitempty,oneof=pending verified"`
	PlasticType string `form:"plastic_type" validate:"omitempty,plastic_type"`
	From        string `form:"from"`
	To          string `form:"to"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortOrder   string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type CollectionResponse struct {
	ID          uuid.UUID  `json:"id"`
	CollectorID uuid.UUID  `json:"collector_id"`
	HubID       uuid.UUID  `json:"hub_id"`
	Weight      float64    `json:"weight"`
	PlasticType string     `json:"plastic_type"`
	CashAmount  float64    `json:"cash_amount"`
	TokenAmount float64    `json:"token_amount"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes"`
	VerifiedBy  *uuid.UUID `json:"verified_by"`
	VerifiedAt  *time.Time `json:"verified_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type VerificationResponse struct {
	Collection  *CollectionResponse `json:"collection"`
	HubFull     bool                `json:"hub_full"`
	HubCapacity float64             `json:"hub_capacity"`
	HubCurrent  float64             `json:"hub_current_capacity"`
}

type TypeBreakdown struct {
	Count  int64   `json:"count"`
	Weight float64 `json:"weight"`
}

type StatisticsResponse struct {
	TotalCount     int64                    `json:"total_count"`
	PendingCount   int64                    `json:"pending_count"`
	VerifiedCount  int64                    `json:"verified_count"`
	TotalWeight    float64                  `json:"total_weight"`
	VerifiedWeight float64                  `json:"verified_weight"`
	PendingWeight  float64                  `json:"pending_weight"`
	ByPlasticType  map[string]TypeBreakdown `json:"by_plastic_type"`
}

func ToCollectionResponse(c *domainCollection.Collection) *CollectionResponse {
	if c == nil {
		return nil
	}
	return &CollectionResponse{
		ID:          c.ID,
		CollectorID: c.CollectorID,
		HubID:       c.HubID,
		Weight:      c.Weight,
		PlasticType: string(c.PlasticType),
		CashAmount:  c.CashAmount,
		TokenAmount: c.TokenAmount,
		Status:      string(c.Status),
		Notes:       c.Notes,
		VerifiedBy:  c.VerifiedBy,
		VerifiedAt:  c.VerifiedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToCollectionResponses(items []*domainCollection.Collection) []*CollectionResponse {
	out := make([]*CollectionResponse, len(items))
	for i, c := range items {
		out[i] = ToCollectionResponse(c)
	}
	return out
}

func ToStatisticsResponse(s *domainCollection.Statistics) *StatisticsResponse {
	byType := make(map[string]TypeBreakdown, len(s.ByPlasticType))
	for k, v := range s.ByPlasticType {
		byType[k] = TypeBreakdown{Count: v.Count, Weight: utils.Round2(v.Weight)}
	}
	return &StatisticsResponse{
		TotalCount:     s.TotalCount,
		PendingCount:   s.PendingCount,
		VerifiedCount:  s.VerifiedCount,
		TotalWeight:    utils.Round2(s.TotalWeight),
		VerifiedWeight: utils.Round2(s.VerifiedWeight),
		PendingWeight:  utils.Round2(s.PendingWeight),
		ByPlasticType:  byType,
	}
}

// ToFilter converts query parameters into a repository filter.
func (r *ListCollectionsRequest) ToFilter() (*domainCollection.Filter, error) {
	filter := &domainCollection.Filter{
		Page:      r.Page,
		PageSize:  r.PageSize,
		SortOrder: r.SortOrder,
	}

	var err error
	if filter.CollectorID, err = utils.ParseOptionalUUID(r.CollectorID); err != nil {
		return nil, appErrors.NewAppError("INVALID_ID", "invalid collector_id", err)
	}
	if filter.HubID, err = utils.ParseOptionalUUID(r.HubID); err != nil {
		return nil, appErrors.NewAppError("INVALID_ID", "invalid hub_id", err)
	}
	if filter.From, err = utils.ParseOptionalTime(r.From); err != nil {
		return nil, appErrors.NewAppError("INVALID_DATE", "invalid from date", err)
	}
	if filter.To, err = utils.ParseOptionalTime(r.To); err != nil {
		return nil, appErrors.NewAppError("INVALID_DATE", "invalid to date", err)
	}
	if r.Status != "" {
		status := domainCollection.Status(r.Status)
		filter.Status = &status
	}
	if r.PlasticType != "" {
		plastic := domainCollection.PlasticType(r.PlasticType)
		filter.PlasticType = &plastic
	}

	return filter, nil
}
