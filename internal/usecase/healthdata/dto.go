package healthdata

import (
	"time"

	domainHealth "sankofa/internal/domain/healthdata"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
)

type CreateRecordRequest struct {
	Location             string                 `json:"location" validate:"required,max=255"`
	Region               string                 `json:"region" validate:"required,max=100"`
	RiskLevel            string                 `json:"risk_level" validate:"required,risk_level"`
	DiseaseCases         map[string]int         `json:"disease_cases"`
	EnvironmentalFactors map[string]interface{} `json:"environmental_factors"`
	RecordedAt           *time.Time             `json:"recorded_at"`
}

type UpdateRecordRequest struct {
	Location             *string                `json:"location" validate:"omitempty,max=255"`
	Region               *string                `json:"region" validate:"omitempty,max=100"`
	RiskLevel            *string                `json:"risk_level" validate:"omitempty,risk_level"`
	DiseaseCases         map[string]int         `json:"disease_cases"`
	EnvironmentalFactors map[string]interface{} `json:"environmental_factors"`
	RecordedAt           *time.Time             `json:"recorded_at"`
}

type ListRecordsRequest struct {
	Location  string `form:"location"`
	Region    string `form:"region"`
	RiskLevel string `form:"risk_level" validate:"omitempty,risk_level"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type RecordResponse struct {
	ID                   uuid.UUID              `json:"id"`
	Location             string                 `json:"location"`
	Region               string                 `json:"region"`
	RiskLevel            string                 `json:"risk_level"`
	DiseaseCases         map[string]int         `json:"disease_cases"`
	TotalCases           int                    `json:"total_cases"`
	EnvironmentalFactors map[string]interface{} `json:"environmental_factors"`
	ReportedBy           uuid.UUID              `json:"reported_by"`
	RecordedAt           time.Time              `json:"recorded_at"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

type SummaryResponse struct {
	RecordCount       int64            `json:"record_count"`
	TotalCases        int              `json:"total_cases"`
	CasesByDisease    map[string]int   `json:"cases_by_disease"`
	CountByRiskLevel  map[string]int64 `json:"count_by_risk_level"`
	HighRiskLocations []string         `json:"high_risk_locations"`
}

func ToRecordResponse(r *domainHealth.Record) *RecordResponse {
	if r == nil {
		return nil
	}
	return &RecordResponse{
		ID:                   r.ID,
		Location:             r.Location,
		Region:               r.Region,
		RiskLevel:            string(r.RiskLevel),
		DiseaseCases:         r.DiseaseCases,
		TotalCases:           r.TotalCases(),
		EnvironmentalFactors: r.EnvironmentalFactors,
		ReportedBy:           r.ReportedBy,
		RecordedAt:           r.RecordedAt,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func ToRecordResponses(records []*domainHealth.Record) []*RecordResponse {
	out := make([]*RecordResponse, len(records))
	for i, r := range records {
		out[i] = ToRecordResponse(r)
	}
	return out
}

func (r *ListRecordsRequest) ToFilter() (*domainHealth.Filter, error) {
	filter := &domainHealth.Filter{
		Location: r.Location,
		Region:   r.Region,
		Page:     r.Page,
		PageSize: r.PageSize,
	}

	var err error
	if filter.From, err = utils.ParseOptionalTime(r.From); err != nil {
		return nil, appErrors.NewAppError("INVALID_DATE", "invalid from date", err)
	}
	if filter.To, err = utils.ParseOptionalTime(r.To); err != nil {
		return nil, appErrors.NewAppError("INVALID_DATE", "invalid to date", err)
	}
	if r.RiskLevel != "" {
		level := domainHealth.RiskLevel(r.RiskLevel)
		filter.RiskLevel = &level
	}
	return filter, nil
}
