package healthdata

import (
	"time"

	"github.com/google/uuid"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Record is one community health observation
type Record struct {
	ID                   uuid.UUID
	Location             string
	Region               string
	RiskLevel            RiskLevel
	DiseaseCases         map[string]int
	EnvironmentalFactors map[string]interface{}
	ReportedBy           uuid.UUID
	RecordedAt           time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (r *Record) IsHighRisk() bool {
	return r.RiskLevel == RiskHigh || r.RiskLevel == RiskCritical
}

func (r *Record) TotalCases() int {
	total := 0
	for _, n := range r.DiseaseCases {
		total += n
	}
	return total
}

type Filter struct {
	Location  string
	Region    string
	RiskLevel *RiskLevel
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

type Summary struct {
	RecordCount       int64
	CasesByDisease    map[string]int
	CountByRiskLevel  map[string]int64
	HighRiskLocations []string
}
