package analytics

import (
	"time"

	"github.com/google/uuid"
)

type TrendRequest struct {
	Months int `form:"months" validate:"omitempty,min=1,max=24"`
}

type LeaderboardRequest struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

type CollectionTotals struct {
	Count          int64   `json:"count"`
	VerifiedCount  int64   `json:"verified_count"`
	PendingCount   int64   `json:"pending_count"`
	VerifiedWeight float64 `json:"verified_weight"`
	CashPaid       float64 `json:"cash_paid"`
	TokensIssued   float64 `json:"tokens_issued"`
}

type MonthComparison struct {
	CurrentMonthWeight  float64 `json:"current_month_weight"`
	PreviousMonthWeight float64 `json:"previous_month_weight"`
	PercentageChange    float64 `json:"percentage_change"`
}

type HubTotals struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	Full            int     `json:"full"`
	MeanUtilisation float64 `json:"mean_utilisation"`
}

type DonationTotals struct {
	CompletedAmount float64 `json:"completed_amount"`
	CompletedCount  int64   `json:"completed_count"`
}

type Impact struct {
	PlasticDivertedKg float64 `json:"plastic_diverted_kg"`
	CO2SavedKg        float64 `json:"co2_saved_kg"`
}

type DashboardResponse struct {
	Collections  CollectionTotals   `json:"collections"`
	WeightByType map[string]float64 `json:"weight_by_plastic_type"`
	Monthly      MonthComparison    `json:"monthly"`
	UsersByRole  map[string]int64   `json:"users_by_role"`
	TotalUsers   int64              `json:"total_users"`
	Hubs         HubTotals          `json:"hubs"`
	Donations    DonationTotals     `json:"donations"`
	Impact       Impact             `json:"environmental_impact"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

type TrendPoint struct {
	Month          string  `json:"month"`
	Count          int64   `json:"count"`
	VerifiedWeight float64 `json:"verified_weight"`
	CashPaid       float64 `json:"cash_paid"`
}

type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	CollectorID    uuid.UUID `json:"collector_id"`
	Name           string    `json:"name"`
	Region         *string   `json:"region"`
	Collections    int64     `json:"collections"`
	VerifiedWeight float64   `json:"verified_weight"`
	CashEarned     float64   `json:"cash_earned"`
}

type HubPerformance struct {
	HubID           uuid.UUID `json:"hub_id"`
	Name            string    `json:"name"`
	Region          string    `json:"region"`
	Status          string    `json:"status"`
	Collections     int64     `json:"collections"`
	VerifiedWeight  float64   `json:"verified_weight"`
	Capacity        float64   `json:"capacity"`
	CurrentCapacity float64   `json:"current_capacity"`
	Utilisation     float64   `json:"utilisation"`
}
