package donation

import (
	"time"

	domainDonation "sankofa/internal/domain/donation"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
)

type CreateDonationRequest struct {
	Amount    float64 `json:"amount" validate:"required,gt=0,lte=1000000"`
	Currency  string  `json:"currency" validate:"omitempty,len=3,alpha"`
	Type      string  `json:"type" validate:"required,donation_type"`
	Note      *string `json:"note" validate:"omitempty,max=500"`
	Anonymous bool    `json:"anonymous"`
	Email     string  `json:"email" validate:"omitempty,email"`
}

type ListDonationsRequest struct {
	DonorID  string `form:"donor_id"`
	Status   string `form:"status" validate:"omitempty,oneof=pending completed failed"`
	Type     string `form:"type" validate:"omitempty,donation_type"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type PaymentResponse struct {
	Method           string     `json:"method"`
	Provider         string     `json:"provider"`
	Reference        string     `json:"reference"`
	AuthorizationURL *string    `json:"authorization_url,omitempty"`
	Channel          *string    `json:"channel,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
}

type DonationResponse struct {
	ID        uuid.UUID       `json:"id"`
	DonorID   uuid.UUID       `json:"donor_id"`
	Amount    float64         `json:"amount"`
	Currency  string          `json:"currency"`
	Type      string          `json:"type"`
	Note      *string         `json:"note"`
	Anonymous bool            `json:"anonymous"`
	Payment   PaymentResponse `json:"payment"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type StatsResponse struct {
	TotalAmount    float64            `json:"total_amount"`
	CompletedCount int64              `json:"completed_count"`
	PendingCount   int64              `json:"pending_count"`
	AverageAmount  float64            `json:"average_amount"`
	ByType         map[string]float64 `json:"by_type"`
}

func ToDonationResponse(d *domainDonation.Donation) *DonationResponse {
	if d == nil {
		return nil
	}
	return &DonationResponse{
		ID:        d.ID,
		DonorID:   d.DonorID,
		Amount:    d.Amount,
		Currency:  d.Currency,
		Type:      string(d.Type),
		Note:      d.Note,
		Anonymous: d.Anonymous,
		Payment: PaymentResponse{
			Method:           d.Payment.Method,
			Provider:         d.Payment.Provider,
			Reference:        d.Payment.Reference,
			AuthorizationURL: d.Payment.AuthorizationURL,
			Channel:          d.Payment.Channel,
			PaidAt:           d.Payment.PaidAt,
		},
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func ToDonationResponses(items []*domainDonation.Donation) []*DonationResponse {
	out := make([]*DonationResponse, len(items))
	for i, d := range items {
		out[i] = ToDonationResponse(d)
	}
	return out
}

func (r *ListDonationsRequest) ToFilter() (*domainDonation.Filter, error) {
	filter := &domainDonation.Filter{Page: r.Page, PageSize: r.PageSize}

	donorID, err := utils.ParseOptionalUUID(r.DonorID)
	if err != nil {
		return nil, appErrors.NewAppError("INVALID_ID", "invalid donor_id", err)
	}
	filter.DonorID = donorID

	if r.Status != "" {
		status := domainDonation.Status(r.Status)
		filter.Status = &status
	}
	if r.Type != "" {
		t := domainDonation.Type(r.Type)
		filter.Type = &t
	}
	return filter, nil
}
