package payment

import (
	"time"

	domainPayment "sankofa/internal/domain/payment"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	UserID      uuid.UUID `json:"user_id" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Method      string    `json:"method" validate:"required,payment_method"`
	Currency    string    `json:"currency" validate:"omitempty,len=3"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed failed"`
}

type ListPaymentsRequest struct {
	UserID   string `form:"user_id"`
	Status   string `form:"status" validate:"omitempty,oneof=pending completed failed"`
	Method   string `form:"method" validate:"omitempty,payment_method"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type PaymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Method        string     `json:"method"`
	TransactionID string     `json:"transaction_id"`
	Status        string     `json:"status"`
	Description   *string    `json:"description"`
	ProcessedBy   *uuid.UUID `json:"processed_by"`
	ProcessedAt   *time.Time `json:"processed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func ToPaymentResponse(p *domainPayment.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        string(p.Method),
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		Description:   p.Description,
		ProcessedBy:   p.ProcessedBy,
		ProcessedAt:   p.ProcessedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToPaymentResponses(payments []*domainPayment.Payment) []*PaymentResponse {
	out := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = ToPaymentResponse(p)
	}
	return out
}

func (r *ListPaymentsRequest) ToFilter() (*domainPayment.Filter, error) {
	userID, err := utils.ParseOptionalUUID(r.UserID)
	if err != nil {
		return nil, appErrors.NewAppError("INVALID_USER_ID", "invalid user id", err)
	}

	filter := &domainPayment.Filter{
		UserID:   userID,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	if r.Status != "" {
		status := domainPayment.Status(r.Status)
		filter.Status = &status
	}
	if r.Method != "" {
		method := domainPayment.Method(r.Method)
		filter.Method = &method
	}
	return filter, nil
}
