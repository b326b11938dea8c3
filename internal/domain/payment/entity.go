package payment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Method string

const (
	MethodMobileMoney  Method = "mobile_money"
	MethodBankTransfer Method = "bank_transfer"
	MethodCash         Method = "cash"
)

// Payment is a cash-out to a collector
type Payment struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Amount        float64
	Currency      string
	Method        Method
	TransactionID string
	Status        Status
	Description   *string
	ProcessedBy   *uuid.UUID
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanTransition reports whether status may move from the current one to next.
func (p *Payment) CanTransition(next Status) bool {
	return p.Status == StatusPending && (next == StatusCompleted || next == StatusFailed)
}

type Filter struct {
	UserID   *uuid.UUID
	Status   *Status
	Method   *Method
	Page     int
	PageSize int
}
