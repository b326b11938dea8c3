package payment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	List(ctx context.Context, filter *Filter) ([]*Payment, int64, error)
	// Complete marks a pending payment completed and debits the user's cash
	// balance in one transaction.
	Complete(ctx context.Context, id, processedBy uuid.UUID) (*Payment, error)
	Fail(ctx context.Context, id, processedBy uuid.UUID) (*Payment, error)
}
