package hub

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, hub *Hub) error
	GetByID(ctx context.Context, id uuid.UUID) (*Hub, error)
	Update(ctx context.Context, hub *Hub) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *Filter) ([]*Hub, int64, error)
	ListAll(ctx context.Context) ([]*Hub, error)
	// SetFillLevel records a scale reading and returns the updated hub.
	SetFillLevel(ctx context.Context, id uuid.UUID, fillKg float64, status Status) (*Hub, error)
	GetStats(ctx context.Context, id uuid.UUID) (*Stats, error)
}
