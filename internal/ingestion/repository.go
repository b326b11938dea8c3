package ingestion

import (
	"context"

	"sankofa/internal/domain/hub"

	"github.com/google/uuid"
)

// HubStore is the part of hub.Repository the pipeline writes through.
type HubStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*hub.Hub, error)
	SetFillLevel(ctx context.Context, id uuid.UUID, fillKg float64, status hub.Status) (*hub.Hub, error)
}
