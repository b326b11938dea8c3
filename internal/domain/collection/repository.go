package collection

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for collection repository operations
type Repository interface {
	Create(ctx context.Context, c *Collection) error
	GetByID(ctx context.Context, id uuid.UUID) (*Collection, error)
	List(ctx context.Context, filter *Filter) ([]*Collection, int64, error)
	// Verify marks a pending collection verified, credits the collector and
	// adds the weight to the hub, all in one transaction.
	Verify(ctx context.Context, id, verifierID uuid.UUID) (*VerificationResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetStatistics(ctx context.Context, hubID *uuid.UUID) (*Statistics, error)
	Facts(ctx context.Context, since *time.Time) ([]Fact, error)
}
