package volunteer

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, v *Volunteer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Volunteer, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Volunteer, error)
	List(ctx context.Context, filter *Filter) ([]*Volunteer, int64, error)
	// Review moves a pending application to approved or rejected.
	Review(ctx context.Context, id uuid.UUID, status Status, reviewerID uuid.UUID) (*Volunteer, error)
	AddHours(ctx context.Context, id uuid.UUID, hours float64) (*Volunteer, error)
}
