package donation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Donation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Donation, error)
	GetByReference(ctx context.Context, reference string) (*Donation, error)
	List(ctx context.Context, filter *Filter) ([]*Donation, int64, error)
	SetAuthorizationURL(ctx context.Context, id uuid.UUID, url string) error
	// Settle moves a pending donation to status, or a failed one to completed;
	// anything else returns ErrAlreadySettled.
	Settle(ctx context.Context, reference string, status Status, channel *string, paidAt *time.Time) (*Donation, error)
	// ExpirePending fails pending donations created before olderThan.
	ExpirePending(ctx context.Context, olderThan time.Time) (int64, error)
	GetStats(ctx context.Context) (*Stats, error)
}
