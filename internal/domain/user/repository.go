package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateStatus(ctx context.Context, userID uuid.UUID, status Status) error
	List(ctx context.Context, filter *Filter) ([]*User, int64, error)
	DebitTokens(ctx context.Context, userID uuid.UUID, tokens float64) error
	CountByRole(ctx context.Context) ([]RoleCount, error)
}
