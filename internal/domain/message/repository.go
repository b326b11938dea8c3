package message

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*Message, error)
	List(ctx context.Context, filter *Filter) ([]*Message, int64, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	// DeleteFor sets the soft-delete flag on the side userID belongs to.
	DeleteFor(ctx context.Context, id, userID uuid.UUID) error
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
}
