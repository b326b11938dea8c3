package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CollectionCreated  = "collection.created"
	CollectionVerified = "collection.verified"
	DonationCreated    = "donation.created"
	DonationCompleted  = "donation.completed"
	DonationFailed     = "donation.failed"
	PaymentCreated     = "payment.created"
	PaymentCompleted   = "payment.completed"
	PaymentFailed      = "payment.failed"
	MessageReceived    = "message.received"
	VolunteerReviewed  = "volunteer.reviewed"
	HubUpdated         = "hub.updated"
	HubEmptied         = "hub.emptied"
	HubCapacityWarning = "hub.capacity_warning"
	HubCapacityFull    = "hub.capacity_full"
)

// Event is a domain notification. Events with a UserID are private to that
// user; the rest are operational and go to staff.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	UserID     *uuid.UUID  `json:"user_id,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func New(eventType string, userID *uuid.UUID, data interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// Category is the part of the type before the dot, e.g. "hub".
func (e Event) Category() string {
	category, _, _ := strings.Cut(e.Type, ".")
	return category
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, event Event) error

func (f PublisherFunc) Publish(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
