package message

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users. Each side deletes independently.
type Message struct {
	ID                 uuid.UUID
	SenderID           uuid.UUID
	RecipientID        uuid.UUID
	Subject            string
	Content            string
	Read               bool
	ReadAt             *time.Time
	DeletedBySender    bool
	DeletedByRecipient bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// VisibleTo reports whether userID is a party that has not deleted the message.
func (m *Message) VisibleTo(userID uuid.UUID) bool {
	switch userID {
	case m.SenderID:
		return !m.DeletedBySender
	case m.RecipientID:
		return !m.DeletedByRecipient
	default:
		return false
	}
}

type Box string

const (
	BoxInbox Box = "inbox"
	BoxSent  Box = "sent"
)

type Filter struct {
	UserID     uuid.UUID
	Box        Box
	UnreadOnly bool
	Page       int
	PageSize   int
}
