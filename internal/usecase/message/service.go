package message

import (
	"context"
	"fmt"
	"time"

	domainMessage "sankofa/internal/domain/message"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/notification"
	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements direct messaging between users
type Service struct {
	messageRepo domainMessage.Repository
	userRepo    domainUser.Repository
	publisher   events.Publisher
	notifier    notification.Notifier
}

func NewService(
	messageRepo domainMessage.Repository,
	userRepo domainUser.Repository,
	publisher events.Publisher,
	notifier notification.Notifier,
) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		notifier:    notifier,
	}
}

func (s *Service) Send(ctx context.Context, senderID uuid.UUID, req *SendMessageRequest) (*MessageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	if req.RecipientID == senderID {
		return nil, domainMessage.ErrCannotMessageSelf
	}

	recipient, err := s.userRepo.GetByID(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}

	m := &domainMessage.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Subject:     utils.SanitizeString(req.Subject),
		Content:     utils.SanitizeText(req.Content),
	}
	if m.Subject == "" || m.Content == "" {
		return nil, appErrors.NewAppError("EMPTY_MESSAGE", "subject and content are required", nil)
	}

	if err := s.messageRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	logger.Info("Message sent",
		zap.String("message_id", m.ID.String()),
		zap.String("sender_id", senderID.String()),
		zap.String("recipient_id", recipient.ID.String()),
		zap.String("event", "message_sent"),
	)

	resp := ToMessageResponse(m)
	s.publish(ctx, events.New(events.MessageReceived, &recipient.ID, resp))
	s.notifyRecipient(ctx, recipient, m)
	return resp, nil
}

func (s *Service) Inbox(ctx context.Context, userID uuid.UUID, req *ListMessagesRequest) (*utils.ListResponse, error) {
	return s.list(ctx, userID, domainMessage.BoxInbox, req)
}

// Sent lists outgoing messages. The unread flag is ignored for this box.
func (s *Service) Sent(ctx context.Context, userID uuid.UUID, req *ListMessagesRequest) (*utils.ListResponse, error) {
	return s.list(ctx, userID, domainMessage.BoxSent, req)
}

func (s *Service) list(ctx context.Context, userID uuid.UUID, box domainMessage.Box, req *ListMessagesRequest) (*utils.ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	req.Page, req.PageSize = utils.NormalizePage(req.Page, req.PageSize)

	items, total, err := s.messageRepo.List(ctx, &domainMessage.Filter{
		UserID:     userID,
		Box:        box,
		UnreadOnly: req.UnreadOnly,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	return utils.NewListResponse(ToMessageResponses(items), total, req.Page, req.PageSize), nil
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (*UnreadCountResponse, error) {
	n, err := s.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Unread: n}, nil
}

// Get returns a message to one of its parties. Opening it as the recipient
// marks it read.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*MessageResponse, error) {
	m, err := s.visible(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if m.RecipientID == userID && !m.Read {
		if err := s.messageRepo.MarkRead(ctx, id, userID); err != nil {
			return nil, err
		}
		now := time.Now().UTC()
		m.Read = true
		m.ReadAt = &now
	}
	return ToMessageResponse(m), nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	m, err := s.visible(ctx, id, userID)
	if err != nil {
		return err
	}
	if m.RecipientID != userID {
		return domainMessage.ErrNotParticipant
	}
	return s.messageRepo.MarkRead(ctx, id, userID)
}

// Delete hides the message from the caller's side only.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.visible(ctx, id, userID); err != nil {
		return err
	}
	if err := s.messageRepo.DeleteFor(ctx, id, userID); err != nil {
		return err
	}

	logger.Info("Message deleted",
		zap.String("message_id", id.String()),
		zap.String("user_id", userID.String()),
		zap.String("event", "message_deleted"),
	)
	return nil
}

func (s *Service) visible(ctx context.Context, id, userID uuid.UUID) (*domainMessage.Message, error) {
	m, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.SenderID != userID && m.RecipientID != userID {
		return nil, domainMessage.ErrNotParticipant
	}
	if !m.VisibleTo(userID) {
		return nil, domainMessage.ErrMessageNotFound
	}
	return m, nil
}

func (s *Service) notifyRecipient(ctx context.Context, recipient *domainUser.User, m *domainMessage.Message) {
	if s.notifier == nil {
		return
	}

	email := notification.Email{
		To:      recipient.Email,
		Subject: "New message: " + m.Subject,
		Body:    fmt.Sprintf("Hello %s,\n\nYou have a new message on Sankofa.\n\n%s\n\nSankofa", recipient.Name, m.Content),
	}
	if err := s.notifier.Send(ctx, email); err != nil {
		logger.Warn("Failed to send message notification", zap.String("message_id", m.ID.String()), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}
