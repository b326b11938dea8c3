package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sankofa/internal/domain/message"
	"sankofa/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *DB
}

func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	m.ID = uuid.New()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	m.Read = false

	if err := r.db.DB.WithContext(ctx).Create(toMessageModel(m)).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	var dbModel models.MessageModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, message.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return toMessageEntity(&dbModel), nil
}

func (r *MessageRepository) List(ctx context.Context, filter *message.Filter) ([]*message.Message, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.MessageModel{})

	switch filter.Box {
	case message.BoxSent:
		query = query.Where("sender_id = ? AND deleted_by_sender = ?", filter.UserID, false)
	default:
		query = query.Where("recipient_id = ? AND deleted_by_recipient = ?", filter.UserID, false)
		if filter.UnreadOnly {
			query = query.Where("read = ?", false)
		}
	}

	var dbModels []models.MessageModel
	total, err := paginate(query, filter.Page, filter.PageSize, "created_at DESC", &dbModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*message.Message, len(dbModels))
	for i := range dbModels {
		messages[i] = toMessageEntity(&dbModels[i])
	}

	return messages, total, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.DB.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("id = ? AND recipient_id = ? AND read = ?", id, recipientID, false).
		Updates(map[string]interface{}{
			"read":       true,
			"read_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark message read: %w", result.Error)
	}

	return nil
}

func (r *MessageRepository) DeleteFor(ctx context.Context, id, userID uuid.UUID) error {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	column := ""
	switch userID {
	case m.SenderID:
		column = "deleted_by_sender"
	case m.RecipientID:
		column = "deleted_by_recipient"
	default:
		return message.ErrNotParticipant
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       true,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}

	return nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("recipient_id = ? AND read = ? AND deleted_by_recipient = ?", recipientID, false, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}

func toMessageModel(m *message.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:                 m.ID,
		SenderID:           m.SenderID,
		RecipientID:        m.RecipientID,
		Subject:            m.Subject,
		Content:            m.Content,
		Read:               m.Read,
		ReadAt:             m.ReadAt,
		DeletedBySender:    m.DeletedBySender,
		DeletedByRecipient: m.DeletedByRecipient,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toMessageEntity(m *models.MessageModel) *message.Message {
	return &message.Message{
		ID:                 m.ID,
		SenderID:           m.SenderID,
		RecipientID:        m.RecipientID,
		Subject:            m.Subject,
		Content:            m.Content,
		Read:               m.Read,
		ReadAt:             m.ReadAt,
		DeletedBySender:    m.DeletedBySender,
		DeletedByRecipient: m.DeletedByRecipient,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
