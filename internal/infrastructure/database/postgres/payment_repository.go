package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sankofa/internal/domain/payment"
	"sankofa/internal/infrastructure/database/postgres/models"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *DB
}

func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Status = payment.StatusPending

	if err := r.db.DB.WithContext(ctx).Create(toPaymentModel(p)).Error; err != nil {
		if isDuplicateKey(err) {
			return payment.ErrDuplicateReference
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	return r.get(r.db.DB.WithContext(ctx), id)
}

func (r *PaymentRepository) get(db *gorm.DB, id uuid.UUID) (*payment.Payment, error) {
	var dbModel models.PaymentModel
	err := db.Where("id = ?", id).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payment.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return toPaymentEntity(&dbModel), nil
}

func (r *PaymentRepository) List(ctx context.Context, filter *payment.Filter) ([]*payment.Payment, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.PaymentModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Method != nil {
		query = query.Where("method = ?", string(*filter.Method))
	}

	var dbModels []models.PaymentModel
	total, err := paginate(query, filter.Page, filter.PageSize, "created_at DESC", &dbModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := make([]*payment.Payment, len(dbModels))
	for i := range dbModels {
		payments[i] = toPaymentEntity(&dbModels[i])
	}

	return payments, total, nil
}

// Complete settles a pending payment and debits the payee. The balance guard
// in the UPDATE keeps cash_balance from going negative.
func (r *PaymentRepository) Complete(ctx context.Context, id, processedBy uuid.UUID) (*payment.Payment, error) {
	var completed *payment.Payment

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := r.transition(tx, id, processedBy, payment.StatusCompleted)
		if err != nil {
			return err
		}

		res := tx.Model(&models.UserModel{}).
			Where("id = ? AND "+covers("cash_balance"), p.UserID, utils.Round2(p.Amount)).
			Updates(map[string]interface{}{
				"cash_balance": subRounded("cash_balance", p.Amount),
				"updated_at":   time.Now().UTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to debit user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return payment.ErrInsufficientFunds
		}

		completed = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return completed, nil
}

func (r *PaymentRepository) Fail(ctx context.Context, id, processedBy uuid.UUID) (*payment.Payment, error) {
	var failed *payment.Payment

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := r.transition(tx, id, processedBy, payment.StatusFailed)
		failed = p
		return err
	})
	if err != nil {
		return nil, err
	}

	return failed, nil
}

func (r *PaymentRepository) transition(tx *gorm.DB, id, processedBy uuid.UUID, next payment.Status) (*payment.Payment, error) {
	p, err := r.get(tx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanTransition(next) {
		return nil, payment.ErrInvalidTransition
	}

	now := time.Now().UTC()
	res := tx.Model(&models.PaymentModel{}).
		Where("id = ? AND status = ?", id, string(payment.StatusPending)).
		Updates(map[string]interface{}{
			"status":       string(next),
			"processed_by": processedBy,
			"processed_at": now,
			"updated_at":   now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, payment.ErrInvalidTransition
	}

	p.Status = next
	p.ProcessedBy = &processedBy
	p.ProcessedAt = &now
	p.UpdatedAt = now
	return p, nil
}

func toPaymentModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:            p.ID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        string(p.Method),
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		Description:   p.Description,
		ProcessedBy:   p.ProcessedBy,
		ProcessedAt:   p.ProcessedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPaymentEntity(m *models.PaymentModel) *payment.Payment {
	return &payment.Payment{
		ID:            m.ID,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Method:        payment.Method(m.Method),
		TransactionID: m.TransactionID,
		Status:        payment.Status(m.Status),
		Description:   m.Description,
		ProcessedBy:   m.ProcessedBy,
		ProcessedAt:   m.ProcessedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
