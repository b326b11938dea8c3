package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sankofa/internal/domain/donation"
	"sankofa/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationRepository struct {
	db *DB
}

func NewDonationRepository(db *DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(ctx context.Context, d *donation.Donation) error {
	d.ID = uuid.New()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	d.Status = donation.StatusPending

	if err := r.db.DB.WithContext(ctx).Create(toDonationModel(d)).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("payment reference %s already used: %w", d.Payment.Reference, err)
		}
		return fmt.Errorf("failed to create donation: %w", err)
	}

	return nil
}

func (r *DonationRepository) GetByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *DonationRepository) GetByReference(ctx context.Context, reference string) (*donation.Donation, error) {
	return r.first(ctx, "payment_reference = ?", reference)
}

func (r *DonationRepository) first(ctx context.Context, cond string, arg interface{}) (*donation.Donation, error) {
	var dbModel models.DonationModel
	err := r.db.DB.WithContext(ctx).Where(cond, arg).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, donation.ErrDonationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}

	return toDonationEntity(&dbModel), nil
}

func (r *DonationRepository) List(ctx context.Context, filter *donation.Filter) ([]*donation.Donation, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.DonationModel{})

	if filter.DonorID != nil {
		query = query.Where("donor_id = ?", *filter.DonorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}

	var dbModels []models.DonationModel
	total, err := paginate(query, filter.Page, filter.PageSize, "created_at DESC", &dbModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}

	donations := make([]*donation.Donation, len(dbModels))
	for i := range dbModels {
		donations[i] = toDonationEntity(&dbModels[i])
	}

	return donations, total, nil
}

func (r *DonationRepository) SetAuthorizationURL(ctx context.Context, id uuid.UUID, url string) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.DonationModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_authorization_url": url,
			"updated_at":                time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to store authorization url: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return donation.ErrDonationNotFound
	}

	return nil
}

// Settle applies a gateway outcome once; the status guard makes webhook
// redelivery and manual verification idempotent. A completed charge also
// overrides a failure recorded earlier (an expired checkout the donor paid
// late, or a failed attempt followed by a successful retry).
func (r *DonationRepository) Settle(ctx context.Context, reference string, status donation.Status, channel *string, paidAt *time.Time) (*donation.Donation, error) {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if channel != nil {
		updates["payment_channel"] = *channel
	}
	if paidAt != nil {
		updates["paid_at"] = paidAt.UTC()
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.DonationModel{}).
		Where("payment_reference = ? AND status IN ?", reference, settleableFrom(status)).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to settle donation: %w", result.Error)
	}

	d, err := r.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return d, donation.ErrAlreadySettled
	}

	return d, nil
}

func settleableFrom(status donation.Status) []string {
	if status == donation.StatusCompleted {
		return []string{string(donation.StatusPending), string(donation.StatusFailed)}
	}
	return []string{string(donation.StatusPending)}
}

// ExpirePending fails donations still pending after the cutoff, i.e. checkouts
// the donor abandoned.
func (r *DonationRepository) ExpirePending(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.DonationModel{}).
		Where("status = ? AND created_at < ?", string(donation.StatusPending), olderThan.UTC()).
		Updates(map[string]interface{}{
			"status":     string(donation.StatusFailed),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire pending donations: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *DonationRepository) GetStats(ctx context.Context) (*donation.Stats, error) {
	var rows []struct {
		Status string
		Type   string
		Count  int64
		Amount float64
	}
	err := r.db.DB.WithContext(ctx).
		Model(&models.DonationModel{}).
		Select("status, type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("status, type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get donation stats: %w", err)
	}

	stats := &donation.Stats{ByType: make(map[string]float64)}
	for _, row := range rows {
		switch donation.Status(row.Status) {
		case donation.StatusCompleted:
			stats.CompletedCount += row.Count
			stats.TotalAmount += row.Amount
			stats.ByType[row.Type] += row.Amount
		case donation.StatusPending:
			stats.PendingCount += row.Count
		}
	}
	if stats.CompletedCount > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.CompletedCount)
	}

	return stats, nil
}

func toDonationModel(d *donation.Donation) *models.DonationModel {
	return &models.DonationModel{
		ID:                      d.ID,
		DonorID:                 d.DonorID,
		Amount:                  d.Amount,
		Currency:                d.Currency,
		Type:                    string(d.Type),
		Note:                    d.Note,
		Anonymous:               d.Anonymous,
		PaymentMethod:           d.Payment.Method,
		PaymentProvider:         d.Payment.Provider,
		PaymentReference:        d.Payment.Reference,
		PaymentAuthorizationURL: d.Payment.AuthorizationURL,
		PaymentChannel:          d.Payment.Channel,
		PaidAt:                  d.Payment.PaidAt,
		Status:                  string(d.Status),
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}
}

func toDonationEntity(m *models.DonationModel) *donation.Donation {
	return &donation.Donation{
		ID:        m.ID,
		DonorID:   m.DonorID,
		Amount:    m.Amount,
		Currency:  m.Currency,
		Type:      donation.Type(m.Type),
		Note:      m.Note,
		Anonymous: m.Anonymous,
		Payment: donation.Payment{
			Method:           m.PaymentMethod,
			Provider:         m.PaymentProvider,
			Reference:        m.PaymentReference,
			AuthorizationURL: m.PaymentAuthorizationURL,
			Channel:          m.PaymentChannel,
			PaidAt:           m.PaidAt,
		},
		Status:    donation.Status(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
