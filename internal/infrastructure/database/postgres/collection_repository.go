package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sankofa/internal/domain/collection"
	"sankofa/internal/domain/hub"
	"sankofa/internal/domain/user"
	"sankofa/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollectionRepository struct {
	db *DB
}

func NewCollectionRepository(db *DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) Create(ctx context.Context, c *collection.Collection) error {
	c.ID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Status = collection.StatusPending

	if err := r.db.DB.WithContext(ctx).Create(toCollectionModel(c)).Error; err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

func (r *CollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	var dbModel models.CollectionModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, collection.ErrCollectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return toCollectionEntity(&dbModel), nil
}

func (r *CollectionRepository) List(ctx context.Context, filter *collection.Filter) ([]*collection.Collection, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.CollectionModel{})

	if filter.CollectorID != nil {
		query = query.Where("collector_id = ?", *filter.CollectorID)
	}
	if filter.HubID != nil {
		query = query.Where("hub_id = ?", *filter.HubID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.PlasticType != nil {
		query = query.Where("plastic_type = ?", string(*filter.PlasticType))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var dbModels []models.CollectionModel
	total, err := paginate(query, filter.Page, filter.PageSize, "created_at "+sortDirection(filter.SortOrder), &dbModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list collections: %w", err)
	}

	collections := make([]*collection.Collection, len(dbModels))
	for i := range dbModels {
		collections[i] = toCollectionEntity(&dbModels[i])
	}

	return collections, total, nil
}

// Verify flips a pending collection to verified, credits the collector and
// adds the weight to the receiving hub. The status guard on the UPDATE makes
// concurrent verifications of the same collection lose with ErrAlreadyVerified.
func (r *CollectionRepository) Verify(ctx context.Context, id, verifierID uuid.UUID) (*collection.VerificationResult, error) {
	result := &collection.VerificationResult{}

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.CollectionModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return collection.ErrCollectionNotFound
			}
			return fmt.Errorf("failed to load collection: %w", err)
		}
		if m.Status == string(collection.StatusVerified) {
			return collection.ErrAlreadyVerified
		}

		now := time.Now().UTC()
		res := tx.Model(&models.CollectionModel{}).
			Where("id = ? AND status = ?", id, string(collection.StatusPending)).
			Updates(map[string]interface{}{
				"status":      string(collection.StatusVerified),
				"verified_by": verifierID,
				"verified_at": now,
				"updated_at":  now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to verify collection: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return collection.ErrAlreadyVerified
		}

		res = tx.Model(&models.UserModel{}).
			Where("id = ?", m.CollectorID).
			Updates(map[string]interface{}{
				"cash_balance":  addRounded("cash_balance", m.CashAmount),
				"token_balance": addRounded("token_balance", m.TokenAmount),
				"updated_at":    now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to credit collector: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return user.ErrUserNotFound
		}

		res = tx.Model(&models.HubModel{}).
			Where("id = ?", m.HubID).
			Updates(map[string]interface{}{
				"current_capacity": addRounded("current_capacity", m.Weight),
				"updated_at":       now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update hub capacity: %w", res.Error)
		}

		if res.RowsAffected > 0 {
			var h models.HubModel
			if err := tx.Where("id = ?", m.HubID).First(&h).Error; err != nil {
				return fmt.Errorf("failed to reload hub: %w", err)
			}
			if h.CurrentCapacity >= h.Capacity && h.Status == string(hub.StatusActive) {
				if err := tx.Model(&models.HubModel{}).
					Where("id = ?", h.ID).
					Update("status", string(hub.StatusFull)).Error; err != nil {
					return fmt.Errorf("failed to mark hub full: %w", err)
				}
				result.HubFull = true
			}
			result.HubCapacity = h.Capacity
			result.HubCurrent = h.CurrentCapacity
		}

		m.Status = string(collection.StatusVerified)
		m.VerifiedBy = &verifierID
		m.VerifiedAt = &now
		m.UpdatedAt = now
		result.Collection = toCollectionEntity(&m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Delete soft-deletes a collection that has not been verified yet.
func (r *CollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.DB.WithContext(ctx).
		Where("id = ? AND status = ?", id, string(collection.StatusPending)).
		Delete(&models.CollectionModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete collection: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return collection.ErrDeleteVerified
}

func (r *CollectionRepository) GetStatistics(ctx context.Context, hubID *uuid.UUID) (*collection.Statistics, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.CollectionModel{})
	if hubID != nil {
		query = query.Where("hub_id = ?", *hubID)
	}

	var rows []struct {
		Status      string
		PlasticType string
		Count       int64
		Weight      float64
	}
	err := query.
		Select("status, plastic_type, COUNT(*) AS count, COALESCE(SUM(weight), 0) AS weight").
		Group("status, plastic_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get collection statistics: %w", err)
	}

	stats := &collection.Statistics{ByPlasticType: make(map[string]collection.TypeBreakdown)}
	for _, row := range rows {
		stats.TotalCount += row.Count
		stats.TotalWeight += row.Weight

		switch collection.Status(row.Status) {
		case collection.StatusPending:
			stats.PendingCount += row.Count
			stats.PendingWeight += row.Weight
		case collection.StatusVerified:
			stats.VerifiedCount += row.Count
			stats.VerifiedWeight += row.Weight
		}

		breakdown := stats.ByPlasticType[row.PlasticType]
		breakdown.Count += row.Count
		breakdown.Weight += row.Weight
		stats.ByPlasticType[row.PlasticType] = breakdown
	}

	return stats, nil
}

// Facts loads the columns analytics needs for every live collection created
// since the given time (all of them when since is nil).
func (r *CollectionRepository) Facts(ctx context.Context, since *time.Time) ([]collection.Fact, error) {
	query := r.db.DB.WithContext(ctx).
		Model(&models.CollectionModel{}).
		Select("collector_id", "hub_id", "weight", "plastic_type", "cash_amount", "token_amount", "status", "created_at", "verified_at")
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var dbModels []models.CollectionModel
	if err := query.Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load collection facts: %w", err)
	}

	facts := make([]collection.Fact, len(dbModels))
	for i, m := range dbModels {
		facts[i] = collection.Fact{
			CollectorID: m.CollectorID,
			HubID:       m.HubID,
			Weight:      m.Weight,
			PlasticType: m.PlasticType,
			CashAmount:  m.CashAmount,
			TokenAmount: m.TokenAmount,
			Status:      m.Status,
			CreatedAt:   m.CreatedAt,
			VerifiedAt:  m.VerifiedAt,
		}
	}

	return facts, nil
}

func toCollectionModel(c *collection.Collection) *models.CollectionModel {
	return &models.CollectionModel{
		ID:          c.ID,
		CollectorID: c.CollectorID,
		HubID:       c.HubID,
		Weight:      c.Weight,
		PlasticType: string(c.PlasticType),
		CashAmount:  c.CashAmount,
		TokenAmount: c.TokenAmount,
		Status:      string(c.Status),
		Notes:       c.Notes,
		VerifiedBy:  c.VerifiedBy,
		VerifiedAt:  c.VerifiedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCollectionEntity(m *models.CollectionModel) *collection.Collection {
	return &collection.Collection{
		ID:          m.ID,
		CollectorID: m.CollectorID,
		HubID:       m.HubID,
		Weight:      m.Weight,
		PlasticType: collection.PlasticType(m.PlasticType),
		CashAmount:  m.CashAmount,
		TokenAmount: m.TokenAmount,
		Status:      collection.Status(m.Status),
		Notes:       m.Notes,
		VerifiedBy:  m.VerifiedBy,
		VerifiedAt:  m.VerifiedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
