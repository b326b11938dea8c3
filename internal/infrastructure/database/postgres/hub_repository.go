package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sankofa/internal/domain/collection"
	"sankofa/internal/domain/hub"
	"sankofa/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HubRepository struct {
	db *DB
}

func NewHubRepository(db *DB) *HubRepository {
	return &HubRepository{db: db}
}

func (r *HubRepository) Create(ctx context.Context, h *hub.Hub) error {
	h.ID = uuid.New()
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.Status == "" {
		h.Status = hub.StatusActive
	}

	var existing int64
	if err := r.db.DB.WithContext(ctx).
		Model(&models.HubModel{}).
		Where("LOWER(name) = ? AND LOWER(region) = ?", toLower(h.Name), toLower(h.Region)).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to check hub name: %w", err)
	}
	if existing > 0 {
		return hub.ErrHubAlreadyExists
	}

	if err := r.db.DB.WithContext(ctx).Create(toHubModel(h)).Error; err != nil {
		return fmt.Errorf("failed to create hub: %w", err)
	}

	return nil
}

func (r *HubRepository) GetByID(ctx context.Context, id uuid.UUID) (*hub.Hub, error) {
	var dbModel models.HubModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, hub.ErrHubNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hub: %w", err)
	}

	return toHubEntity(&dbModel), nil
}

func (r *HubRepository) Update(ctx context.Context, h *hub.Hub) error {
	h.UpdatedAt = time.Now().UTC()

	result := r.db.DB.WithContext(ctx).
		Model(&models.HubModel{}).
		Where("id = ?", h.ID).
		Updates(map[string]interface{}{
			"name":             h.Name,
			"region":           h.Region,
			"location":         h.Location,
			"latitude":         h.Latitude,
			"longitude":        h.Longitude,
			"capacity":         h.Capacity,
			"current_capacity": h.CurrentCapacity,
			"status":           string(h.Status),
			"manager_id":       h.ManagerID,
			"updated_at":       h.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update hub: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return hub.ErrHubNotFound
	}

	return nil
}

func (r *HubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.HubModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete hub: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return hub.ErrHubNotFound
	}

	return nil
}

func (r *HubRepository) List(ctx context.Context, filter *hub.Filter) ([]*hub.Hub, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.HubModel{})

	if filter.Region != "" {
		query = query.Where("LOWER(region) = ?", toLower(filter.Region))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ManagerID != nil {
		query = query.Where("manager_id = ?", *filter.ManagerID)
	}
	if filter.Search != "" {
		search := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", search, search)
	}

	var dbModels []models.HubModel
	total, err := paginate(query, filter.Page, filter.PageSize, "name ASC", &dbModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list hubs: %w", err)
	}

	hubs := make([]*hub.Hub, len(dbModels))
	for i := range dbModels {
		hubs[i] = toHubEntity(&dbModels[i])
	}

	return hubs, total, nil
}

func (r *HubRepository) ListAll(ctx context.Context) ([]*hub.Hub, error) {
	var dbModels []models.HubModel
	if err := r.db.DB.WithContext(ctx).Order("name ASC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list hubs: %w", err)
	}

	hubs := make([]*hub.Hub, len(dbModels))
	for i := range dbModels {
		hubs[i] = toHubEntity(&dbModels[i])
	}
	return hubs, nil
}

// SetFillLevel stores a scale reading. An empty status leaves the status as is.
func (r *HubRepository) SetFillLevel(ctx context.Context, id uuid.UUID, fillKg float64, status hub.Status) (*hub.Hub, error) {
	if fillKg < 0 {
		return nil, hub.ErrInvalidFillLevel
	}

	updates := map[string]interface{}{
		"current_capacity": fillKg,
		"updated_at":       time.Now().UTC(),
	}
	if status != "" {
		updates["status"] = string(status)
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.HubModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to set hub fill level: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, hub.ErrHubNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *HubRepository) GetStats(ctx context.Context, id uuid.UUID) (*hub.Stats, error) {
	h, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var row struct {
		Total          int64
		Pending        int64
		VerifiedWeight float64
	}
	err = r.db.DB.WithContext(ctx).
		Model(&models.CollectionModel{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN weight ELSE 0 END), 0) AS verified_weight",
			string(collection.StatusPending), string(collection.StatusVerified),
		).
		Where("hub_id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get hub stats: %w", err)
	}

	return &hub.Stats{
		HubID:           h.ID,
		CollectionCount: row.Total,
		PendingCount:    row.Pending,
		VerifiedWeight:  row.VerifiedWeight,
		Capacity:        h.Capacity,
		CurrentCapacity: h.CurrentCapacity,
		Utilisation:     h.Utilisation(),
	}, nil
}

func toHubModel(h *hub.Hub) *models.HubModel {
	return &models.HubModel{
		ID:              h.ID,
		Name:            h.Name,
		Region:          h.Region,
		Location:        h.Location,
		Latitude:        h.Latitude,
		Longitude:       h.Longitude,
		Capacity:        h.Capacity,
		CurrentCapacity: h.CurrentCapacity,
		Status:          string(h.Status),
		ManagerID:       h.ManagerID,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

func toHubEntity(m *models.HubModel) *hub.Hub {
	return &hub.Hub{
		ID:              m.ID,
		Name:            m.Name,
		Region:          m.Region,
		Location:        m.Location,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		Capacity:        m.Capacity,
		CurrentCapacity: m.CurrentCapacity,
		Status:          hub.Status(m.Status),
		ManagerID:       m.ManagerID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
