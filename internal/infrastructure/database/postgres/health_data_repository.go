package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sankofa/internal/domain/healthdata"
	"sankofa/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthDataRepository struct {
	db *DB
}

func NewHealthDataRepository(db *DB) *HealthDataRepository {
	return &HealthDataRepository{db: db}
}

func (r *HealthDataRepository) Create(ctx context.Context, rec *healthdata.Record) error {
	rec.ID = uuid.New()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = now
	}

	if err := r.db.DB.WithContext(ctx).Create(toHealthDataModel(rec)).Error; err != nil {
		return fmt.Errorf("failed to create health record: %w", err)
	}

	return nil
}

func (r *HealthDataRepository) GetByID(ctx context.Context, id uuid.UUID) (*healthdata.Record, error) {
	var dbModel models.HealthDataModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, healthdata.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get health record: %w", err)
	}

	return toHealthDataEntity(&dbModel), nil
}

func (r *HealthDataRepository) Update(ctx context.Context, rec *healthdata.Record) error {
	rec.UpdatedAt = time.Now().UTC()

	dbModel := toHealthDataModel(rec)
	result := r.db.DB.WithContext(ctx).
		Model(&models.HealthDataModel{}).
		Where("id = ?", rec.ID).
		Select("location", "region", "risk_level", "disease_cases", "environmental_factors", "recorded_at", "updated_at").
		Updates(dbModel)

	if result.Error != nil {
		return fmt.Errorf("failed to update health record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return healthdata.ErrRecordNotFound
	}

	return nil
}

func (r *HealthDataRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.HealthDataModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete health record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return healthdata.ErrRecordNotFound
	}

	return nil
}

func (r *HealthDataRepository) filtered(ctx context.Context, filter *healthdata.Filter) *gorm.DB {
	query := r.db.DB.WithContext(ctx).Model(&models.HealthDataModel{})

	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", likePattern(filter.Location))
	}
	if filter.Region != "" {
		query = query.Where("LOWER(region) = ?", toLower(filter.Region))
	}
	if filter.RiskLevel != nil {
		query = query.Where("risk_level = ?", string(*filter.RiskLevel))
	}
	if filter.From != nil {
		query = query.Where("recorded_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("recorded_at <= ?", *filter.To)
	}

	return query
}

func (r *HealthDataRepository) List(ctx context.Context, filter *healthdata.Filter) ([]*healthdata.Record, int64, error) {
	var dbModels []models.HealthDataModel
	total, err := paginate(r.filtered(ctx, filter), filter.Page, filter.PageSize, "recorded_at DESC", &dbModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list health records: %w", err)
	}

	return toHealthDataEntities(dbModels), total, nil
}

// ListAll returns every record matching filter, ignoring pagination.
func (r *HealthDataRepository) ListAll(ctx context.Context, filter *healthdata.Filter) ([]*healthdata.Record, error) {
	var dbModels []models.HealthDataModel
	if err := r.filtered(ctx, filter).Order("recorded_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list health records: %w", err)
	}

	return toHealthDataEntities(dbModels), nil
}

func toHealthDataEntities(dbModels []models.HealthDataModel) []*healthdata.Record {
	records := make([]*healthdata.Record, len(dbModels))
	for i := range dbModels {
		records[i] = toHealthDataEntity(&dbModels[i])
	}
	return records
}

func toHealthDataModel(rec *healthdata.Record) *models.HealthDataModel {
	return &models.HealthDataModel{
		ID:                   rec.ID,
		Location:             rec.Location,
		Region:               rec.Region,
		RiskLevel:            string(rec.RiskLevel),
		DiseaseCases:         rec.DiseaseCases,
		EnvironmentalFactors: rec.EnvironmentalFactors,
		ReportedBy:           rec.ReportedBy,
		RecordedAt:           rec.RecordedAt,
		CreatedAt:            rec.CreatedAt,
		UpdatedAt:            rec.UpdatedAt,
	}
}

func toHealthDataEntity(m *models.HealthDataModel) *healthdata.Record {
	rec := &healthdata.Record{
		ID:                   m.ID,
		Location:             m.Location,
		Region:               m.Region,
		RiskLevel:            healthdata.RiskLevel(m.RiskLevel),
		DiseaseCases:         m.DiseaseCases,
		EnvironmentalFactors: m.EnvironmentalFactors,
		ReportedBy:           m.ReportedBy,
		RecordedAt:           m.RecordedAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if rec.DiseaseCases == nil {
		rec.DiseaseCases = map[string]int{}
	}
	if rec.EnvironmentalFactors == nil {
		rec.EnvironmentalFactors = map[string]interface{}{}
	}
	return rec
}
