package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sankofa/internal/domain/volunteer"
	"sankofa/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VolunteerRepository struct {
	db *DB
}

func NewVolunteerRepository(db *DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

func (r *VolunteerRepository) Create(ctx context.Context, v *volunteer.Volunteer) error {
	v.ID = uuid.New()
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	v.Status = volunteer.StatusPending
	v.HoursLogged = 0

	if err := r.db.DB.WithContext(ctx).Create(toVolunteerModel(v)).Error; err != nil {
		if isDuplicateKey(err) {
			return volunteer.ErrAlreadyApplied
		}
		return fmt.Errorf("failed to create volunteer: %w", err)
	}

	return nil
}

func (r *VolunteerRepository) GetByID(ctx context.Context, id uuid.UUID) (*volunteer.Volunteer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *VolunteerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*volunteer.Volunteer, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *VolunteerRepository) first(ctx context.Context, cond string, arg interface{}) (*volunteer.Volunteer, error) {
	var dbModel models.VolunteerModel
	err := r.db.DB.WithContext(ctx).Where(cond, arg).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, volunteer.ErrVolunteerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer: %w", err)
	}

	return toVolunteerEntity(&dbModel), nil
}

func (r *VolunteerRepository) List(ctx context.Context, filter *volunteer.Filter) ([]*volunteer.Volunteer, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.VolunteerModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Region != "" {
		query = query.Where("LOWER(region) = ?", toLower(filter.Region))
	}

	var dbModels []models.VolunteerModel
	total, err := paginate(query, filter.Page, filter.PageSize, "created_at DESC", &dbModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list volunteers: %w", err)
	}

	volunteers := make([]*volunteer.Volunteer, len(dbModels))
	for i := range dbModels {
		volunteers[i] = toVolunteerEntity(&dbModels[i])
	}

	return volunteers, total, nil
}

func (r *VolunteerRepository) Review(ctx context.Context, id uuid.UUID, status volunteer.Status, reviewerID uuid.UUID) (*volunteer.Volunteer, error) {
	now := time.Now().UTC()
	result := r.db.DB.WithContext(ctx).
		Model(&models.VolunteerModel{}).
		Where("id = ? AND status = ?", id, string(volunteer.StatusPending)).
		Updates(map[string]interface{}{
			"status":      string(status),
			"reviewed_by": reviewerID,
			"reviewed_at": now,
			"updated_at":  now,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to review volunteer: %w", result.Error)
	}

	v, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, volunteer.ErrAlreadyReviewed
	}

	return v, nil
}

func (r *VolunteerRepository) AddHours(ctx context.Context, id uuid.UUID, hours float64) (*volunteer.Volunteer, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.VolunteerModel{}).
		Where("id = ? AND status = ?", id, string(volunteer.StatusApproved)).
		Updates(map[string]interface{}{
			"hours_logged": addRounded("hours_logged", hours),
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to log volunteer hours: %w", result.Error)
	}

	v, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, volunteer.ErrNotApproved
	}

	return v, nil
}

func toVolunteerModel(v *volunteer.Volunteer) *models.VolunteerModel {
	return &models.VolunteerModel{
		ID:           v.ID,
		UserID:       v.UserID,
		Skills:       v.Skills,
		Availability: v.Availability,
		Region:       v.Region,
		Motivation:   v.Motivation,
		Status:       string(v.Status),
		HoursLogged:  v.HoursLogged,
		ReviewedBy:   v.ReviewedBy,
		ReviewedAt:   v.ReviewedAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toVolunteerEntity(m *models.VolunteerModel) *volunteer.Volunteer {
	skills := m.Skills
	if skills == nil {
		skills = []string{}
	}
	return &volunteer.Volunteer{
		ID:           m.ID,
		UserID:       m.UserID,
		Skills:       skills,
		Availability: m.Availability,
		Region:       m.Region,
		Motivation:   m.Motivation,
		Status:       volunteer.Status(m.Status),
		HoursLogged:  m.HoursLogged,
		ReviewedBy:   m.ReviewedBy,
		ReviewedAt:   m.ReviewedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
