package postgres

import (
	"fmt"

	"sankofa/internal/infrastructure/database/postgres/models"
	"sankofa/internal/logger"

	"go.uber.org/zap"
)

// AllModels lists every table in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.HubModel{},
		&models.CollectionModel{},
		&models.DonationModel{},
		&models.HealthDataModel{},
		&models.PaymentModel{},
		&models.MessageModel{},
		&models.VolunteerModel{},
	}
}

func (d *DB) Migrate() error {
	all := AllModels()
	if err := d.DB.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.Info("Database schema migrated", zap.Int("tables", len(all)))
	return nil
}
