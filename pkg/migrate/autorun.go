package migrate

import (
	"context"
	"fmt"

	"github.com/keepstockhq/keepstock-backend/pkg/db"
	"github.com/keepstockhq/keepstock-backend/pkg/db/models"
	"github.com/keepstockhq/keepstock-backend/pkg/logger"
)

// AutoRun creates or updates the schema for the database-backed record
// store. The JSON file backend never calls it.
func AutoRun(ctx context.Context, client *db.Client, logg *logger.Logger) error {
	if client == nil {
		return fmt.Errorf("database client required")
	}

	err := client.DB().WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.StockItem{},
		&models.RefillItem{},
	)
	if err != nil {
		return fmt.Errorf("auto migrating schema: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "database schema migrated")
	}
	return nil
}
