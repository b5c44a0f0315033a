package migration

import (
	"context"

	"github.com/claimex/backend/internal/entity"
)

// AutoMigrate creates or alters every table from the gorm entities. When this
// migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}
