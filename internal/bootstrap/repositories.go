package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MineIdler_Go/internal/database/postgres"
)

// Repositories holds all repository implementations used by the application
type Repositories struct {
	Inventory *postgres.InventoryRepository
	Upgrade   *postgres.UpgradeRepository
	Catalog   *postgres.CatalogRepository
	Hiscores  *postgres.HiscoresRepository
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Inventory: postgres.NewInventoryRepository(dbPool),
		Upgrade:   postgres.NewUpgradeRepository(dbPool),
		Catalog:   postgres.NewCatalogRepository(dbPool),
		Hiscores:  postgres.NewHiscoresRepository(dbPool),
	}
}
