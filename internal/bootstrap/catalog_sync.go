package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/MineIdler_Go/internal/catalog"
	"github.com/osse101/MineIdler_Go/internal/config"
	"github.com/osse101/MineIdler_Go/internal/repository"
)

// LoadCatalog reads the item catalog and loot tables from CATALOG_DIR, or the
// embedded defaults when it is unset
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.Catalog.Dir != "" {
		cat, err = catalog.LoadDir(cfg.Catalog.Dir)
	} else {
		cat, err = catalog.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalogFailed, err)
	}

	slog.Info(LogMsgCatalogLoaded,
		"dir", cfg.Catalog.Dir,
		"items", len(cat.Items()),
		"locations", len(cat.Locations()))
	return cat, nil
}

// SyncItemCatalog mirrors the item descriptors into the items table so
// inventory rows can reference them and be sorted by rarity
func SyncItemCatalog(ctx context.Context, repo repository.ItemCatalog, cat *catalog.Catalog) error {
	items := cat.Items()
	if err := repo.UpsertItemDescriptors(ctx, items); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSyncCatalogFailed, err)
	}
	slog.Info(LogMsgCatalogSynced, "items", len(items))
	return nil
}
