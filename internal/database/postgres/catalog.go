package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/repository"
)

// CatalogRepository mirrors item descriptors into the items table
type CatalogRepository struct {
	db *pgxpool.Pool
}

var _ repository.ItemCatalog = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// UpsertItemDescriptors inserts or updates every descriptor in one transaction
func (r *CatalogRepository) UpsertItemDescriptors(ctx context.Context, items []domain.ItemDescriptor) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, item := range items {
			batch.Queue(`
				INSERT INTO items (id, name, description, rarity_tier)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (id) DO UPDATE
				SET name = EXCLUDED.name,
				    description = EXCLUDED.description,
				    rarity_tier = EXCLUDED.rarity_tier`,
				int32(item.ID), item.Name, item.Description, int16(item.RarityTier))
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgUpsertItemsFailed, err)
		}
		return nil
	})
}
