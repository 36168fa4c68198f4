package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

// ---- Common Helper Functions ----

// modifiersParam encodes modifiers for a JSONB column, storing NULL when
// there are none
func modifiersParam(mods []domain.ItemModifier) any {
	if len(mods) == 0 {
		return nil
	}
	return mods
}

// decodeModifiers turns a nullable JSONB value back into modifiers
func decodeModifiers(raw []byte) ([]domain.ItemModifier, error) {
	mods := []domain.ItemModifier{}
	if len(raw) == 0 {
		return mods, nil
	}
	if err := json.Unmarshal(raw, &mods); err != nil {
		return nil, fmt.Errorf("failed to unmarshal modifiers: %w", err)
	}
	return mods, nil
}

// scanInventoryRow scans the columns listed in inventoryColumns
func scanInventoryRow(row pgx.CollectableRow) (domain.InventoryRow, error) {
	var (
		r      domain.InventoryRow
		itemID int32
		raw    []byte
	)
	if err := row.Scan(&r.RowID, &r.UserID, &itemID, &r.Quality, &r.Value, &raw, &r.CreatedAt); err != nil {
		return domain.InventoryRow{}, err
	}
	r.ItemID = uint32(itemID)

	mods, err := decodeModifiers(raw)
	if err != nil {
		return domain.InventoryRow{}, err
	}
	r.Modifiers = mods
	return r, nil
}

// ---- End Common Helper Functions ----
