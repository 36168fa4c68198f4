package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

// LedgerTx is the slice of a storage transaction the ledger needs.
// Implementations must lock the returned rows until the transaction ends.
type LedgerTx interface {
	LockInventory(ctx context.Context, userID int64) ([]domain.InventoryRow, error)
	DeleteInventoryRows(ctx context.Context, userID int64, rowIDs []int64) error
}

// Debit removes enough of the user's items to cover every cost line.
// It must run inside the caller's transaction; on error nothing has been
// deleted and the caller is expected to roll back.
func Debit(ctx context.Context, tx LedgerTx, userID int64, costs []domain.ItemCost) error {
	rows, err := tx.LockInventory(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorage, ErrMsgLockInventoryFailed, err)
	}

	rowIDs, err := PlanDebit(rows, costs)
	if err != nil {
		return err
	}
	if len(rowIDs) == 0 {
		return nil
	}

	if err := tx.DeleteInventoryRows(ctx, userID, rowIDs); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorage, ErrMsgDeleteRowsFailed, err)
	}
	return nil
}

// PlanDebit picks the rows to consume for the given costs without touching
// storage. Each item's rows are spent lowest quality first, ties broken by
// the lower row id, until the accumulated quality covers the line. Repeated
// lines for one item continue where the previous line stopped.
func PlanDebit(rows []domain.InventoryRow, costs []domain.ItemCost) ([]int64, error) {
	byItem := make(map[uint32][]domain.InventoryRow)
	for _, row := range rows {
		byItem[row.ItemID] = append(byItem[row.ItemID], row)
	}
	for _, itemRows := range byItem {
		sort.Slice(itemRows, func(i, j int) bool {
			if itemRows[i].Quality != itemRows[j].Quality {
				return itemRows[i].Quality > itemRows[j].Quality
			}
			return itemRows[i].RowID > itemRows[j].RowID
		})
	}

	// remaining[id] is the length of the still-unspent prefix of byItem[id]
	remaining := make(map[uint32]int, len(byItem))
	for id, itemRows := range byItem {
		remaining[id] = len(itemRows)
	}

	var selected []int64
	for _, cost := range costs {
		itemRows, ok := byItem[cost.ItemID]
		if !ok {
			return nil, &domain.ItemNotFoundError{ItemID: cost.ItemID}
		}

		end := remaining[cost.ItemID]
		var consumed float64
		for end > 0 && consumed < float64(cost.TotalQuality) {
			end--
			consumed += float64(itemRows[end].Quality)
			selected = append(selected, itemRows[end].RowID)
		}

		if consumed < float64(cost.TotalQuality) {
			return nil, &domain.InsufficientInventoryError{
				ItemID:    cost.ItemID,
				Required:  cost.TotalQuality,
				Available: float32(consumed),
			}
		}
		remaining[cost.ItemID] = end
	}

	return selected, nil
}
