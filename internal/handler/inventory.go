package handler

import (
	"net/http"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/inventory"
)

// InventoryParams are the query parameters of an inventory page
type InventoryParams struct {
	PageSize      uint32
	Page          uint32
	SortBy        string `validate:"omitempty,oneof=date_acquired rarity_tier value"`
	SortDirection string `validate:"omitempty,oneof=asc desc"`
}

// InventoryResponse is one page of the caller's inventory
type InventoryResponse struct {
	Items         []domain.InventoryRow  `json:"items"`
	Page          uint32                 `json:"page"`
	PageSize      uint32                 `json:"page_size"`
	SortBy        domain.InventorySortBy `json:"sort_by"`
	SortDirection domain.SortDirection   `json:"sort_direction"`
}

// AggregatedInventoryResponse groups the caller's inventory by item
type AggregatedInventoryResponse struct {
	Items []domain.AggregatedItem `json:"items"`
}

// HandleGetInventory returns one page of the caller's items
// @Summary Get inventory
// @Description Returns one page of the player's items
// @Tags inventory
// @Produce json
// @Param X-Player-ID header int true "Player ID"
// @Param page query int false "Page number, starting at 0"
// @Param page_size query int false "Items per page"
// @Param sort_by query string false "Sort column" Enums(date_acquired, rarity_tier, value)
// @Param sort_direction query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} InventoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/inventory/ [get]
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := requirePlayerID(w, r)
		if !ok {
			return
		}

		params := InventoryParams{
			SortBy:        GetOptionalQueryParam(r, QueryParamSortBy, ""),
			SortDirection: GetOptionalQueryParam(r, QueryParamSortDirection, ""),
		}
		if params.PageSize, ok = GetUintQueryParam(r, w, QueryParamPageSize); !ok {
			return
		}
		if params.Page, ok = GetUintQueryParam(r, w, QueryParamPage); !ok {
			return
		}
		if err := validateRequest(w, &params); err != nil {
			return
		}

		query := domain.InventoryQuery{
			PageSize:      params.PageSize,
			PageNumber:    params.Page,
			SortBy:        domain.InventorySortBy(params.SortBy),
			SortDirection: domain.SortDirection(params.SortDirection),
		}.Normalize()

		rows, err := svc.GetInventory(r.Context(), playerID, query)
		if err != nil {
			respondServiceError(w, r, OpGetInventory, err)
			return
		}
		if rows == nil {
			rows = []domain.InventoryRow{}
		}

		respondJSON(w, http.StatusOK, InventoryResponse{
			Items:         rows,
			Page:          query.PageNumber,
			PageSize:      query.PageSize,
			SortBy:        query.SortBy,
			SortDirection: query.SortDirection,
		})
	}
}

// HandleGetAggregatedInventory returns the caller's item counts and totals
// @Summary Get aggregated inventory
// @Description Returns the player's item counts and total values grouped by item
// @Tags inventory
// @Produce json
// @Param X-Player-ID header int true "Player ID"
// @Success 200 {object} AggregatedInventoryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/inventory/aggregate [get]
func HandleGetAggregatedInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := requirePlayerID(w, r)
		if !ok {
			return
		}

		items, err := svc.GetAggregatedInventory(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, OpGetAggregated, err)
			return
		}
		if items == nil {
			items = []domain.AggregatedItem{}
		}
		respondJSON(w, http.StatusOK, AggregatedInventoryResponse{Items: items})
	}
}
