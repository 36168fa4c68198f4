package handler

import (
	"net/http"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/logger"
	"github.com/osse101/MineIdler_Go/internal/upgrade"
)

// StorageCostResponse is the price of the next storage level
type StorageCostResponse struct {
	StorageLevel uint32            `json:"storage_level"`
	Cost         []domain.ItemCost `json:"cost"`
}

// HandleGetBase returns the caller's upgrades and inventory usage
// @Summary Get base
// @Description Returns the player's upgrade levels and inventory usage
// @Tags base
// @Produce json
// @Param X-Player-ID header int true "Player ID"
// @Success 200 {object} domain.BaseInfo
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/base/ [get]
func HandleGetBase(svc upgrade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := requirePlayerID(w, r)
		if !ok {
			return
		}

		info, err := svc.GetBaseInfo(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, OpGetBase, err)
			return
		}
		respondJSON(w, http.StatusOK, info)
	}
}

// HandleGetStorageCost returns what the next storage upgrade costs
// @Summary Get storage upgrade cost
// @Description Lists the items the next storage level costs
// @Tags base
// @Produce json
// @Param X-Player-ID header int true "Player ID"
// @Success 200 {object} StorageCostResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/base/storage/cost [get]
func HandleGetStorageCost(svc upgrade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := requirePlayerID(w, r)
		if !ok {
			return
		}

		upgrades, err := svc.GetUpgrades(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, OpGetStorageCost, err)
			return
		}
		cost, err := svc.NextStorageCost(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, OpGetStorageCost, err)
			return
		}
		respondJSON(w, http.StatusOK, StorageCostResponse{StorageLevel: upgrades.StorageLevel, Cost: cost})
	}
}

// HandleUpgradeStorage buys the next storage level
// @Summary Upgrade storage
// @Description Debits the cost from the player's inventory, lowest quality first, and raises the storage level
// @Tags base
// @Produce json
// @Param X-Player-ID header int true "Player ID"
// @Success 200 {object} domain.Upgrades
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} InsufficientInventoryResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/base/storage/upgrade [post]
func HandleUpgradeStorage(svc upgrade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := requirePlayerID(w, r)
		if !ok {
			return
		}

		upgrades, err := svc.UpgradeStorage(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, OpUpgradeStorage, err)
			return
		}

		logger.FromContext(r.Context()).Info("Storage upgraded",
			"user_id", playerID,
			"storage_level", upgrades.StorageLevel)
		respondJSON(w, http.StatusOK, upgrades)
	}
}
