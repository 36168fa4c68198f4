package handler

import (
	"net/http"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

// CatalogReader exposes the loaded item and location descriptors
type CatalogReader interface {
	Items() []domain.ItemDescriptor
	Locations() []domain.MineLocationDescriptor
}

// HandleGetItems lists every item descriptor
// @Summary List items
// @Description Returns every item descriptor in the catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string][]domain.ItemDescriptor
// @Router /api/v1/catalog/items [get]
func HandleGetItems(c CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"items": c.Items()})
	}
}

// HandleGetLocations lists every mine location
// @Summary List mine locations
// @Description Returns every mine location in the catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string][]domain.MineLocationDescriptor
// @Router /api/v1/catalog/locations [get]
func HandleGetLocations(c CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"locations": c.Locations()})
	}
}
