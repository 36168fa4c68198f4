package upgrade

import (
	"fmt"
	"math"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

// ItemResolver resolves catalog item names to ids
type ItemResolver interface {
	ItemIDByName(name string) (uint32, bool)
}

// CostCalculator prices storage upgrades
type CostCalculator struct {
	woodenBeam    uint32
	woodenPalette uint32
	roofShingles  uint32
}

// NewCostCalculator resolves the resource item ids once
func NewCostCalculator(items ItemResolver) (*CostCalculator, error) {
	ids := make([]uint32, 3)
	for i, name := range []string{ItemWoodenBeam, ItemWoodenPalette, ItemRoofShingles} {
		id, ok := items.ItemIDByName(name)
		if !ok {
			return nil, fmt.Errorf("%s: %s", ErrMsgUnknownCostItem, name)
		}
		ids[i] = id
	}
	return &CostCalculator{
		woodenBeam:    ids[0],
		woodenPalette: ids[1],
		roofShingles:  ids[2],
	}, nil
}

// Cost returns the resources needed to raise storage from level to level+1
func (c *CostCalculator) Cost(level uint32) [3]domain.ItemCost {
	base := StorageCostBase(level)
	return [3]domain.ItemCost{
		{ItemID: c.woodenBeam, TotalQuality: float32(base * WoodenBeamRatio)},
		{ItemID: c.woodenPalette, TotalQuality: float32(base * WoodenPaletteRatio)},
		{ItemID: c.roofShingles, TotalQuality: float32(base * RoofShinglesRatio)},
	}
}

// StorageCostBase is the base magnitude of the storage cost curve
func StorageCostBase(level uint32) float64 {
	l := float64(level)
	return CostBase * (l + 1) * math.Pow(CostGrowth, CostGrowthExponent*l)
}
