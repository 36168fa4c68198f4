package loot

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/osse101/MineIdler_Go/internal/domain"
)

// ErrInvalidTable is returned when a loot table violates its invariants
var ErrInvalidTable = errors.New(ErrMsgInvalidTable)

// Entry is one weighted choice in a table: an *ItemEntry or a *Subtable.
type Entry interface {
	weight() float64
}

// ItemEntry yields a concrete item when chosen
type ItemEntry struct {
	ItemID     uint32
	RarityTier uint8
	Weight     float64
	Quality    Distribution
}

func (e *ItemEntry) weight() float64 { return e.Weight }

// Subtable defers the choice to a nested table when chosen
type Subtable struct {
	Weight float64
	Table  *Table
}

func (e *Subtable) weight() float64 { return e.Weight }

// Table is an immutable weighted loot table.
// Roll is safe for concurrent use as long as each caller owns its rng.
type Table struct {
	entries []Entry
	total   float64
}

// NewTable validates the entries and builds a table.
// Subtables must have been built with NewTable themselves.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTable, ErrMsgEmptyTable)
	}

	var total float64
	for i, entry := range entries {
		w := entry.weight()
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("%w: entry %d: %s", ErrInvalidTable, i, ErrMsgInvalidWeight)
		}
		switch e := entry.(type) {
		case *ItemEntry:
			if err := e.Quality.Validate(); err != nil {
				return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidTable, i, err)
			}
		case *Subtable:
			if e.Table == nil {
				return nil, fmt.Errorf("%w: entry %d: %s", ErrInvalidTable, i, ErrMsgNilSubtable)
			}
		default:
			return nil, fmt.Errorf("%w: entry %d: unsupported entry %T", ErrInvalidTable, i, entry)
		}
		total += w
	}

	if total <= 0 || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTable, ErrMsgZeroTotalWeight)
	}

	return &Table{entries: entries, total: total}, nil
}

// Len returns the number of direct entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Roll picks an entry proportionally to its weight, descending into
// subtables until an item entry is reached, and generates the item.
func (t *Table) Roll(rng *rand.Rand) domain.GeneratedItem {
	switch e := t.choose(rng).(type) {
	case *ItemEntry:
		return e.generate(rng)
	case *Subtable:
		return e.Table.Roll(rng)
	default:
		panic(fmt.Sprintf("loot: unsupported entry %T", e))
	}
}

func (t *Table) choose(rng *rand.Rand) Entry {
	r := rng.Float64() * t.total
	var cumulative float64
	var last Entry
	for _, entry := range t.entries {
		w := entry.weight()
		if w == 0 {
			continue
		}
		cumulative += w
		last = entry
		if r < cumulative {
			return entry
		}
	}
	// rounding can leave r just above the final cumulative sum
	return last
}

func (e *ItemEntry) generate(rng *rand.Rand) domain.GeneratedItem {
	quality := e.Quality.Sample(rng)
	return domain.GeneratedItem{
		ItemID:    e.ItemID,
		Quality:   quality,
		Value:     ItemValue(e.RarityTier, quality),
		Modifiers: []domain.ItemModifier{},
	}
}

// NewRand returns a generator seeded from the runtime source, for one session.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
