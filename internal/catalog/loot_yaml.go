package catalog

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/osse101/MineIdler_Go/internal/loot"
)

// rawEntry is one loot table entry as written in YAML.
// Item entries set name; subtable entries set table.
type rawEntry struct {
	Name    string           `yaml:"name"`
	Weight  *float64         `yaml:"weight"`
	Quality *rawDistribution `yaml:"quality_distribution"`
	Table   []rawEntry       `yaml:"table"`
}

type rawDistribution struct {
	Type   string  `yaml:"type"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std_dev"`
}

// decodeFile checks a catalog file against its schema before decoding it into out
func decodeFile(fsys fs.FS, name, schemaName string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToReadFile, name, err)
	}
	if err := schemaValidator.ValidateBytes(data, schemaName); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrInvalidCatalog, ErrMsgSchemaValidation, name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrInvalidCatalog, ErrMsgFailedToParseFile, name, err)
	}
	return nil
}

func (c *Catalog) buildTable(raw []rawEntry) (*loot.Table, error) {
	entries := make([]loot.Entry, 0, len(raw))
	for i, r := range raw {
		if r.Weight == nil {
			return nil, fmt.Errorf("entry %d: %s", i, ErrMsgMissingWeight)
		}
		isItem, isTable := r.Name != "", r.Table != nil
		if isItem == isTable {
			return nil, fmt.Errorf("entry %d: %s", i, ErrMsgAmbiguousEntry)
		}

		if isTable {
			sub, err := c.buildTable(r.Table)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			entries = append(entries, &loot.Subtable{Weight: *r.Weight, Table: sub})
			continue
		}

		id, ok := c.idsByName[r.Name]
		if !ok {
			return nil, fmt.Errorf("entry %d: %s %q", i, ErrMsgUnknownItem, r.Name)
		}
		entries = append(entries, &loot.ItemEntry{
			ItemID:     id,
			RarityTier: c.itemsByID[id].RarityTier,
			Weight:     *r.Weight,
			Quality:    r.Quality.distribution(),
		})
	}
	return loot.NewTable(entries)
}

func (d *rawDistribution) distribution() loot.Distribution {
	if d == nil {
		return loot.Uniform()
	}
	return loot.Distribution{Kind: d.Type, Mean: d.Mean, StdDev: d.StdDev}
}
