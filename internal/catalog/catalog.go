package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/loot"
	"github.com/osse101/MineIdler_Go/internal/validation"
)

//go:embed data
var embedded embed.FS

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

var schemaValidator = newSchemaValidator()

func newSchemaValidator() validation.SchemaValidator {
	sub, err := fs.Sub(schemaFiles, DirSchemas)
	if err != nil {
		panic(err)
	}
	return validation.NewSchemaValidator(sub)
}

// ErrInvalidCatalog wraps every load-time configuration error
var ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)

// Location is a mine location together with its loot table
type Location struct {
	Descriptor domain.MineLocationDescriptor
	Table      *loot.Table
}

// Catalog holds the item descriptors and mine locations.
// It is immutable after loading and safe for concurrent reads.
type Catalog struct {
	items           []domain.ItemDescriptor
	itemsByID       map[uint32]domain.ItemDescriptor
	idsByName       map[string]uint32
	locations       []*Location
	locationsByName map[string]*Location
}

// LoadDefault loads the catalog shipped with the binary.
func LoadDefault() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads a catalog from a directory on disk.
func LoadDir(dir string) (*Catalog, error) {
	return Load(os.DirFS(dir))
}

// Load reads and validates a catalog from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	var items []domain.ItemDescriptor
	if err := decodeFile(fsys, FileItems, SchemaItems, &items); err != nil {
		return nil, err
	}

	c := &Catalog{
		itemsByID:       make(map[uint32]domain.ItemDescriptor, len(items)),
		idsByName:       make(map[string]uint32, len(items)),
		locationsByName: make(map[string]*Location),
	}
	if err := c.addItems(items); err != nil {
		return nil, err
	}

	var descriptors []domain.MineLocationDescriptor
	if err := decodeFile(fsys, FileMineLocations, SchemaMineLocations, &descriptors); err != nil {
		return nil, err
	}

	for _, d := range descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: location %d: %s", ErrInvalidCatalog, d.ID, ErrMsgEmptyName)
		}
		if _, dup := c.locationsByName[d.Name]; dup {
			return nil, fmt.Errorf("%w: %s %q", ErrInvalidCatalog, ErrMsgDuplicateLocation, d.Name)
		}

		file := path.Join(DirLootTables, d.Name+LootTableExtension)
		var raw []rawEntry
		if err := decodeFile(fsys, file, SchemaLootTable, &raw); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s %q", ErrInvalidCatalog, ErrMsgMissingLootTable, d.Name)
			}
			return nil, err
		}

		table, err := c.buildTable(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: %w", ErrInvalidCatalog, ErrMsgFailedToBuildTable, d.Name, err)
		}

		loc := &Location{Descriptor: d, Table: table}
		c.locations = append(c.locations, loc)
		c.locationsByName[d.Name] = loc
	}

	slog.Default().Info(LogMsgCatalogLoaded, "items", len(c.items), "locations", len(c.locations))
	return c, nil
}

func (c *Catalog) addItems(items []domain.ItemDescriptor) error {
	for _, item := range items {
		if item.Name == "" {
			return fmt.Errorf("%w: item %d: %s", ErrInvalidCatalog, item.ID, ErrMsgEmptyName)
		}
		if item.RarityTier > domain.MaxRarityTier {
			return fmt.Errorf("%w: item %q: %s", ErrInvalidCatalog, item.Name, ErrMsgInvalidRarityTier)
		}
		if _, dup := c.itemsByID[item.ID]; dup {
			return fmt.Errorf("%w: %s %d", ErrInvalidCatalog, ErrMsgDuplicateItemID, item.ID)
		}
		if _, dup := c.idsByName[item.Name]; dup {
			return fmt.Errorf("%w: %s %q", ErrInvalidCatalog, ErrMsgDuplicateItemName, item.Name)
		}
		c.itemsByID[item.ID] = item
		c.idsByName[item.Name] = item.ID
	}

	c.items = append([]domain.ItemDescriptor(nil), items...)
	sort.Slice(c.items, func(i, j int) bool { return c.items[i].ID < c.items[j].ID })
	return nil
}

// Location returns the named mine location.
func (c *Catalog) Location(name string) (*Location, error) {
	loc, ok := c.locationsByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLocation, name)
	}
	return loc, nil
}

// ItemByID looks up an item descriptor.
func (c *Catalog) ItemByID(id uint32) (domain.ItemDescriptor, bool) {
	item, ok := c.itemsByID[id]
	return item, ok
}

// ItemIDByName resolves an item name to its id.
func (c *Catalog) ItemIDByName(name string) (uint32, bool) {
	id, ok := c.idsByName[name]
	return id, ok
}

// Items returns every item descriptor ordered by id.
func (c *Catalog) Items() []domain.ItemDescriptor {
	return append([]domain.ItemDescriptor(nil), c.items...)
}

// Locations returns every mine location descriptor in file order.
func (c *Catalog) Locations() []domain.MineLocationDescriptor {
	out := make([]domain.MineLocationDescriptor, len(c.locations))
	for i, loc := range c.locations {
		out[i] = loc.Descriptor
	}
	return out
}
