package catalog

import (
	"math/rand/v2"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/validation"
)

const testItems = `
- id: 1
  name: stone
  rarity_tier: 0
- id: 2
  name: gem
  rarity_tier: 4
`

const testLocations = `
- id: 1
  name: cave
  display_name: Cave
`

func testFS(lootTable string) fstest.MapFS {
	return fstest.MapFS{
		FileItems:                   {Data: []byte(testItems)},
		FileMineLocations:           {Data: []byte(testLocations)},
		DirLootTables + "/cave.yml": {Data: []byte(lootTable)},
	}
}

func TestLoadDefault(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	loc, err := c.Location("starter")
	require.NoError(t, err)
	assert.Equal(t, "starter", loc.Descriptor.Name)

	for _, name := range []string{"wooden_beam", "wooden_palette", "roof_shingles"} {
		_, ok := c.ItemIDByName(name)
		assert.True(t, ok, name)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		item := loc.Table.Roll(rng)
		_, ok := c.ItemByID(item.ItemID)
		assert.True(t, ok, "rolled unknown item %d", item.ItemID)
	}
}

func TestLoad_ResolvesNamesAndTiers(t *testing.T) {
	c, err := Load(testFS(`
- name: gem
  weight: 1
  quality_distribution:
    type: normal
    mean: 0.5
    std_dev: 0
`))
	require.NoError(t, err)

	loc, err := c.Location("cave")
	require.NoError(t, err)

	item := loc.Table.Roll(rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, uint32(2), item.ItemID)
	assert.Equal(t, float32(0.5), item.Quality)
	assert.InDelta(t, 800*0.8889470532407613, float64(item.Value), 1e-3)

	assert.Len(t, c.Items(), 2)
	assert.Equal(t, []domain.MineLocationDescriptor{{ID: 1, Name: "cave", DisplayName: "Cave"}}, c.Locations())
}

func TestLocation_Unknown(t *testing.T) {
	c, err := Load(testFS("- name: stone\n  weight: 1\n"))
	require.NoError(t, err)

	_, err = c.Location("moon")
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestLoad_InvalidTables(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{"unknown item", "- name: diamond\n  weight: 1\n"},
		{"missing weight", "- name: stone\n"},
		{"zero total weight", "- name: stone\n  weight: 0\n"},
		{"negative weight", "- name: stone\n  weight: -2\n- name: gem\n  weight: 3\n"},
		{"name and table", "- name: stone\n  weight: 1\n  table:\n    - name: gem\n      weight: 1\n"},
		{"empty subtable", "- weight: 1\n  table: []\n"},
		{"negative std dev", "- name: stone\n  weight: 1\n  quality_distribution:\n    type: normal\n    mean: 0.5\n    std_dev: -1\n"},
		{"unknown distribution", "- name: stone\n  weight: 1\n  quality_distribution:\n    type: triangle\n"},
		{"empty table", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(testFS(tt.table))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoad_MissingLootTable(t *testing.T) {
	fsys := testFS("- name: stone\n  weight: 1\n")
	delete(fsys, DirLootTables+"/cave.yml")

	_, err := Load(fsys)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), ErrMsgMissingLootTable)
}

func TestLoad_InvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		items string
	}{
		{"duplicate id", "- id: 1\n  name: a\n- id: 1\n  name: b\n"},
		{"duplicate name", "- id: 1\n  name: a\n- id: 2\n  name: a\n"},
		{"tier out of range", "- id: 1\n  name: a\n  rarity_tier: 6\n"},
		{"empty name", "- id: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := testFS("- name: stone\n  weight: 1\n")
			fsys[FileItems] = &fstest.MapFile{Data: []byte(tt.items)}

			_, err := Load(fsys)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoad_RejectsFilesThatDoNotMatchSchema(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		data  string
		where string
	}{
		{"item with unknown field", FileItems, "- id: 1\n  name: stone\n  colour: grey\n", "/0"},
		{"item id not a number", FileItems, "- id: one\n  name: stone\n", "/0/id"},
		{"location without name", FileMineLocations, "- id: 1\n  display_name: Cave\n", "/0"},
		{"weight as text", DirLootTables + "/cave.yml", "- name: stone\n  weight: heavy\n", "/0/weight"},
		{"nested entry with unknown field", DirLootTables + "/cave.yml", "- weight: 1\n  table:\n    - name: stone\n      weight: 1\n      chance: 2\n", "/0/table/0"},
		{"not a list", DirLootTables + "/cave.yml", "name: stone\n", "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := testFS("- name: stone\n  weight: 1\n")
			fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}

			_, err := Load(fsys)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			assert.ErrorIs(t, err, validation.ErrSchemaValidation)
			assert.Contains(t, err.Error(), tt.file)
			assert.Contains(t, err.Error(), tt.where)
		})
	}
}

func TestLoad_SchemaLeavesSemanticChecksToTableBuilder(t *testing.T) {
	// Zero total weight is valid per entry, so only the table builder rejects it
	_, err := Load(testFS("- name: stone\n  weight: 0\n"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
	assert.NotErrorIs(t, err, validation.ErrSchemaValidation)
	assert.Contains(t, err.Error(), ErrMsgFailedToBuildTable)
}
