package catalog

// Catalog file layout, relative to the catalog root
const (
	FileItems          = "items.yml"
	FileMineLocations  = "mine_locations.yml"
	DirLootTables      = "loot_tables"
	LootTableExtension = ".yml"
)

// Embedded JSON schemas, relative to DirSchemas
const (
	DirSchemas          = "schemas"
	SchemaItems         = "items.schema.json"
	SchemaMineLocations = "mine_locations.schema.json"
	SchemaLootTable     = "loot_table.schema.json"
)

// Error messages
const (
	ErrMsgInvalidCatalog     = "invalid catalog"
	ErrMsgDuplicateItemID    = "duplicate item id"
	ErrMsgDuplicateItemName  = "duplicate item name"
	ErrMsgDuplicateLocation  = "duplicate mine location"
	ErrMsgUnknownItem        = "unknown item"
	ErrMsgMissingLootTable   = "no loot table for location"
	ErrMsgInvalidRarityTier  = "rarity tier out of range"
	ErrMsgEmptyName          = "name must not be empty"
	ErrMsgMissingWeight      = "entry has no weight"
	ErrMsgAmbiguousEntry     = "entry must have exactly one of name or table"
	ErrMsgFailedToReadFile   = "failed to read catalog file"
	ErrMsgFailedToParseFile  = "failed to parse catalog file"
	ErrMsgSchemaValidation   = "catalog file does not match schema"
	ErrMsgFailedToBuildTable = "failed to build loot table"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Catalog loaded"
)
