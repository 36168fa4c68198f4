package domain

// MaxRarityTier is the highest rarity tier an item descriptor may carry.
const MaxRarityTier = 5

// ItemDescriptor describes a kind of item in the catalog
type ItemDescriptor struct {
	ID          uint32 `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	RarityTier  uint8  `json:"rarity_tier" yaml:"rarity_tier"`
}

// MineLocationDescriptor describes a place a player can mine
type MineLocationDescriptor struct {
	ID          uint32 `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Description string `json:"description" yaml:"description"`
}

// ItemModifier is an attribute attached to a generated item. Generation
// currently produces none; the field is carried through storage.
type ItemModifier struct {
	Kind  string  `json:"kind"`
	Value float32 `json:"value"`
}

// GeneratedItem is the result of a single loot roll
type GeneratedItem struct {
	ItemID    uint32         `json:"item_id"`
	Quality   float32        `json:"quality"`
	Value     float32        `json:"value"`
	Modifiers []ItemModifier `json:"modifiers"`
}
