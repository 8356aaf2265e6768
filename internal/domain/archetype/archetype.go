// Package archetype holds the static template records the game server ships
// with every session: crew, item and ship types, independent of ownership.
package archetype

// Icon points at an asset file on the game CDN
type Icon struct {
	File string `json:"file"`
}

// Crew is a crew member template as returned by the crew archetype endpoint
type Crew struct {
	ID        int64    `json:"id"`
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	ShortName string   `json:"short_name"`
	MaxRarity int      `json:"max_rarity"`
	Traits    []string `json:"traits"`
	// TraitsHidden are server-side traits not shown on the crew card
	TraitsHidden []string `json:"traits_hidden"`
	Skills       []string `json:"skills"`
	Icon         Icon     `json:"icon"`
	Portrait     Icon     `json:"portrait"`
	FullBody     Icon     `json:"full_body"`
}

// Demand is one ingredient line of a crafting recipe
type Demand struct {
	ArchetypeID int64 `json:"archetype_id"`
	Count       int   `json:"count"`
}

// Recipe lists what an item is crafted from
type Recipe struct {
	Demands []Demand `json:"demands"`
}

// ItemSource is a place (mission, faction shop, dispute) where an item drops
type ItemSource struct {
	Type           int     `json:"type"`
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	EnergyQuotient float64 `json:"energy_quotient"`
	ChanceGrade    int     `json:"chance_grade"`
	Dispute        int     `json:"dispute,omitempty"`
	Mastery        int     `json:"mastery,omitempty"`
}

// Item type codes as sent by the server
const (
	ItemTypeCraftable  = 2
	ItemTypeSourceOnly = 3
)

// Item is an equipment/consumable template from the item archetype cache
type Item struct {
	ID          int64        `json:"id"`
	Symbol      string       `json:"symbol"`
	Name        string       `json:"name"`
	ShortName   string       `json:"short_name,omitempty"`
	Rarity      int          `json:"rarity"`
	Type        int          `json:"type"`
	Flavor      string       `json:"flavor,omitempty"`
	Icon        Icon         `json:"icon"`
	Recipe      *Recipe      `json:"recipe,omitempty"`
	ItemSources []ItemSource `json:"item_sources"`
}

// ShipStats are the per-level combat attributes of a ship
type ShipStats struct {
	Attack     int `json:"attack"`
	Accuracy   int `json:"accuracy"`
	Evasion    int `json:"evasion"`
	Shields    int `json:"shields"`
	Hull       int `json:"hull"`
	CritChance int `json:"crit_chance"`
	CritBonus  int `json:"crit_bonus"`
	Antimatter int `json:"antimatter"`
}

// ShipTemplate is the ship part of a schematic
type ShipTemplate struct {
	ArchetypeID int64    `json:"archetype_id"`
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name"`
	Rarity      int      `json:"rarity"`
	MaxLevel    int      `json:"max_level"`
	Traits      []string `json:"traits"`
	Icon        Icon     `json:"icon"`
	ShipStats
}

// ShipSchematic pairs a ship template with the schematic needed to build it
type ShipSchematic struct {
	ID   int64        `json:"id"`
	Icon Icon         `json:"icon"`
	Cost int          `json:"cost"`
	Ship ShipTemplate `json:"ship"`
}

// rarityNames maps the server rarity index to its wiki display name
var rarityNames = []string{"Basic", "Common", "Uncommon", "Rare", "Super Rare", "Legendary"}

// RarityName returns the wiki name for a rarity index, or "" when out of range
func RarityName(rarity int) string {
	if rarity < 0 || rarity >= len(rarityNames) {
		return ""
	}
	return rarityNames[rarity]
}

// CrewIndex builds an id-indexed lookup of crew archetypes.
// Later duplicates are ignored.
func CrewIndex(crew []Crew) map[int64]*Crew {
	index := make(map[int64]*Crew, len(crew))
	for i := range crew {
		if _, exists := index[crew[i].ID]; exists {
			continue
		}
		index[crew[i].ID] = &crew[i]
	}
	return index
}

// SchematicIndex builds a ship-archetype-id lookup of schematics
func SchematicIndex(schematics []ShipSchematic) map[int64]*ShipSchematic {
	index := make(map[int64]*ShipSchematic, len(schematics))
	for i := range schematics {
		id := schematics[i].Ship.ArchetypeID
		if _, exists := index[id]; exists {
			continue
		}
		index[id] = &schematics[i]
	}
	return index
}
