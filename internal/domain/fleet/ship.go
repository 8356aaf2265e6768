package fleet

import "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"

// Ship is an owned ship joined with its schematic
type Ship struct {
	ID          int64
	ArchetypeID int64
	Symbol      string
	Name        string
	Rarity      int
	Level       int
	MaxLevel    int
	Attributes  archetype.ShipStats
	Traits      []string
	IconURL     string
}

// ShipID is the collection key function for Ship
func ShipID(s Ship) int64 {
	return s.ID
}

// SetIcon returns a patch that sets the ship icon once
func SetIcon(url string) func(*Ship) bool {
	return func(s *Ship) bool {
		if url == "" || s.IconURL == url {
			return false
		}
		s.IconURL = url
		return true
	}
}
