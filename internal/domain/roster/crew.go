package roster

import "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"

// Crew is an owned crew member joined with its archetype, ready for display
type Crew struct {
	ID          int64
	ArchetypeID int64
	Symbol      string
	Name        string
	ShortName   string
	Level       int
	Rarity      int
	MaxRarity   int
	Favorite    bool
	Active      bool
	Buyback     bool
	Skills      map[string]player.Skill
	Traits      []string
	// IconURL and IconBodyURL start empty and are filled in by enrichment
	IconURL     string
	IconBodyURL string
}

// CrewID is the collection key function for Crew
func CrewID(c Crew) int64 {
	return c.ID
}

// SetIcon returns a patch that sets the head icon once
func SetIcon(url string) func(*Crew) bool {
	return func(c *Crew) bool {
		if url == "" || c.IconURL == url {
			return false
		}
		c.IconURL = url
		return true
	}
}

// SetIconBody returns a patch that sets the full-body icon once
func SetIconBody(url string) func(*Crew) bool {
	return func(c *Crew) bool {
		if url == "" || c.IconBodyURL == url {
			return false
		}
		c.IconBodyURL = url
		return true
	}
}
