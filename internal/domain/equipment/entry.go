package equipment

import "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"

// Entry is one item of the exhaustive equipment catalog. The catalog covers
// every archetype the server knows, owned or not, and doubles as a recipe
// and source reference.
type Entry struct {
	ID        int64
	Symbol    string
	Name      string
	ShortName string
	Rarity    int
	// Type is copied verbatim: 3 means source-only, 2 craftable
	Type int
	// Recipe is nil for source-only items
	Recipe   []archetype.Demand
	Sources  []archetype.ItemSource
	IconFile string
	IconURL  string
}

// HasRecipe reports whether the item can be crafted
func (e Entry) HasRecipe() bool {
	return e.Recipe != nil
}

// EntryID is the collection key function for Entry
func EntryID(e Entry) int64 {
	return e.ID
}

// SetIcon returns a patch that replaces the placeholder icon with a resolved URL
func SetIcon(url string) func(*Entry) bool {
	return func(e *Entry) bool {
		if url == "" || e.IconURL == url {
			return false
		}
		e.IconURL = url
		return true
	}
}
