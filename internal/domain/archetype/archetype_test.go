package archetype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
)

func TestRarityName(t *testing.T) {
	assert.Equal(t, "Basic", archetype.RarityName(0))
	assert.Equal(t, "Super Rare", archetype.RarityName(4))
	assert.Equal(t, "Legendary", archetype.RarityName(5))
	assert.Equal(t, "", archetype.RarityName(6))
	assert.Equal(t, "", archetype.RarityName(-1))
}

func TestCrewIndex_FirstEntryWins(t *testing.T) {
	index := archetype.CrewIndex([]archetype.Crew{
		{ID: 1, Name: "James T. Kirk"},
		{ID: 2, Name: "Spock"},
		{ID: 1, Name: "Duplicate Kirk"},
	})

	assert.Len(t, index, 2)
	assert.Equal(t, "James T. Kirk", index[1].Name)
}

func TestSchematicIndex_KeyedByShipArchetype(t *testing.T) {
	index := archetype.SchematicIndex([]archetype.ShipSchematic{
		{ID: 100, Ship: archetype.ShipTemplate{ArchetypeID: 7, Name: "U.S.S. Enterprise"}},
	})

	assert.Contains(t, index, int64(7))
	assert.NotContains(t, index, int64(100))
}
