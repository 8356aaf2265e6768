package fleet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/fleet"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/collection"
	domain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/fleet"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/test/helpers"
)

func TestLoad_JoinsShipsToSchematics(t *testing.T) {
	// Arrange
	api := helpers.NewMockGameAPI()
	ships := collection.New(domain.ShipID)
	matcher := fleet.NewMatcher(api, ships)

	// Act
	records, jobs, err := matcher.Load(context.Background(), helpers.NewFixture().Snapshot())

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "U.S.S. Enterprise", records[0].Name)
	assert.Equal(t, 5, records[0].Level)
	assert.Equal(t, 10, records[0].MaxLevel)
	assert.Equal(t, 800, records[0].Attributes.Hull)
	assert.Empty(t, records[0].IconURL)

	require.Len(t, jobs, 1)
	assert.Equal(t, "U.S.S._Enterprise.png", jobs[0].FileName)
	assert.Equal(t, []string{helpers.CallShipSchematics}, api.Calls())
}

func TestLoad_SchematicFailure(t *testing.T) {
	api := helpers.NewMockGameAPI()
	api.FailOn(helpers.CallShipSchematics, errors.New("HTTP 503"))
	matcher := fleet.NewMatcher(api, collection.New(domain.ShipID))

	_, _, err := matcher.Load(context.Background(), helpers.NewFixture().Snapshot())

	assert.Error(t, err)
}

func TestMatch_SkipsUnknownSchematic(t *testing.T) {
	matcher := fleet.NewMatcher(nil, collection.New(domain.ShipID))
	owned := []player.ShipInstance{
		{ID: 1, ArchetypeID: 30},
		{ID: 2, ArchetypeID: 31},
		{ID: 1, ArchetypeID: 30},
	}
	schematics := []archetype.ShipSchematic{{Ship: archetype.ShipTemplate{ArchetypeID: 30, Name: "Defiant"}}}

	records, jobs := matcher.Match(context.Background(), owned, schematics)

	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Len(t, jobs, 1)
}

func TestMatch_JobPatchesOnlyItsShip(t *testing.T) {
	ships := collection.New(domain.ShipID)
	matcher := fleet.NewMatcher(nil, ships)
	owned := []player.ShipInstance{{ID: 1, ArchetypeID: 30}, {ID: 2, ArchetypeID: 31}}
	schematics := []archetype.ShipSchematic{
		{Ship: archetype.ShipTemplate{ArchetypeID: 30, Name: "Defiant"}},
		{Ship: archetype.ShipTemplate{ArchetypeID: 31, Name: "Voyager"}},
	}
	records, jobs := matcher.Match(context.Background(), owned, schematics)
	ships.Publish(records)

	jobs[1].Apply("http://x/voyager.png")

	first, _ := ships.Get(1)
	second, _ := ships.Get(2)
	assert.Empty(t, first.IconURL)
	assert.Equal(t, "http://x/voyager.png", second.IconURL)
}
