package helpers

import (
	"encoding/json"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
)

// Fixture is a small, consistent game dataset
type Fixture struct {
	CrewArchetypes []archetype.Crew
	ServerConfig   *player.ServerConfig
	PlatformConfig *player.PlatformConfig
	PlayerData     *player.PlayerData
	ItemArchetypes []archetype.Item
	Schematics     []archetype.ShipSchematic
}

// Snapshot returns the fixture as a completed load
func (f Fixture) Snapshot() player.Snapshot {
	return player.Snapshot{
		CrewArchetypes: f.CrewArchetypes,
		ServerConfig:   f.ServerConfig,
		PlatformConfig: f.PlatformConfig,
		Player:         f.PlayerData,
		ItemArchetypes: f.ItemArchetypes,
	}
}

// NewFixture returns two crew archetypes, a two-member roster, one ship,
// and a craftable plus a source-only item
func NewFixture() Fixture {
	active := int64(3)
	return Fixture{
		CrewArchetypes: []archetype.Crew{
			{ID: 10, Symbol: "spock_crew", Name: "Spock", ShortName: "Spock", MaxRarity: 5, Traits: []string{"vulcan"}},
			{ID: 20, Symbol: "kirk_crew", Name: "James T. Kirk", ShortName: "Kirk", MaxRarity: 5, Traits: []string{"human"}},
		},
		ServerConfig: &player.ServerConfig{
			AssetServer:        "https://assets.example",
			AssetBundleVersion: "1.0",
		},
		PlatformConfig: &player.PlatformConfig{
			ProductionServer: "https://game.example",
			ClientVersion:    "7.0.0",
		},
		PlayerData: &player.PlayerData{
			ID:    42,
			DBID:  4242,
			Fleet: &player.Fleet{ID: 900, Slabel: "Fleet of Tests", Rank: "LEADER"},
			Character: player.Character{
				ID:          7,
				DisplayName: "Captain Test",
				Level:       30,
				CrewAvatar:  &player.CrewAvatar{ID: 10, Symbol: "spock_crew", Name: "Spock"},
				Crew: []player.CrewInstance{
					{ID: 1, ArchetypeID: 10, Symbol: "spock_crew", Level: 50, Rarity: 4, MaxRarity: 5,
						Skills: map[string]player.Skill{"science_skill": {Core: 900, RangeMin: 100, RangeMax: 300}}},
					{ID: 2, ArchetypeID: 20, Symbol: "kirk_crew", Level: 40, Rarity: 3, MaxRarity: 5, ActiveID: &active},
				},
				Items: []player.ItemInstance{
					{ID: 500, ArchetypeID: 100, Symbol: "tricorder", Name: "Tricorder", Rarity: 2, Quantity: 3},
				},
				Ships: []player.ShipInstance{
					{ID: 301, ArchetypeID: 30, Symbol: "constitution_ship", Level: 5,
						ShipStats: archetype.ShipStats{Attack: 10, Accuracy: 20, Evasion: 15, Shields: 400, Hull: 800}},
				},
				AcceptedMissions: []json.RawMessage{json.RawMessage(`{"id":1,"symbol":"mission_1"}`)},
				DisputeHistories: []json.RawMessage{json.RawMessage(`{"id":2,"symbol":"dispute_1"}`)},
				CadetSchedule: player.CadetSchedule{
					Day:      1,
					Missions: []json.RawMessage{json.RawMessage(`{"id":3,"title":"Cadet Challenge"}`)},
				},
			},
		},
		ItemArchetypes: []archetype.Item{
			{ID: 100, Symbol: "tricorder", Name: "Tricorder", Rarity: 2, Type: archetype.ItemTypeCraftable,
				Recipe: &archetype.Recipe{Demands: []archetype.Demand{{ArchetypeID: 101, Count: 2}}}},
			{ID: 101, Symbol: "circuit", Name: "Bio-Neural Circuit", Rarity: 1, Type: archetype.ItemTypeSourceOnly,
				ItemSources: []archetype.ItemSource{{Type: 0, ID: 11, Name: "Mission One"}}},
		},
		Schematics: []archetype.ShipSchematic{
			{ID: 3000, Cost: 100, Ship: archetype.ShipTemplate{
				ArchetypeID: 30, Symbol: "constitution_ship", Name: "U.S.S. Enterprise", Rarity: 4, MaxLevel: 10,
				Traits: []string{"federation"},
			}},
		},
	}
}
