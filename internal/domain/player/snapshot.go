package player

import (
	"encoding/json"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
)

// Snapshot is the accumulated result of the remote load stages.
// Stages return a new Snapshot rather than mutating the one they were given;
// once the loader reaches Done the value is treated as immutable.
type Snapshot struct {
	CrewArchetypes []archetype.Crew
	ServerConfig   *ServerConfig
	PlatformConfig *PlatformConfig
	Player         *PlayerData
	ItemArchetypes []archetype.Item
}

// Complete reports whether every stage has contributed its part
func (s Snapshot) Complete() bool {
	return s.CrewArchetypes != nil && s.ServerConfig != nil && s.PlatformConfig != nil && s.Player != nil
}

// ServerConfig is the subset of the server configuration the companion uses
type ServerConfig struct {
	AssetServer        string          `json:"asset_server"`
	AssetBundleVersion string          `json:"asset_bundle_version"`
	CraftConfig        json.RawMessage `json:"craft_config,omitempty"`
}

// PlatformConfig is the subset of the platform configuration the companion uses
type PlatformConfig struct {
	ProductionServer string `json:"production_server"`
	AuthServer       string `json:"auth_server"`
	ClientVersion    string `json:"client_version"`
}

// PlayerData is the decoded player payload
type PlayerData struct {
	ID        int64     `json:"id"`
	DBID      int64     `json:"dbid"`
	Character Character `json:"character"`
	Fleet     *Fleet    `json:"fleet,omitempty"`
}

// Fleet references the player's fleet, if any
type Fleet struct {
	ID     int64  `json:"id"`
	Slabel string `json:"slabel"`
	Rank   string `json:"rank"`
}

// CrewAvatar is the captain portrait chosen by the player
type CrewAvatar struct {
	ID     int64  `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// CadetSchedule holds the rotating cadet challenge missions
type CadetSchedule struct {
	Day      int               `json:"day"`
	Missions []json.RawMessage `json:"missions"`
}

// Character is the player's in-game identity and owned state
type Character struct {
	ID               int64             `json:"id"`
	DisplayName      string            `json:"display_name"`
	Level            int               `json:"level"`
	CrewAvatar       *CrewAvatar       `json:"crew_avatar,omitempty"`
	Crew             []CrewInstance    `json:"crew"`
	Items            []ItemInstance    `json:"items"`
	Ships            []ShipInstance    `json:"ships"`
	AcceptedMissions []json.RawMessage `json:"accepted_missions"`
	DisputeHistories []json.RawMessage `json:"dispute_histories"`
	CadetSchedule    CadetSchedule     `json:"cadet_schedule"`
}

// Skill is one skill block on a crew instance
type Skill struct {
	Core     int `json:"core"`
	RangeMin int `json:"range_min"`
	RangeMax int `json:"range_max"`
}

// CrewInstance is a crew member owned by the player
type CrewInstance struct {
	ID          int64            `json:"id"`
	ArchetypeID int64            `json:"archetype_id"`
	Symbol      string           `json:"symbol"`
	Level       int              `json:"level"`
	Rarity      int              `json:"rarity"`
	MaxRarity   int              `json:"max_rarity"`
	Favorite    bool             `json:"favorite"`
	ActiveID    *int64           `json:"active_id,omitempty"`
	Skills      map[string]Skill `json:"skills"`
	Traits      []string         `json:"traits"`
	// ExpiresIn is set for crew in the buyback (airlock) queue
	ExpiresIn *int `json:"expires_in,omitempty"`
}

// ItemInstance is an inventory stack
type ItemInstance struct {
	ID          int64          `json:"id"`
	ArchetypeID int64          `json:"archetype_id"`
	Symbol      string         `json:"symbol"`
	Name        string         `json:"name"`
	Rarity      int            `json:"rarity"`
	Quantity    int            `json:"quantity"`
	Icon        archetype.Icon `json:"icon"`
}

// ShipInstance is a ship owned by the player, with level-specific stats
type ShipInstance struct {
	ID          int64  `json:"id"`
	ArchetypeID int64  `json:"archetype_id"`
	Symbol      string `json:"symbol"`
	Level       int    `json:"level"`
	archetype.ShipStats
}
