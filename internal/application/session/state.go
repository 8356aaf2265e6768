package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/collection"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/equipment"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/fleet"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/roster"
)

// Captain is the header shown for the logged in player
type Captain struct {
	Name          string
	SecondLine    string
	AvatarURL     string
	AvatarBodyURL string
}

// MissionParams feeds the mission helper views
type MissionParams struct {
	AcceptedMissions []json.RawMessage
	DisputeHistories []json.RawMessage
}

// State is everything a session exposes to the presentation layer.
// Collections are patched concurrently by enrichment; accessors return copies.
type State struct {
	Crew      *collection.Collection[roster.Crew]
	Ships     *collection.Collection[fleet.Ship]
	Equipment *collection.Collection[equipment.Entry]

	mu            sync.RWMutex
	loaded        bool
	status        string
	captain       Captain
	items         []player.ItemInstance
	fleetID       *int64
	missionParams MissionParams
	cadetParams   MissionParams
}

// NewState creates an empty, not yet loaded state
func NewState() *State {
	return &State{
		Crew:      collection.New(roster.CrewID),
		Ships:     collection.New(fleet.ShipID),
		Equipment: collection.New(equipment.EntryID),
	}
}

// populate copies the player-level fields out of the finished snapshot
func (s *State) populate(snap player.Snapshot) {
	data := snap.Player
	character := data.Character

	s.mu.Lock()
	defer s.mu.Unlock()

	s.captain = Captain{
		Name:       character.DisplayName,
		SecondLine: fmt.Sprintf("Level %d", character.Level),
	}
	s.items = append([]player.ItemInstance(nil), character.Items...)
	s.fleetID = nil
	if data.Fleet != nil {
		id := data.Fleet.ID
		s.fleetID = &id
	}
	s.missionParams = MissionParams{
		AcceptedMissions: character.AcceptedMissions,
		DisputeHistories: character.DisputeHistories,
	}
	s.cadetParams = MissionParams{
		AcceptedMissions: character.CadetSchedule.Missions,
	}
	s.loaded = true
}

// reset returns the state to its unloaded form
func (s *State) reset() {
	s.mu.Lock()
	s.loaded = false
	s.captain = Captain{}
	s.items = nil
	s.fleetID = nil
	s.missionParams = MissionParams{}
	s.cadetParams = MissionParams{}
	s.mu.Unlock()

	s.Crew.Publish(nil)
	s.Ships.Publish(nil)
	s.Equipment.Publish(nil)
}

func (s *State) setStatus(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = label
}

func (s *State) setAvatar(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if url == "" || s.captain.AvatarURL == url {
		return false
	}
	s.captain.AvatarURL = url
	return true
}

func (s *State) setAvatarBody(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if url == "" || s.captain.AvatarBodyURL == url {
		return false
	}
	s.captain.AvatarBodyURL = url
	return true
}

// Loaded reports whether the last load succeeded
func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Status returns the latest loader label
func (s *State) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Captain returns the captain header
func (s *State) Captain() Captain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.captain
}

// Items returns the player's inventory
func (s *State) Items() []player.ItemInstance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]player.ItemInstance(nil), s.items...)
}

// FleetID returns the player's fleet id, or false when not in a fleet
func (s *State) FleetID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fleetID == nil {
		return 0, false
	}
	return *s.fleetID, true
}

// MissionParams returns the mission helper inputs
func (s *State) MissionParams() MissionParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyParams(s.missionParams)
}

// CadetParams returns the cadet mission helper inputs
func (s *State) CadetParams() MissionParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyParams(s.cadetParams)
}

func copyParams(p MissionParams) MissionParams {
	return MissionParams{
		AcceptedMissions: append([]json.RawMessage(nil), p.AcceptedMissions...),
		DisputeHistories: append([]json.RawMessage(nil), p.DisputeHistories...),
	}
}
