package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
)

// Stage names recorded by MockGameAPI, in load order
const (
	CallCrewArchetypes = "crew_archetypes"
	CallServerConfig   = "server_config"
	CallPlatformConfig = "platform_config"
	CallPlayerData     = "player_data"
	CallShipSchematics = "ship_schematics"
)

// MockGameAPI is a test double for player.GameAPI and player.SchematicSource
type MockGameAPI struct {
	mu sync.Mutex

	CrewArchetypes []archetype.Crew
	ServerConfig   *player.ServerConfig
	PlatformConfig *player.PlatformConfig
	PlayerData     *player.PlayerData
	ItemArchetypes []archetype.Item
	Schematics     []archetype.ShipSchematic

	failures map[string]error
	blocked  map[string]bool
	calls    []string
}

// NewMockGameAPI creates a game API serving the default fixture
func NewMockGameAPI() *MockGameAPI {
	fixture := NewFixture()
	return &MockGameAPI{
		CrewArchetypes: fixture.CrewArchetypes,
		ServerConfig:   fixture.ServerConfig,
		PlatformConfig: fixture.PlatformConfig,
		PlayerData:     fixture.PlayerData,
		ItemArchetypes: fixture.ItemArchetypes,
		Schematics:     fixture.Schematics,
		failures:       make(map[string]error),
		blocked:        make(map[string]bool),
	}
}

// FailOn makes the named call fail with err
func (m *MockGameAPI) FailOn(call string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		err = fmt.Errorf("%s: server reported failure", call)
	}
	m.failures[call] = err
}

// ClearFailures makes every call succeed again
func (m *MockGameAPI) ClearFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = make(map[string]error)
	m.blocked = make(map[string]bool)
}

// BlockOn makes the named call wait until its context is done
func (m *MockGameAPI) BlockOn(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocked[call] = true
}

// Calls returns the calls made so far, in order
func (m *MockGameAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockGameAPI) record(ctx context.Context, call string) error {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	err := m.failures[call]
	blocked := m.blocked[call]
	m.mu.Unlock()

	if blocked {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

// LoadCrewArchetypes implements player.GameAPI
func (m *MockGameAPI) LoadCrewArchetypes(ctx context.Context) ([]archetype.Crew, error) {
	if err := m.record(ctx, CallCrewArchetypes); err != nil {
		return nil, err
	}
	return m.CrewArchetypes, nil
}

// LoadServerConfig implements player.GameAPI
func (m *MockGameAPI) LoadServerConfig(ctx context.Context) (*player.ServerConfig, error) {
	if err := m.record(ctx, CallServerConfig); err != nil {
		return nil, err
	}
	return m.ServerConfig, nil
}

// LoadPlatformConfig implements player.GameAPI
func (m *MockGameAPI) LoadPlatformConfig(ctx context.Context) (*player.PlatformConfig, error) {
	if err := m.record(ctx, CallPlatformConfig); err != nil {
		return nil, err
	}
	return m.PlatformConfig, nil
}

// LoadPlayerData implements player.GameAPI
func (m *MockGameAPI) LoadPlayerData(ctx context.Context) (*player.PlayerData, []archetype.Item, error) {
	if err := m.record(ctx, CallPlayerData); err != nil {
		return nil, nil, err
	}
	return m.PlayerData, m.ItemArchetypes, nil
}

// LoadShipSchematics implements player.SchematicSource
func (m *MockGameAPI) LoadShipSchematics(ctx context.Context) ([]archetype.ShipSchematic, error) {
	if err := m.record(ctx, CallShipSchematics); err != nil {
		return nil, err
	}
	return m.Schematics, nil
}
