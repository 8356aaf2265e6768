package player

import (
	"context"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
)

// GameAPI is the remote game backend consumed by the loader, in fixed stage order.
// Every method fails with an error both on transport errors and when the server
// reports an unsuccessful response.
type GameAPI interface {
	LoadCrewArchetypes(ctx context.Context) ([]archetype.Crew, error)
	LoadServerConfig(ctx context.Context) (*ServerConfig, error)
	LoadPlatformConfig(ctx context.Context) (*PlatformConfig, error)
	LoadPlayerData(ctx context.Context) (*PlayerData, []archetype.Item, error)
}

// SchematicSource provides the static ship schematic dictionary
type SchematicSource interface {
	LoadShipSchematics(ctx context.Context) ([]archetype.ShipSchematic, error)
}
