// Package fleet joins the player's ships to the ship schematics
package fleet

import (
	"context"
	"fmt"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/metrics"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/enrichment"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/logging"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/collection"
	domain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/fleet"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
)

// CollectionName labels fleet enrichment in metrics
const CollectionName = "ship"

// Matcher builds ship records and icon jobs that patch them in target
type Matcher struct {
	source player.SchematicSource
	target *collection.Collection[domain.Ship]
}

// NewMatcher creates a matcher loading schematics from source
func NewMatcher(source player.SchematicSource, target *collection.Collection[domain.Ship]) *Matcher {
	return &Matcher{source: source, target: target}
}

// Load fetches the schematics and matches the snapshot's ships against them
func (m *Matcher) Load(ctx context.Context, snap player.Snapshot) ([]domain.Ship, []enrichment.Job, error) {
	if snap.Player == nil {
		return nil, nil, nil
	}

	schematics, err := m.source.LoadShipSchematics(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ship schematics: %w", err)
	}

	ships, jobs := m.Match(ctx, snap.Player.Character.Ships, schematics)
	return ships, jobs, nil
}

// Match joins owned ships to schematics by archetype id. Ships without a
// schematic are skipped; a repeated ship id keeps its first instance.
func (m *Matcher) Match(ctx context.Context, owned []player.ShipInstance, schematics []archetype.ShipSchematic) ([]domain.Ship, []enrichment.Job) {
	logger := logging.LoggerFromContext(ctx)
	index := archetype.SchematicIndex(schematics)

	ships := make([]domain.Ship, 0, len(owned))
	jobs := make([]enrichment.Job, 0, len(owned))
	seen := make(map[int64]struct{}, len(owned))

	for _, instance := range owned {
		if _, dup := seen[instance.ID]; dup {
			continue
		}

		schematic, ok := index[instance.ArchetypeID]
		if !ok {
			miss := shared.NewJoinMissError(CollectionName, instance.ID, instance.ArchetypeID)
			metrics.RecordJoinMiss(CollectionName)
			logger.Log("WARNING", "skipping ship without schematic", map[string]interface{}{
				"ship_id":      miss.InstanceID,
				"archetype_id": miss.ArchetypeID,
			})
			continue
		}
		seen[instance.ID] = struct{}{}

		tmpl := schematic.Ship
		ships = append(ships, domain.Ship{
			ID:          instance.ID,
			ArchetypeID: tmpl.ArchetypeID,
			Symbol:      tmpl.Symbol,
			Name:        tmpl.Name,
			Rarity:      tmpl.Rarity,
			Level:       instance.Level,
			MaxLevel:    tmpl.MaxLevel,
			Attributes:  instance.ShipStats,
			Traits:      append([]string(nil), tmpl.Traits...),
		})

		id := instance.ID
		jobs = append(jobs, enrichment.Job{
			Collection: CollectionName,
			EntityID:   id,
			FileName:   imagecache.ShipFileName(tmpl.Name),
			Apply: func(url string) bool {
				return m.target.Patch(id, domain.SetIcon(url))
			},
		})
	}

	return ships, jobs
}
