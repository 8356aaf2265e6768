// Package roster joins the player's owned crew to the crew archetypes and
// prepares their portrait enrichment.
package roster

import (
	"context"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/metrics"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/enrichment"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/logging"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/collection"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
	domain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/roster"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
)

// CollectionName labels roster enrichment in metrics
const CollectionName = "crew"

// Matcher builds roster records and the icon jobs that patch them in target
type Matcher struct {
	target *collection.Collection[domain.Crew]
}

// NewMatcher creates a matcher whose jobs patch target
func NewMatcher(target *collection.Collection[domain.Crew]) *Matcher {
	return &Matcher{target: target}
}

// Match joins every owned crew instance to its archetype. Instances without
// an archetype are skipped; a repeated roster id keeps its first instance.
// Icon fields are left empty for the returned jobs to fill.
func (m *Matcher) Match(ctx context.Context, snap player.Snapshot) ([]domain.Crew, []enrichment.Job) {
	if snap.Player == nil {
		return nil, nil
	}
	logger := logging.LoggerFromContext(ctx)

	index := archetype.CrewIndex(snap.CrewArchetypes)
	owned := snap.Player.Character.Crew

	records := make([]domain.Crew, 0, len(owned))
	jobs := make([]enrichment.Job, 0, 2*len(owned))
	seen := make(map[int64]struct{}, len(owned))

	for _, instance := range owned {
		if _, dup := seen[instance.ID]; dup {
			continue
		}

		arch, ok := index[instance.ArchetypeID]
		if !ok {
			miss := shared.NewJoinMissError(CollectionName, instance.ID, instance.ArchetypeID)
			metrics.RecordJoinMiss(CollectionName)
			logger.Log("WARNING", "skipping crew without archetype", map[string]interface{}{
				"crew_id":      miss.InstanceID,
				"archetype_id": miss.ArchetypeID,
			})
			continue
		}
		seen[instance.ID] = struct{}{}

		records = append(records, newCrew(instance, arch))
		jobs = append(jobs, m.jobs(instance.ID, arch.Name)...)
	}

	return records, jobs
}

func (m *Matcher) jobs(id int64, name string) []enrichment.Job {
	return []enrichment.Job{
		{
			Collection: CollectionName,
			EntityID:   id,
			FileName:   imagecache.HeadFileName(name),
			Apply: func(url string) bool {
				return m.target.Patch(id, domain.SetIcon(url))
			},
		},
		{
			Collection: CollectionName,
			EntityID:   id,
			FileName:   imagecache.BodyFileName(name),
			Apply: func(url string) bool {
				return m.target.Patch(id, domain.SetIconBody(url))
			},
		},
	}
}

func newCrew(instance player.CrewInstance, arch *archetype.Crew) domain.Crew {
	traits := instance.Traits
	if len(traits) == 0 {
		traits = arch.Traits
	}
	maxRarity := instance.MaxRarity
	if maxRarity == 0 {
		maxRarity = arch.MaxRarity
	}

	return domain.Crew{
		ID:          instance.ID,
		ArchetypeID: arch.ID,
		Symbol:      arch.Symbol,
		Name:        arch.Name,
		ShortName:   arch.ShortName,
		Level:       instance.Level,
		Rarity:      instance.Rarity,
		MaxRarity:   maxRarity,
		Favorite:    instance.Favorite,
		Active:      instance.ActiveID != nil,
		Buyback:     instance.ExpiresIn != nil,
		Skills:      copySkills(instance.Skills),
		Traits:      append([]string(nil), traits...),
	}
}

func copySkills(skills map[string]player.Skill) map[string]player.Skill {
	if skills == nil {
		return nil
	}
	out := make(map[string]player.Skill, len(skills))
	for k, v := range skills {
		out[k] = v
	}
	return out
}
