// Package equipment builds the full item catalog from the item archetypes
package equipment

import (
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/enrichment"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/collection"
	domain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/equipment"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
)

// CollectionName labels equipment enrichment in metrics
const CollectionName = "equipment"

// Builder produces one catalog entry per item archetype
type Builder struct {
	placeholderIcon string
	target          *collection.Collection[domain.Entry]
}

// NewBuilder creates a builder whose entries start with placeholderIcon
func NewBuilder(placeholderIcon string, target *collection.Collection[domain.Entry]) *Builder {
	return &Builder{placeholderIcon: placeholderIcon, target: target}
}

// Build returns an entry for every archetype, owned or not. Recipe stays nil
// for archetypes that have none; Type is copied as sent.
func (b *Builder) Build(items []archetype.Item) []domain.Entry {
	entries := make([]domain.Entry, 0, len(items))
	for _, item := range items {
		entry := domain.Entry{
			ID:        item.ID,
			Symbol:    item.Symbol,
			Name:      item.Name,
			ShortName: item.ShortName,
			Rarity:    item.Rarity,
			Type:      item.Type,
			Sources:   append([]archetype.ItemSource(nil), item.ItemSources...),
			IconFile:  imagecache.ItemFileName(item.Name, archetype.RarityName(item.Rarity)),
			IconURL:   b.placeholderIcon,
		}
		if item.Recipe != nil {
			entry.Recipe = append(make([]archetype.Demand, 0, len(item.Recipe.Demands)), item.Recipe.Demands...)
		}
		entries = append(entries, entry)
	}
	return entries
}

// Jobs returns one icon job per entry
func (b *Builder) Jobs(entries []domain.Entry) []enrichment.Job {
	jobs := make([]enrichment.Job, 0, len(entries))
	for _, entry := range entries {
		id := entry.ID
		jobs = append(jobs, enrichment.Job{
			Collection: CollectionName,
			EntityID:   id,
			FileName:   entry.IconFile,
			Apply: func(url string) bool {
				return b.target.Patch(id, domain.SetIcon(url))
			},
		})
	}
	return jobs
}
