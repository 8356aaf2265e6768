package setup

import (
	"reflect"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/imagecache/queries"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/mediator"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/session/commands"
)

// ImageCache is what the image queries need from a cache
type ImageCache interface {
	queries.ImageResolver
	queries.StatsSource
}

// HandlerRegistry holds the dependencies handlers are created from
type HandlerRegistry struct {
	session commands.SessionLoader
	cache   ImageCache
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(session commands.SessionLoader, cache ImageCache) *HandlerRegistry {
	return &HandlerRegistry{session: session, cache: cache}
}

// RegisterAll registers every session and image cache handler with the mediator
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	if err := r.RegisterSessionHandlers(m); err != nil {
		return err
	}
	return r.RegisterImageHandlers(m)
}

// RegisterSessionHandlers registers:
//   - LoadSessionCommand → LoadSessionHandler
func (r *HandlerRegistry) RegisterSessionHandlers(m mediator.Mediator) error {
	return m.Register(
		reflect.TypeOf(&commands.LoadSessionCommand{}),
		commands.NewLoadSessionHandler(r.session),
	)
}

// RegisterImageHandlers registers:
//   - ResolveImageQuery → ResolveImageHandler
//   - CacheStatsQuery → CacheStatsHandler
func (r *HandlerRegistry) RegisterImageHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&queries.ResolveImageQuery{}),
		queries.NewResolveImageHandler(r.cache),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&queries.CacheStatsQuery{}),
		queries.NewCacheStatsHandler(r.cache),
	)
}
