// Package session is the explicit login-to-logout context: it owns the image
// cache store, the loader, the matchers and the enriched state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/enrichment"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/equipment"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/fleet"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/loading"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/logging"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/roster"
	imagedomain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	loadingdomain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/loading"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
)

// ErrClosed is returned by Load after Close
var ErrClosed = errors.New("session is closed")

// Lock guards the cache directory against a second concurrent session
type Lock interface {
	Acquire() error
	Release() error
}

// Deps are the collaborators a session is built from
type Deps struct {
	API        player.GameAPI
	Schematics player.SchematicSource
	Fetcher    imagedomain.Fetcher
	OpenStore  func() (imagedomain.Store, error)
	Lock       Lock
	Clock      shared.Clock

	StageTimeout    time.Duration
	Concurrency     int
	PlaceholderIcon string

	// Observer additionally receives loader status changes
	Observer loading.StatusObserver
}

// Session is created at login and destroyed at logout
type Session struct {
	id     uuid.UUID
	deps   Deps
	store  imagedomain.Store
	cache  *imagecache.Cache
	loader *loading.Loader
	runner *enrichment.Runner
	state  *State

	crewMatcher  *roster.Matcher
	shipMatcher  *fleet.Matcher
	equipBuilder *equipment.Builder

	mu         sync.Mutex
	closed     bool
	cancelLoad context.CancelFunc
}

// Open acquires the cache lock, opens the store and wires the pipeline
func Open(ctx context.Context, deps Deps) (*Session, error) {
	if deps.API == nil {
		return nil, fmt.Errorf("game api is required")
	}
	if deps.Fetcher == nil || deps.OpenStore == nil {
		return nil, fmt.Errorf("image fetcher and store are required")
	}
	if deps.Clock == nil {
		deps.Clock = shared.NewRealClock()
	}
	if deps.Schematics == nil {
		if source, ok := deps.API.(player.SchematicSource); ok {
			deps.Schematics = source
		}
	}

	if deps.Lock != nil {
		if err := deps.Lock.Acquire(); err != nil {
			return nil, fmt.Errorf("failed to lock cache directory: %w", err)
		}
	}

	store, err := deps.OpenStore()
	if err != nil {
		if deps.Lock != nil {
			_ = deps.Lock.Release()
		}
		return nil, fmt.Errorf("failed to open image cache: %w", err)
	}

	s := &Session{
		id:    uuid.New(),
		deps:  deps,
		store: store,
		state: NewState(),
	}
	s.cache = imagecache.NewCache(store, deps.Fetcher, deps.Clock)
	s.runner = enrichment.NewRunner(s.cache, deps.Concurrency)
	s.loader = loading.NewLoader(deps.API,
		loading.WithClock(deps.Clock),
		loading.WithStageTimeout(deps.StageTimeout),
		loading.WithObserver(loading.StatusFunc(s.onStatus)),
	)
	s.crewMatcher = roster.NewMatcher(s.state.Crew)
	if deps.Schematics != nil {
		s.shipMatcher = fleet.NewMatcher(deps.Schematics, s.state.Ships)
	}
	s.equipBuilder = equipment.NewBuilder(deps.PlaceholderIcon, s.state.Equipment)

	logging.LoggerFromContext(ctx).Log("INFO", "session opened", map[string]interface{}{
		"session_id": s.id.String(),
	})
	return s, nil
}

// ID returns the session id
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the session state container
func (s *Session) State() *State {
	return s.state
}

// Cache returns the session's image cache
func (s *Session) Cache() *imagecache.Cache {
	return s.cache
}

// LoaderState returns the loader state of the most recent load
func (s *Session) LoaderState() loadingdomain.State {
	return s.loader.State()
}

// Load runs the remote load, then the matchers. Collections are published
// before their icon jobs are queued; icons keep arriving after Load returns.
// A failed load resets the state and returns shared.ErrDataLoadFailed. Close
// aborts a running Load, which then returns ErrClosed.
func (s *Session) Load(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.cancelLoad = cancel
	s.mu.Unlock()

	logger := logging.LoggerFromContext(ctx)

	// A reload supersedes the previous backfill
	s.runner.Cancel()

	snap, err := s.loader.Load(ctx)
	if s.isClosed() {
		return ErrClosed
	}
	if err != nil {
		s.state.reset()
		return err
	}

	s.state.populate(snap)
	s.enrichCaptain(ctx, snap)

	// Each matcher writes only its own collection
	background := context.WithoutCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries := s.equipBuilder.Build(snap.ItemArchetypes)
		s.state.Equipment.Publish(entries)
		s.submit(background, s.equipBuilder.Jobs(entries))
		return nil
	})
	g.Go(func() error {
		crew, jobs := s.crewMatcher.Match(gctx, snap)
		s.state.Crew.Publish(crew)
		s.submit(background, jobs)
		return nil
	})
	if s.shipMatcher != nil {
		g.Go(func() error {
			ships, jobs, err := s.shipMatcher.Load(gctx, snap)
			if err != nil {
				if s.isClosed() {
					return nil
				}
				// Ships are optional; the roster and catalog stay usable
				logger.Log("WARNING", "ship list unavailable", map[string]interface{}{
					"error": err.Error(),
				})
				return nil
			}
			s.state.Ships.Publish(ships)
			s.submit(background, jobs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if s.isClosed() {
		return ErrClosed
	}

	logger.Log("INFO", "session loaded", map[string]interface{}{
		"session_id": s.id.String(),
		"crew":       s.state.Crew.Len(),
		"ships":      s.state.Ships.Len(),
		"equipment":  s.state.Equipment.Len(),
	})
	return nil
}

// submit queues jobs unless the session has been closed. The runner refuses
// jobs once Close has run, so nothing reaches the store after it is closed.
func (s *Session) submit(ctx context.Context, jobs []enrichment.Job) {
	if s.isClosed() {
		return
	}
	s.runner.Submit(ctx, jobs)
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) enrichCaptain(ctx context.Context, snap player.Snapshot) {
	avatar := snap.Player.Character.CrewAvatar
	if avatar == nil || avatar.Name == "" {
		return
	}
	s.submit(context.WithoutCancel(ctx), []enrichment.Job{
		{
			Collection: "captain",
			FileName:   imagedomain.HeadFileName(avatar.Name),
			Apply:      s.state.setAvatar,
		},
		{
			Collection: "captain",
			FileName:   imagedomain.BodyFileName(avatar.Name),
			Apply:      s.state.setAvatarBody,
		},
	})
}

// WaitForEnrichment blocks until every queued icon job has finished
func (s *Session) WaitForEnrichment() {
	s.runner.Wait()
}

func (s *Session) onStatus(state loadingdomain.State, label string) {
	s.state.setStatus(label)
	if s.deps.Observer != nil {
		s.deps.Observer.OnStatus(state, label)
	}
}

// Close aborts a running Load, stops the backfill and waits for it, then
// closes the store and releases the lock. Calling Close more than once is safe.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	cancelLoad := s.cancelLoad
	s.mu.Unlock()

	if cancelLoad != nil {
		cancelLoad()
	}
	s.runner.Close()

	var errs []error
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close image cache: %w", err))
	}
	if s.deps.Lock != nil {
		if err := s.deps.Lock.Release(); err != nil {
			errs = append(errs, err)
		}
	}

	logging.LoggerFromContext(ctx).Log("INFO", "session closed", map[string]interface{}{
		"session_id": s.id.String(),
	})
	return errors.Join(errs...)
}
