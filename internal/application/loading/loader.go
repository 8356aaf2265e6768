// Package loading drives the ordered remote data load.
package loading

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/metrics"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/logging"
	domain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/loading"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
)

// DefaultStageTimeout bounds a stage when no timeout is configured
const DefaultStageTimeout = 60 * time.Second

// Stage is one step of the load. Run receives the snapshot built so far and
// returns a new one with its part filled in.
type Stage struct {
	Name  string
	State domain.State
	Run   func(ctx context.Context, snap player.Snapshot) (player.Snapshot, error)
}

// StatusObserver receives every state change with its display label
type StatusObserver interface {
	OnStatus(state domain.State, label string)
}

// StatusFunc adapts a function to StatusObserver
type StatusFunc func(state domain.State, label string)

// OnStatus implements StatusObserver
func (f StatusFunc) OnStatus(state domain.State, label string) {
	f(state, label)
}

// Loader runs the stages strictly in order and stops at the first failure
type Loader struct {
	stages       []Stage
	clock        shared.Clock
	stageTimeout time.Duration
	observer     StatusObserver

	mu      sync.Mutex
	machine *domain.Machine
}

// Option configures a Loader
type Option func(*Loader)

// WithClock sets the clock used for transition timestamps and durations
func WithClock(clock shared.Clock) Option {
	return func(l *Loader) { l.clock = clock }
}

// WithStageTimeout bounds each stage
func WithStageTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.stageTimeout = d
		}
	}
}

// WithObserver registers the status observer
func WithObserver(observer StatusObserver) Option {
	return func(l *Loader) { l.observer = observer }
}

// WithStages replaces the default game API stages
func WithStages(stages []Stage) Option {
	return func(l *Loader) { l.stages = stages }
}

// NewLoader creates a loader running the four game API stages
func NewLoader(api player.GameAPI, opts ...Option) *Loader {
	l := &Loader{
		stages:       GameStages(api),
		clock:        shared.NewRealClock(),
		stageTimeout: DefaultStageTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// GameStages returns crew archetypes, server config, platform config and
// player data, in that order
func GameStages(api player.GameAPI) []Stage {
	return []Stage{
		{
			Name:  "crew_archetypes",
			State: domain.StateLoadingArchetypes,
			Run: func(ctx context.Context, snap player.Snapshot) (player.Snapshot, error) {
				crew, err := api.LoadCrewArchetypes(ctx)
				if err != nil {
					return snap, err
				}
				if crew == nil {
					return snap, errors.New("empty crew archetype payload")
				}
				snap.CrewArchetypes = crew
				return snap, nil
			},
		},
		{
			Name:  "server_config",
			State: domain.StateLoadingServerConfig,
			Run: func(ctx context.Context, snap player.Snapshot) (player.Snapshot, error) {
				cfg, err := api.LoadServerConfig(ctx)
				if err != nil {
					return snap, err
				}
				if cfg == nil {
					return snap, errors.New("empty server config payload")
				}
				snap.ServerConfig = cfg
				return snap, nil
			},
		},
		{
			Name:  "platform_config",
			State: domain.StateLoadingPlatformConfig,
			Run: func(ctx context.Context, snap player.Snapshot) (player.Snapshot, error) {
				cfg, err := api.LoadPlatformConfig(ctx)
				if err != nil {
					return snap, err
				}
				if cfg == nil {
					return snap, errors.New("empty platform config payload")
				}
				snap.PlatformConfig = cfg
				return snap, nil
			},
		},
		{
			Name:  "player_data",
			State: domain.StateLoadingPlayerData,
			Run: func(ctx context.Context, snap player.Snapshot) (player.Snapshot, error) {
				data, items, err := api.LoadPlayerData(ctx)
				if err != nil {
					return snap, err
				}
				if data == nil {
					return snap, errors.New("empty player payload")
				}
				snap.Player = data
				snap.ItemArchetypes = items
				return snap, nil
			},
		},
	}
}

// Load runs every stage. Any stage failure ends the load with
// shared.ErrDataLoadFailed; the failing stage and its cause are only logged.
func (l *Loader) Load(ctx context.Context) (player.Snapshot, error) {
	logger := logging.LoggerFromContext(ctx)
	machine := domain.NewMachine(l.clock)

	l.mu.Lock()
	l.machine = machine
	l.mu.Unlock()

	snap := player.Snapshot{}
	for _, stage := range l.stages {
		state, err := l.advance(machine)
		if err != nil {
			return player.Snapshot{}, fmt.Errorf("loader state: %w", err)
		}
		if state != stage.State {
			return player.Snapshot{}, fmt.Errorf("stage %s out of order: machine is in %s", stage.Name, state)
		}
		l.notify(state)

		started := l.clock.Now()
		next, err := l.runStage(ctx, stage, snap)
		elapsed := l.clock.Now().Sub(started).Seconds()

		if err != nil {
			metrics.RecordStage(stage.Name, false, elapsed)
			stageErr := shared.NewStageError(stage.Name, err)
			l.fail(machine, stageErr)
			l.notify(domain.StateFailed)
			metrics.RecordLoad(false, l.duration(machine).Seconds())
			logger.Log("ERROR", "data load failed", map[string]interface{}{
				"stage": stage.Name,
				"error": err.Error(),
			})
			return player.Snapshot{}, shared.ErrDataLoadFailed
		}

		metrics.RecordStage(stage.Name, true, elapsed)
		logger.Log("DEBUG", "stage complete", map[string]interface{}{
			"stage":       stage.Name,
			"duration_ms": int64(elapsed * 1000),
		})
		snap = next
	}

	if _, err := l.advance(machine); err != nil {
		return player.Snapshot{}, fmt.Errorf("loader state: %w", err)
	}
	l.notify(domain.StateDone)
	total := l.duration(machine)
	metrics.RecordLoad(true, total.Seconds())
	logger.Log("INFO", "data load complete", map[string]interface{}{
		"duration_ms": total.Milliseconds(),
	})
	return snap, nil
}

// machine access is serialized so State can be read while a load runs

func (l *Loader) advance(m *domain.Machine) (domain.State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return m.Advance()
}

func (l *Loader) fail(m *domain.Machine, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = m.Fail(err)
}

func (l *Loader) duration(m *domain.Machine) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return m.Duration()
}

func (l *Loader) runStage(ctx context.Context, stage Stage, snap player.Snapshot) (player.Snapshot, error) {
	stageCtx, cancel := context.WithTimeout(ctx, l.stageTimeout)
	defer cancel()

	next, err := stage.Run(stageCtx, snap)
	if err == nil && stageCtx.Err() != nil {
		err = stageCtx.Err()
	}
	return next, err
}

func (l *Loader) notify(state domain.State) {
	if l.observer != nil {
		l.observer.OnStatus(state, state.Label())
	}
}

// State returns the state of the most recent load, Idle before the first
func (l *Loader) State() domain.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.machine == nil {
		return domain.StateIdle
	}
	return l.machine.State()
}

// Transitions returns the history of the most recent load
func (l *Loader) Transitions() []domain.Transition {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.machine == nil {
		return nil
	}
	return l.machine.Transitions()
}

// LastError returns the stage error of the most recent failed load
func (l *Loader) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.machine == nil {
		return nil
	}
	return l.machine.LastError()
}
