package loading

import (
	"fmt"
	"time"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
)

// State is a step of the remote data load
type State string

const (
	StateIdle                  State = "IDLE"
	StateLoadingArchetypes     State = "LOADING_ARCHETYPES"
	StateLoadingServerConfig   State = "LOADING_SERVER_CONFIG"
	StateLoadingPlatformConfig State = "LOADING_PLATFORM_CONFIG"
	StateLoadingPlayerData     State = "LOADING_PLAYER_DATA"
	StateDone                  State = "DONE"
	StateFailed                State = "FAILED"
)

// sequence is the only legal forward path
var sequence = []State{
	StateIdle,
	StateLoadingArchetypes,
	StateLoadingServerConfig,
	StateLoadingPlatformConfig,
	StateLoadingPlayerData,
	StateDone,
}

var labels = map[State]string{
	StateIdle:                  "Loading...",
	StateLoadingArchetypes:     "Loading crew information...",
	StateLoadingServerConfig:   "Loading server configuration...",
	StateLoadingPlatformConfig: "Loading platform configuration...",
	StateLoadingPlayerData:     "Loading player data...",
	StateDone:                  "Finishing up...",
	StateFailed:                "Unknown network error, failed to load!",
}

// Label returns the status line shown while in the given state
func (s State) Label() string {
	return labels[s]
}

// IsLoading reports whether the state is one of the four stage states
func (s State) IsLoading() bool {
	switch s {
	case StateLoadingArchetypes, StateLoadingServerConfig, StateLoadingPlatformConfig, StateLoadingPlayerData:
		return true
	}
	return false
}

// Transition is one recorded state change
type Transition struct {
	From State
	To   State
	At   time.Time
}

// Machine tracks the loader through Idle -> four stages -> Done, with Failed
// absorbing from any loading state.
//
// Invariants:
// - Advance only moves one step along the fixed sequence
// - Failed and Done are terminal
// - Timestamps come from the injected clock
type Machine struct {
	state       State
	startedAt   *time.Time
	finishedAt  *time.Time
	lastError   error
	transitions []Transition
	clock       shared.Clock
}

// NewMachine creates a machine in the Idle state
func NewMachine(clock shared.Clock) *Machine {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Machine{state: StateIdle, clock: clock}
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// LastError returns the cause of the failure, if any
func (m *Machine) LastError() error {
	return m.lastError
}

// Transitions returns the recorded history
func (m *Machine) Transitions() []Transition {
	out := make([]Transition, len(m.transitions))
	copy(out, m.transitions)
	return out
}

// Duration returns how long the load has been/was running
func (m *Machine) Duration() time.Duration {
	if m.startedAt == nil {
		return 0
	}
	end := m.clock.Now()
	if m.finishedAt != nil {
		end = *m.finishedAt
	}
	return end.Sub(*m.startedAt)
}

// IsFinished returns true once Done or Failed is reached
func (m *Machine) IsFinished() bool {
	return m.state == StateDone || m.state == StateFailed
}

// Advance moves to the next state in the sequence and returns it
func (m *Machine) Advance() (State, error) {
	if m.IsFinished() {
		return m.state, fmt.Errorf("cannot advance from %s state", m.state)
	}

	next := StateDone
	for i, s := range sequence {
		if s == m.state {
			next = sequence[i+1]
			break
		}
	}

	now := m.clock.Now()
	if m.state == StateIdle {
		m.startedAt = &now
	}
	if next == StateDone {
		m.finishedAt = &now
	}
	m.record(next, now)
	return next, nil
}

// Fail moves to the Failed state. Only valid from a loading state.
func (m *Machine) Fail(err error) error {
	if !m.state.IsLoading() {
		return fmt.Errorf("cannot fail from %s state", m.state)
	}

	now := m.clock.Now()
	m.lastError = err
	m.finishedAt = &now
	m.record(StateFailed, now)
	return nil
}

func (m *Machine) record(to State, at time.Time) {
	m.transitions = append(m.transitions, Transition{From: m.state, To: to, At: at})
	m.state = to
}
