package commands

import (
	"context"
	"fmt"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/mediator"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/session"
)

// SessionLoader is the session as seen by the load command
type SessionLoader interface {
	Load(ctx context.Context) error
	State() *session.State
	WaitForEnrichment()
}

// LoadSessionCommand runs the full data load for the current session
type LoadSessionCommand struct {
	// WaitForIcons blocks until icon enrichment has finished
	WaitForIcons bool
}

// Summary describes a loaded session
type Summary struct {
	Captain   session.Captain
	Status    string
	Crew      int
	Ships     int
	Equipment int
	Items     int
	FleetID   *int64
}

// LoadSessionResponse represents the result of loading the session
type LoadSessionResponse struct {
	Summary Summary
}

// LoadSessionHandler handles the LoadSession command
type LoadSessionHandler struct {
	session SessionLoader
}

// NewLoadSessionHandler creates a new LoadSessionHandler
func NewLoadSessionHandler(s SessionLoader) *LoadSessionHandler {
	return &LoadSessionHandler{session: s}
}

// Handle executes the LoadSession command
func (h *LoadSessionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*LoadSessionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LoadSessionCommand")
	}

	if err := h.session.Load(ctx); err != nil {
		return nil, err
	}
	if cmd.WaitForIcons {
		h.session.WaitForEnrichment()
	}

	state := h.session.State()
	summary := Summary{
		Captain:   state.Captain(),
		Status:    state.Status(),
		Crew:      state.Crew.Len(),
		Ships:     state.Ships.Len(),
		Equipment: state.Equipment.Len(),
		Items:     len(state.Items()),
	}
	if id, ok := state.FleetID(); ok {
		summary.FleetID = &id
	}

	return &LoadSessionResponse{Summary: summary}, nil
}
