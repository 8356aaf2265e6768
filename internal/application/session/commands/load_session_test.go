package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/mediator"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/session"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/session/commands"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/test/helpers"
)

func openSession(t *testing.T, api *helpers.MockGameAPI) *session.Session {
	t.Helper()
	store := helpers.NewMockImageStore()
	s, err := session.Open(context.Background(), session.Deps{
		API:         api,
		Fetcher:     helpers.NewMockFetcher(),
		OpenStore:   func() (imagecache.Store, error) { return store, nil },
		Concurrency: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestLoadSessionCommand_ReturnsSummary(t *testing.T) {
	// Arrange
	s := openSession(t, helpers.NewMockGameAPI())
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*commands.LoadSessionCommand](m, commands.NewLoadSessionHandler(s)))

	// Act
	resp, err := m.Send(context.Background(), &commands.LoadSessionCommand{WaitForIcons: true})

	// Assert
	require.NoError(t, err)
	summary := resp.(*commands.LoadSessionResponse).Summary
	assert.Equal(t, "Captain Test", summary.Captain.Name)
	assert.Equal(t, 2, summary.Crew)
	assert.Equal(t, 1, summary.Ships)
	assert.Equal(t, 2, summary.Equipment)
	assert.Equal(t, 1, summary.Items)
	require.NotNil(t, summary.FleetID)
	assert.Equal(t, int64(900), *summary.FleetID)
}

func TestLoadSessionCommand_PropagatesLoadFailure(t *testing.T) {
	api := helpers.NewMockGameAPI()
	api.FailOn(helpers.CallCrewArchetypes, errors.New("HTTP 401"))
	handler := commands.NewLoadSessionHandler(openSession(t, api))

	_, err := handler.Handle(context.Background(), &commands.LoadSessionCommand{})

	assert.ErrorIs(t, err, shared.ErrDataLoadFailed)
}

func TestLoadSessionCommand_WrongRequestType(t *testing.T) {
	handler := commands.NewLoadSessionHandler(openSession(t, helpers.NewMockGameAPI()))

	_, err := handler.Handle(context.Background(), "not a command")

	assert.Error(t, err)
}
