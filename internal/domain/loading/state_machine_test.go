package loading_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/loading"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
)

func TestMachine_AdvancesThroughFixedSequence(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m := loading.NewMachine(clock)

	expected := []loading.State{
		loading.StateLoadingArchetypes,
		loading.StateLoadingServerConfig,
		loading.StateLoadingPlatformConfig,
		loading.StateLoadingPlayerData,
		loading.StateDone,
	}
	for _, want := range expected {
		clock.Advance(time.Second)
		got, err := m.Advance()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.True(t, m.IsFinished())
	assert.Equal(t, 4*time.Second, m.Duration())
	assert.Len(t, m.Transitions(), 5)

	_, err := m.Advance()
	assert.Error(t, err)
}

func TestMachine_FailIsAbsorbing(t *testing.T) {
	m := loading.NewMachine(shared.NewMockClock(time.Time{}))
	_, err := m.Advance()
	require.NoError(t, err)

	cause := errors.New("boom")
	require.NoError(t, m.Fail(cause))

	assert.Equal(t, loading.StateFailed, m.State())
	assert.Equal(t, cause, m.LastError())

	_, err = m.Advance()
	assert.Error(t, err)
	assert.Error(t, m.Fail(cause))
}

func TestMachine_CannotFailFromIdle(t *testing.T) {
	m := loading.NewMachine(nil)
	assert.Error(t, m.Fail(errors.New("early")))
	assert.Equal(t, loading.StateIdle, m.State())
}

func TestState_Labels(t *testing.T) {
	assert.Equal(t, "Loading crew information...", loading.StateLoadingArchetypes.Label())
	assert.Equal(t, "Loading player data...", loading.StateLoadingPlayerData.Label())
	assert.Equal(t, "Unknown network error, failed to load!", loading.StateFailed.Label())
	assert.False(t, loading.StateDone.IsLoading())
	assert.True(t, loading.StateLoadingServerConfig.IsLoading())
}
