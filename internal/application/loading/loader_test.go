package loading_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gameapi "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/api"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/loading"
	domain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/loading"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/config"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/test/helpers"
)

type statusRecorder struct {
	mu     sync.Mutex
	labels []string
	states []domain.State
}

func (r *statusRecorder) OnStatus(state domain.State, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
	r.labels = append(r.labels, label)
}

func TestLoad_AllStagesSucceed(t *testing.T) {
	// Arrange
	api := helpers.NewMockGameAPI()
	recorder := &statusRecorder{}
	loader := loading.NewLoader(api, loading.WithObserver(recorder))

	// Act
	snap, err := loader.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.True(t, snap.Complete())
	assert.Len(t, snap.CrewArchetypes, 2)
	assert.Len(t, snap.ItemArchetypes, 2)
	assert.Equal(t, []string{
		helpers.CallCrewArchetypes,
		helpers.CallServerConfig,
		helpers.CallPlatformConfig,
		helpers.CallPlayerData,
	}, api.Calls())
	assert.Equal(t, []string{
		"Loading crew information...",
		"Loading server configuration...",
		"Loading platform configuration...",
		"Loading player data...",
		"Finishing up...",
	}, recorder.labels)
	assert.Equal(t, domain.StateDone, loader.State())
}

func TestLoad_ServerConfigFailureStopsPipeline(t *testing.T) {
	// Arrange
	api := helpers.NewMockGameAPI()
	api.FailOn(helpers.CallServerConfig, errors.New("HTTP 500"))
	recorder := &statusRecorder{}
	loader := loading.NewLoader(api, loading.WithObserver(recorder))

	// Act
	snap, err := loader.Load(context.Background())

	// Assert
	require.ErrorIs(t, err, shared.ErrDataLoadFailed)
	assert.False(t, snap.Complete())
	assert.Equal(t, []string{helpers.CallCrewArchetypes, helpers.CallServerConfig}, api.Calls())
	assert.Equal(t, "Unknown network error, failed to load!", recorder.labels[len(recorder.labels)-1])
	assert.Equal(t, domain.StateFailed, loader.State())

	var stageErr *shared.StageError
	require.ErrorAs(t, loader.LastError(), &stageErr)
	assert.Equal(t, "server_config", stageErr.Stage)
}

func TestLoad_FailFastForEveryFailingStage(t *testing.T) {
	calls := []string{
		helpers.CallCrewArchetypes,
		helpers.CallServerConfig,
		helpers.CallPlatformConfig,
		helpers.CallPlayerData,
	}

	for k, failing := range calls {
		t.Run(failing, func(t *testing.T) {
			api := helpers.NewMockGameAPI()
			api.FailOn(failing, nil)
			loader := loading.NewLoader(api)

			_, err := loader.Load(context.Background())

			require.ErrorIs(t, err, shared.ErrDataLoadFailed)
			assert.Equal(t, calls[:k+1], api.Calls(), "stages after %s must not run", failing)
		})
	}
}

func TestLoad_EveryOutcomeSequenceIsFailFast(t *testing.T) {
	// Exhaustive over 2^4 stage outcomes
	for mask := 0; mask < 16; mask++ {
		t.Run(fmt.Sprintf("outcomes_%04b", mask), func(t *testing.T) {
			var invoked []int
			stages := make([]loading.Stage, 4)
			states := []domain.State{
				domain.StateLoadingArchetypes,
				domain.StateLoadingServerConfig,
				domain.StateLoadingPlatformConfig,
				domain.StateLoadingPlayerData,
			}
			for i := range stages {
				i := i
				stages[i] = loading.Stage{
					Name:  fmt.Sprintf("stage_%d", i+1),
					State: states[i],
					Run: func(ctx context.Context, snap player.Snapshot) (player.Snapshot, error) {
						invoked = append(invoked, i)
						if mask&(1<<i) != 0 {
							return snap, errors.New("boom")
						}
						return snap, nil
					},
				}
			}
			loader := loading.NewLoader(nil, loading.WithStages(stages))

			_, err := loader.Load(context.Background())

			firstFailure := -1
			for i := 0; i < 4; i++ {
				if mask&(1<<i) != 0 {
					firstFailure = i
					break
				}
			}
			if firstFailure < 0 {
				assert.NoError(t, err)
				assert.Equal(t, []int{0, 1, 2, 3}, invoked)
				return
			}
			assert.ErrorIs(t, err, shared.ErrDataLoadFailed)
			require.NotEmpty(t, invoked)
			assert.Equal(t, firstFailure, invoked[len(invoked)-1])
		})
	}
}

func TestLoad_StalledStageTimesOut(t *testing.T) {
	api := helpers.NewMockGameAPI()
	api.BlockOn(helpers.CallPlatformConfig)
	loader := loading.NewLoader(api, loading.WithStageTimeout(20*time.Millisecond))

	_, err := loader.Load(context.Background())

	require.ErrorIs(t, err, shared.ErrDataLoadFailed)
	assert.ErrorIs(t, loader.LastError(), context.DeadlineExceeded)
	assert.NotContains(t, api.Calls(), helpers.CallPlayerData)
}

func TestLoad_RateLimitedStageHonoursStageTimeout(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "4")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)
	client := gameapi.NewGameClient(&config.APIConfig{
		BaseURL:     server.URL,
		AccessToken: "token",
		RateLimit:   config.RateLimitConfig{Requests: 1000, Burst: 1000},
		Retry:       config.RetryConfig{MaxAttempts: 3, BackoffBase: 10 * time.Millisecond},
	}, shared.NewRealClock())
	loader := loading.NewLoader(client, loading.WithStageTimeout(200*time.Millisecond))

	// Act
	start := time.Now()
	_, err := loader.Load(context.Background())
	elapsed := time.Since(start)

	// Assert
	require.ErrorIs(t, err, shared.ErrDataLoadFailed)
	assert.ErrorIs(t, loader.LastError(), context.DeadlineExceeded)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestLoad_NilPayloadIsFailure(t *testing.T) {
	api := helpers.NewMockGameAPI()
	api.PlayerData = nil
	loader := loading.NewLoader(api)

	_, err := loader.Load(context.Background())

	assert.ErrorIs(t, err, shared.ErrDataLoadFailed)
}

func TestLoad_TransitionsAreClockStamped(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	loader := loading.NewLoader(helpers.NewMockGameAPI(), loading.WithClock(clock))

	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	transitions := loader.Transitions()
	require.Len(t, transitions, 5)
	assert.Equal(t, domain.StateIdle, transitions[0].From)
	assert.Equal(t, domain.StateDone, transitions[4].To)
	assert.Equal(t, clock.Now(), transitions[4].At)
}

func TestLoader_StateBeforeLoadIsIdle(t *testing.T) {
	loader := loading.NewLoader(helpers.NewMockGameAPI())

	assert.Equal(t, domain.StateIdle, loader.State())
	assert.Nil(t, loader.Transitions())
	assert.NoError(t, loader.LastError())
}
