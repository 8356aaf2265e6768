package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/auth"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/logging"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/config"
)

const (
	defaultBaseURL = "https://stt.disruptorbeam.com"
	defaultTimeout = 30 * time.Second

	// maxRetryAfter bounds a server supplied Retry-After
	maxRetryAfter = 30 * time.Second
)

// Endpoint paths relative to the game server base URL
const (
	pathCrewArchetypes = "/archetype/crew"
	pathServerConfig   = "/config"
	pathPlatformConfig = "/config/platform"
	pathPlayer         = "/player"
	pathShipSchematics = "/ship_schematic"
)

// ErrNoAccessToken is returned when neither the context nor the client carry a token
var ErrNoAccessToken = errors.New("no access token available")

// GameClient implements player.GameAPI and player.SchematicSource over HTTP
type GameClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	token       string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewGameClient creates a game API client from configuration
func NewGameClient(cfg *config.APIConfig, clock shared.Clock) *GameClient {
	c := NewGameClientWithConfig(cfg.BaseURL, cfg.Retry.MaxAttempts, cfg.Retry.BackoffBase, clock)
	c.token = cfg.AccessToken
	if cfg.Timeout > 0 {
		c.httpClient.Timeout = cfg.Timeout
	}
	if cfg.RateLimit.Requests > 0 {
		c.rateLimiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.Requests), cfg.RateLimit.Burst)
	}
	if cfg.CircuitBreaker.MaxFailures > 0 {
		c.breaker = NewCircuitBreaker(cfg.CircuitBreaker.MaxFailures, cfg.CircuitBreaker.Timeout, c.clock)
	}
	return c
}

// NewGameClientWithConfig creates a game API client with explicit retry settings
// If clock is nil, uses RealClock for production
func NewGameClientWithConfig(
	baseURL string,
	maxRetries int,
	backoffBase time.Duration,
	clock shared.Clock,
) *GameClient {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GameClient{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(2), 2), // 2 req/sec, burst 2
		breaker:     NewCircuitBreaker(5, time.Minute, clock),
		baseURL:     baseURL,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		clock:       clock,
	}
}

// SetAccessToken sets the fallback token used when the context carries none
func (c *GameClient) SetAccessToken(token string) {
	c.token = token
}

// LoadCrewArchetypes retrieves every crew template
func (c *GameClient) LoadCrewArchetypes(ctx context.Context) ([]archetype.Crew, error) {
	var response struct {
		CrewArchetypes []archetype.Crew `json:"crew_archetypes"`
	}

	if err := c.request(ctx, http.MethodGet, pathCrewArchetypes, &response); err != nil {
		return nil, fmt.Errorf("failed to load crew archetypes: %w", err)
	}

	if response.CrewArchetypes == nil {
		return nil, fmt.Errorf("failed to load crew archetypes: response has no crew_archetypes")
	}
	return response.CrewArchetypes, nil
}

// LoadServerConfig retrieves the game server configuration
func (c *GameClient) LoadServerConfig(ctx context.Context) (*player.ServerConfig, error) {
	var response player.ServerConfig

	if err := c.request(ctx, http.MethodGet, pathServerConfig, &response); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return &response, nil
}

// LoadPlatformConfig retrieves the platform configuration
func (c *GameClient) LoadPlatformConfig(ctx context.Context) (*player.PlatformConfig, error) {
	var response struct {
		Config player.PlatformConfig `json:"config"`
	}

	if err := c.request(ctx, http.MethodGet, pathPlatformConfig, &response); err != nil {
		return nil, fmt.Errorf("failed to load platform config: %w", err)
	}

	return &response.Config, nil
}

// LoadPlayerData retrieves the player record together with the item archetype cache
func (c *GameClient) LoadPlayerData(ctx context.Context) (*player.PlayerData, []archetype.Item, error) {
	var response struct {
		Player             *player.PlayerData `json:"player"`
		ItemArchetypeCache struct {
			Archetypes []archetype.Item `json:"archetypes"`
		} `json:"item_archetype_cache"`
	}

	if err := c.request(ctx, http.MethodGet, pathPlayer, &response); err != nil {
		return nil, nil, fmt.Errorf("failed to load player data: %w", err)
	}

	if response.Player == nil {
		return nil, nil, fmt.Errorf("failed to load player data: response has no player")
	}
	return response.Player, response.ItemArchetypeCache.Archetypes, nil
}

// LoadShipSchematics retrieves every ship schematic
func (c *GameClient) LoadShipSchematics(ctx context.Context) ([]archetype.ShipSchematic, error) {
	var response struct {
		Schematics []archetype.ShipSchematic `json:"schematics"`
	}

	if err := c.request(ctx, http.MethodGet, pathShipSchematics, &response); err != nil {
		return nil, fmt.Errorf("failed to load ship schematics: %w", err)
	}

	return response.Schematics, nil
}

// accessToken prefers the token carried in context over the client's own
func (c *GameClient) accessToken(ctx context.Context) (string, error) {
	if token, err := auth.AccessTokenFromContext(ctx); err == nil {
		return token, nil
	}
	if c.token != "" {
		return c.token, nil
	}
	return "", ErrNoAccessToken
}

// addJitter adds random jitter to a duration to avoid thundering herd
// Returns a duration between 50% and 150% of the original value
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64() // 0.5 to 1.5
	return time.Duration(float64(d) * jitter)
}

// request makes a GET guarded by the circuit breaker
func (c *GameClient) request(ctx context.Context, method, path string, result interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}
	if c.breaker == nil {
		return c.requestWithRetry(ctx, method, path, token, result)
	}
	return c.breaker.Call(func() error {
		return c.requestWithRetry(ctx, method, path, token, result)
	})
}

// requestWithRetry makes an HTTP request with rate limiting and exponential backoff retries
func (c *GameClient) requestWithRetry(ctx context.Context, method, path, token string, result interface{}) error {
	url := c.baseURL + path
	logger := logging.LoggerFromContext(ctx)

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		retry, err := c.do(req, result)
		if err == nil {
			return nil
		}
		if retry == nil {
			return err
		}
		lastErr = retry

		// Last attempt - don't sleep
		if attempt >= c.maxRetries {
			break
		}

		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		backoffDelay := addJitter(c.backoffBase * time.Duration(1<<attempt))
		if retry.retryAfter > 0 {
			backoffDelay = min(retry.retryAfter, maxRetryAfter)
		}

		logger.Log("WARNING", "retrying game api request", map[string]interface{}{
			"path":    path,
			"attempt": attempt + 1,
			"reason":  retry.message,
			"backoff": backoffDelay.String(),
		})
		if err := c.clock.SleepContext(ctx, backoffDelay); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}
	}

	if lastErr != nil {
		return fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return fmt.Errorf("max retries exceeded")
}

// do executes one attempt. A non-nil retryableError means the attempt may be repeated.
func (c *GameClient) do(req *http.Request, result interface{}) (*retryableError, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		retry := &retryableError{message: fmt.Errorf("network error: %w", err).Error()}
		return retry, retry
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		retry := &retryableError{message: "rate limited (429)"}
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			retry.retryAfter = time.Duration(seconds) * time.Second
		}
		return retry, retry
	case resp.StatusCode >= 500:
		retry := &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}
		return retry, retry
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil, nil
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}
