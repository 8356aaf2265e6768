// Package wiki resolves wiki file names to image URLs through the MediaWiki api.php endpoint.
package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/config"
)

const (
	defaultEndpoint = "https://stt.wiki/w/api.php"
	defaultTimeout  = 15 * time.Second
)

// Client implements imagecache.Fetcher
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	endpoint    string
}

// NewClient creates a wiki client from configuration
func NewClient(cfg *config.WikiConfig) *Client {
	c := NewClientWithEndpoint(cfg.BaseURL)
	if cfg.Timeout > 0 {
		c.httpClient.Timeout = cfg.Timeout
	}
	if cfg.RateLimit.Requests > 0 {
		c.rateLimiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.Requests), cfg.RateLimit.Burst)
	}
	return c
}

// NewClientWithEndpoint creates a wiki client for the given api.php URL
func NewClientWithEndpoint(endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: rate.NewLimiter(rate.Limit(10), 10),
		endpoint:    endpoint,
	}
}

// FetchImageURL looks up File:<fileName> and returns its direct image URL.
// A missing page or a page without image info yields imagecache.ErrImageNotFound.
func (c *Client) FetchImageURL(ctx context.Context, fileName string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	query := url.Values{}
	query.Set("action", "query")
	query.Set("titles", "File:"+fileName)
	query.Set("prop", "imageinfo")
	query.Set("iiprop", "url")
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wiki request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read wiki response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wiki error (status %d)", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("wiki returned invalid JSON")
	}

	return imageURL(body)
}

// imageURL extracts query.pages.<any id>.imageinfo.0.url. Page ids are
// dynamic keys, so the first page carrying an image wins.
func imageURL(body []byte) (string, error) {
	var found string
	gjson.GetBytes(body, "query.pages").ForEach(func(_, page gjson.Result) bool {
		if u := page.Get("imageinfo.0.url").String(); u != "" {
			found = u
			return false
		}
		return true
	})
	if found == "" {
		return "", imagecache.ErrImageNotFound
	}
	return found, nil
}
