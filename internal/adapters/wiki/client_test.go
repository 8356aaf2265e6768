package wiki_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/wiki"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/config"
)

func newClient(t *testing.T, handler http.HandlerFunc) *wiki.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return wiki.NewClient(&config.WikiConfig{
		BaseURL:   server.URL + "/w/api.php",
		Timeout:   5 * time.Second,
		RateLimit: config.RateLimitConfig{Requests: 100, Burst: 100},
	})
}

func TestFetchImageURL_ExtractsFromDynamicPageID(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/w/api.php", r.URL.Path)
		assert.Equal(t, "query", r.URL.Query().Get("action"))
		assert.Equal(t, "File:Spock_Head.png", r.URL.Query().Get("titles"))
		assert.Equal(t, "imageinfo", r.URL.Query().Get("prop"))
		assert.Equal(t, "url", r.URL.Query().Get("iiprop"))
		_, _ = w.Write([]byte(`{"batchcomplete":"","query":{"pages":{"4711":{"pageid":4711,"title":"File:Spock Head.png",
			"imageinfo":[{"url":"https://stt.wiki/w/images/a/ab/Spock_Head.png"}]}}}}`))
	})

	url, err := client.FetchImageURL(context.Background(), "Spock_Head.png")

	require.NoError(t, err)
	assert.Equal(t, "https://stt.wiki/w/images/a/ab/Spock_Head.png", url)
}

func TestFetchImageURL_MissingPageIsNotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query":{"pages":{"-1":{"ns":6,"title":"File:Nobody.png","missing":""}}}}`))
	})

	_, err := client.FetchImageURL(context.Background(), "Nobody.png")

	assert.ErrorIs(t, err, imagecache.ErrImageNotFound)
}

func TestFetchImageURL_NoQueryIsNotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"batchcomplete":""}`))
	})

	_, err := client.FetchImageURL(context.Background(), "Anything.png")

	assert.ErrorIs(t, err, imagecache.ErrImageNotFound)
}

func TestFetchImageURL_ServerError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchImageURL(context.Background(), "Spock_Head.png")

	require.Error(t, err)
	assert.NotErrorIs(t, err, imagecache.ErrImageNotFound)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchImageURL_InvalidJSON(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := client.FetchImageURL(context.Background(), "Spock_Head.png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}
