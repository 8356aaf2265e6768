package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/test/helpers"
)

type imageCacheContext struct {
	store   *helpers.MockImageStore
	fetcher *helpers.MockFetcher
	cache   *imagecache.Cache
	results []string
}

func (c *imageCacheContext) reset() {
	c.store = helpers.NewMockImageStore()
	c.fetcher = helpers.NewMockFetcher()
	c.cache = imagecache.NewCache(c.store, c.fetcher, nil)
	c.results = nil
}

func (c *imageCacheContext) theWikiHasAt(fileName, url string) error {
	c.fetcher.AddImage(fileName, url)
	return nil
}

func (c *imageCacheContext) iResolveTimes(fileName string, times int) error {
	for i := 0; i < times; i++ {
		c.results = append(c.results, c.cache.Resolve(context.Background(), fileName, int64(i)).URL)
	}
	return nil
}

func (c *imageCacheContext) everyResolutionShouldReturn(url string) error {
	for i, got := range c.results {
		if got != url {
			return fmt.Errorf("resolution %d returned %q, expected %q", i, got, url)
		}
	}
	return nil
}

func (c *imageCacheContext) theWikiShouldHaveBeenAskedFor(fileName string, times int) error {
	if got := c.fetcher.Calls(fileName); got != times {
		return fmt.Errorf("expected %d wiki lookups for %s, got %d", times, fileName, got)
	}
	return nil
}

func (c *imageCacheContext) theImageCacheShouldHold(fileName string) error {
	if _, ok := c.store.Lookup(fileName); !ok {
		return fmt.Errorf("expected %s to be cached", fileName)
	}
	return nil
}

func (c *imageCacheContext) theImageCacheShouldNotHold(fileName string) error {
	if _, ok := c.store.Lookup(fileName); ok {
		return fmt.Errorf("expected %s not to be cached", fileName)
	}
	return nil
}

// Register steps

func InitializeImageCacheScenario(ctx *godog.ScenarioContext) {
	cacheCtx := &imageCacheContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cacheCtx.reset()
		return ctx, nil
	})

	ctx.Step(`^the wiki has "([^"]*)" at "([^"]*)"$`, cacheCtx.theWikiHasAt)
	ctx.Step(`^I resolve "([^"]*)" (\d+) times?$`, cacheCtx.iResolveTimes)
	ctx.Step(`^every resolution should return "([^"]*)"$`, cacheCtx.everyResolutionShouldReturn)
	ctx.Step(`^the wiki should have been asked for "([^"]*)" (\d+) times?$`, cacheCtx.theWikiShouldHaveBeenAskedFor)
	ctx.Step(`^the image cache should hold "([^"]*)"$`, cacheCtx.theImageCacheShouldHold)
	ctx.Step(`^the image cache should not hold "([^"]*)"$`, cacheCtx.theImageCacheShouldNotHold)
}
