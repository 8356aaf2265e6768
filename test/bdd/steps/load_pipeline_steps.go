package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/session"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/player"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/test/helpers"
)

type loadPipelineContext struct {
	api     *helpers.MockGameAPI
	store   *helpers.MockImageStore
	fetcher *helpers.MockFetcher
	session *session.Session
	err     error
}

func (c *loadPipelineContext) reset() {
	c.api = helpers.NewMockGameAPI()
	c.store = helpers.NewMockImageStore()
	c.fetcher = helpers.NewMockFetcher()
	c.session = nil
	c.err = nil
}

func (c *loadPipelineContext) close() {
	if c.session != nil {
		_ = c.session.Close(context.Background())
	}
}

func (c *loadPipelineContext) theGameServerServesTheDefaultPlayer() error {
	return nil
}

func (c *loadPipelineContext) theGameServerFailsOn(call string) error {
	c.api.FailOn(call, errors.New("server reported failure"))
	return nil
}

func (c *loadPipelineContext) thePlayerOwnsCrew(table *godog.Table) error {
	var archetypes []archetype.Crew
	var owned []player.CrewInstance
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		id, err := strconv.ParseInt(row.Cells[0].Value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid crew id %q: %w", row.Cells[0].Value, err)
		}
		archetypes = append(archetypes, archetype.Crew{ID: 1000 + id, Name: row.Cells[1].Value})
		owned = append(owned, player.CrewInstance{ID: id, ArchetypeID: 1000 + id})
	}
	c.api.CrewArchetypes = archetypes
	c.api.PlayerData.Character.Crew = owned
	c.api.PlayerData.Character.CrewAvatar = nil
	return nil
}

func (c *loadPipelineContext) theImageCacheHolds(fileName, url string) error {
	c.store.Seed(fileName, url)
	return nil
}

func (c *loadPipelineContext) theWikiFailsFor(fileName string) error {
	c.fetcher.FailWith(fileName, errors.New("wiki unavailable"))
	return nil
}

func (c *loadPipelineContext) iLoadTheSession() error {
	s, err := session.Open(context.Background(), session.Deps{
		API:         c.api,
		Fetcher:     c.fetcher,
		OpenStore:   func() (imagecache.Store, error) { return c.store, nil },
		Concurrency: 4,
	})
	if err != nil {
		return err
	}
	c.session = s
	c.err = s.Load(context.Background())
	return nil
}

func (c *loadPipelineContext) enrichmentFinishes() error {
	c.session.WaitForEnrichment()
	return nil
}

func (c *loadPipelineContext) theLoadShouldSucceed() error {
	if c.err != nil {
		return fmt.Errorf("expected load to succeed, got %v", c.err)
	}
	return nil
}

func (c *loadPipelineContext) theLoadShouldFailWith(message string) error {
	if c.err == nil {
		return fmt.Errorf("expected load to fail")
	}
	if c.err.Error() != message {
		return fmt.Errorf("expected error %q, got %q", message, c.err.Error())
	}
	return nil
}

func (c *loadPipelineContext) theStagesCalledShouldBe(expected string) error {
	var stages []string
	for _, call := range c.api.Calls() {
		if call != helpers.CallShipSchematics {
			stages = append(stages, call)
		}
	}
	if got := strings.Join(stages, ","); got != expected {
		return fmt.Errorf("expected stages %q, got %q", expected, got)
	}
	return nil
}

func (c *loadPipelineContext) theStatusShouldBe(expected string) error {
	if got := c.session.State().Status(); got != expected {
		return fmt.Errorf("expected status %q, got %q", expected, got)
	}
	return nil
}

func (c *loadPipelineContext) noShipSchematicsShouldHaveBeenRequested() error {
	for _, call := range c.api.Calls() {
		if call == helpers.CallShipSchematics {
			return fmt.Errorf("ship schematics were requested after a failed load")
		}
	}
	return nil
}

func (c *loadPipelineContext) theRosterShouldBeEmpty() error {
	if n := c.session.State().Crew.Len(); n != 0 {
		return fmt.Errorf("expected empty roster, got %d crew", n)
	}
	return nil
}

func (c *loadPipelineContext) crewShouldHaveIcon(id int, url string) error {
	crew, ok := c.session.State().Crew.Get(int64(id))
	if !ok {
		return fmt.Errorf("crew %d not found", id)
	}
	if crew.IconURL != url {
		return fmt.Errorf("expected crew %d icon %q, got %q", id, url, crew.IconURL)
	}
	return nil
}

func (c *loadPipelineContext) crewShouldHaveNoIcon(id int) error {
	return c.crewShouldHaveIcon(id, "")
}

// Register steps

func InitializeLoadPipelineScenario(ctx *godog.ScenarioContext) {
	pipelineCtx := &loadPipelineContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pipelineCtx.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		pipelineCtx.close()
		return ctx, nil
	})

	ctx.Step(`^the game server serves the default player$`, pipelineCtx.theGameServerServesTheDefaultPlayer)
	ctx.Step(`^the game server fails on "([^"]*)"$`, pipelineCtx.theGameServerFailsOn)
	ctx.Step(`^the player owns crew:$`, pipelineCtx.thePlayerOwnsCrew)
	ctx.Step(`^the image cache holds "([^"]*)" as "([^"]*)"$`, pipelineCtx.theImageCacheHolds)
	ctx.Step(`^the wiki fails for "([^"]*)"$`, pipelineCtx.theWikiFailsFor)
	ctx.Step(`^I load the session$`, pipelineCtx.iLoadTheSession)
	ctx.Step(`^enrichment finishes$`, pipelineCtx.enrichmentFinishes)
	ctx.Step(`^the load should succeed$`, pipelineCtx.theLoadShouldSucceed)
	ctx.Step(`^the load should fail with "([^"]*)"$`, pipelineCtx.theLoadShouldFailWith)
	ctx.Step(`^the stages called should be "([^"]*)"$`, pipelineCtx.theStagesCalledShouldBe)
	ctx.Step(`^the status should be "([^"]*)"$`, pipelineCtx.theStatusShouldBe)
	ctx.Step(`^no ship schematics should have been requested$`, pipelineCtx.noShipSchematicsShouldHaveBeenRequested)
	ctx.Step(`^the roster should be empty$`, pipelineCtx.theRosterShouldBeEmpty)
	ctx.Step(`^crew (\d+) should have icon "([^"]*)"$`, pipelineCtx.crewShouldHaveIcon)
	ctx.Step(`^crew (\d+) should have no icon$`, pipelineCtx.crewShouldHaveNoIcon)
}
