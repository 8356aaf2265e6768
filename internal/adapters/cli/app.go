package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	apiadapter "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/api"
	logadapter "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/logging"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/metrics"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/wiki"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/auth"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/logging"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/mediator"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/session"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/session/commands"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/setup"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/config"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/database"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/pidfile"
)

// app is one CLI invocation: configuration, logger, session and the mediator
// dispatching to it
type app struct {
	cfg      *config.Config
	logger   *logadapter.ZerologLogger
	session  *session.Session
	mediator mediator.Mediator
	metrics  *metrics.Server
}

// newApp loads configuration and opens a session over the configured stores.
// The returned context carries the logger.
func newApp(ctx context.Context) (*app, context.Context, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logadapter.NewFromConfig(&cfg.Logging)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to create logger: %w", err)
	}
	ctx = logging.WithLogger(ctx, logger)

	a := &app{cfg: cfg, logger: logger}

	commandMetrics, err := metrics.Setup()
	if err != nil {
		_ = logger.Close()
		return nil, ctx, err
	}
	if cfg.Metrics.Enabled {
		a.metrics = metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		errCh := a.metrics.Start()
		go func() {
			if err := <-errCh; err != nil {
				logger.Log("ERROR", "metrics server stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	client := apiadapter.NewGameClient(&cfg.API, nil)
	s, err := session.Open(ctx, session.Deps{
		API:     client,
		Fetcher: wiki.NewClient(&cfg.Wiki),
		OpenStore: func() (imagecache.Store, error) {
			return database.OpenImageStore(&cfg.Cache)
		},
		Lock:            pidfile.New(cfg.Session.PIDFile),
		StageTimeout:    cfg.API.StageTimeout,
		Concurrency:     cfg.Cache.Concurrency,
		PlaceholderIcon: cfg.Cache.PlaceholderIcon,
	})
	if err != nil {
		a.shutdownMetrics()
		_ = logger.Close()
		return nil, ctx, err
	}
	a.session = s

	tokens, err := newTokenChain(cfg)
	if err != nil {
		_ = a.close(ctx)
		return nil, ctx, err
	}

	m := mediator.NewMediator()
	m.RegisterMiddleware(logging.RequestLoggingMiddleware())
	m.RegisterMiddleware(metrics.PrometheusMiddleware(commandMetrics))
	m.RegisterMiddleware(tokenMiddleware(tokens))
	if err := setup.NewHandlerRegistry(s, s.Cache()).RegisterAll(m); err != nil {
		_ = a.close(ctx)
		return nil, ctx, fmt.Errorf("failed to register handlers: %w", err)
	}
	a.mediator = m

	return a, ctx, nil
}

// tokenMiddleware injects the access token for session loads only; image and
// cache queries never reach the game server
func tokenMiddleware(source auth.TokenSource) mediator.Middleware {
	inject := auth.AccessTokenMiddleware(source)
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if _, ok := request.(*commands.LoadSessionCommand); ok {
			return inject(ctx, request, next)
		}
		return next(ctx, request)
	}
}

func (a *app) shutdownMetrics() {
	if a.metrics == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = a.metrics.Shutdown(ctx)
}

func (a *app) close(ctx context.Context) error {
	var errs []error
	if a.session != nil {
		errs = append(errs, a.session.Close(ctx))
	}
	a.shutdownMetrics()
	errs = append(errs, a.logger.Close())
	return errors.Join(errs...)
}

// tokenChain resolves the access token from the --token flag, then the
// configuration, then the cached login
type tokenChain struct {
	flag   string
	config string
	cached string
}

func newTokenChain(cfg *config.Config) (*tokenChain, error) {
	handler, err := config.NewUserConfigHandler(cfg.Session.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create user config handler: %w", err)
	}
	cached, err := handler.CachedToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read cached login: %v\n", err)
	}
	return &tokenChain{flag: accessToken, config: cfg.API.AccessToken, cached: cached}, nil
}

// AccessToken implements auth.TokenSource
func (t *tokenChain) AccessToken() (string, error) {
	for _, token := range []string{t.flag, t.config, t.cached} {
		if token != "" {
			return token, nil
		}
	}
	return "", fmt.Errorf("not logged in: run 'sttc login --token <access-token>' or pass --token")
}
