package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the registry over HTTP for Prometheus scraping
type Server struct {
	httpServer *http.Server
}

// NewServer creates a metrics server bound to host:port serving path
func NewServer(host string, port int, path string) *Server {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves in the background. Errors other than a clean shutdown are returned on the channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Setup initializes the registry and the global collectors, returning the
// command collector for use as mediator middleware
func Setup() (*CommandMetricsCollector, error) {
	InitRegistry()

	imageCollector := NewImageCacheMetricsCollector()
	if err := imageCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register image cache metrics: %w", err)
	}
	SetGlobalImageCacheCollector(imageCollector)

	loaderCollector := NewLoaderMetricsCollector()
	if err := loaderCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register loader metrics: %w", err)
	}
	SetGlobalLoaderCollector(loaderCollector)

	commandCollector := NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return commandCollector, nil
}
