// Package enrichment runs deferred icon resolutions and applies their results
// back onto published records.
package enrichment

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/metrics"
	domain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
)

// Job resolves FileName and hands the URL to Apply. Apply patches the owning
// record by EntityID and reports whether anything changed; it must be a no-op
// when the record is gone.
type Job struct {
	Collection string
	EntityID   int64
	FileName   string
	Apply      func(url string) bool
}

// Resolver is the image cache as seen by the runner
type Resolver interface {
	Resolve(ctx context.Context, fileName string, entityID int64) domain.Resolution
}

// Runner executes jobs on an errgroup bounded to limit concurrent resolutions.
// Outstanding jobs are counted under mu so Wait and Submit may race freely.
type Runner struct {
	resolver Resolver
	group    *errgroup.Group

	mu      sync.Mutex
	idle    *sync.Cond
	pending int
	stopped chan struct{}
	closed  bool
}

// NewRunner creates a runner allowing at most limit concurrent resolutions
func NewRunner(resolver Resolver, limit int) *Runner {
	if limit < 1 {
		limit = 1
	}
	r := &Runner{
		resolver: resolver,
		group:    new(errgroup.Group),
		stopped:  make(chan struct{}),
	}
	r.group.SetLimit(limit)
	r.idle = sync.NewCond(&r.mu)
	return r
}

// Submit queues jobs and returns immediately. A job that has not started when
// ctx is done or the runner is cancelled is skipped. Submit after Close is a
// no-op and reports false.
func (r *Runner) Submit(ctx context.Context, jobs []Job) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	if len(jobs) == 0 {
		r.mu.Unlock()
		return true
	}
	r.pending += len(jobs)
	stopped := r.stopped
	r.mu.Unlock()

	// group.Go blocks while limit jobs are in flight, so queueing happens off the caller goroutine
	go func() {
		for i, job := range jobs {
			if done(ctx, stopped) {
				r.finish(len(jobs) - i)
				return
			}
			job := job
			r.group.Go(func() error {
				defer r.finish(1)
				if done(ctx, stopped) {
					return nil
				}
				r.run(ctx, job)
				return nil
			})
		}
	}()
	return true
}

func (r *Runner) run(ctx context.Context, job Job) {
	res := r.resolver.Resolve(ctx, job.FileName, job.EntityID)
	if res.URL == "" {
		return
	}
	applied := job.Apply(res.URL)
	metrics.RecordEnrichment(job.Collection, applied)
}

func (r *Runner) finish(n int) {
	r.mu.Lock()
	r.pending -= n
	if r.pending == 0 {
		r.idle.Broadcast()
	}
	r.mu.Unlock()
}

// Wait blocks until every submitted job has finished or been skipped
func (r *Runner) Wait() {
	r.mu.Lock()
	for r.pending > 0 {
		r.idle.Wait()
	}
	r.mu.Unlock()
}

// Cancel skips pending jobs and waits for in-flight ones. The runner accepts
// new jobs afterwards.
func (r *Runner) Cancel() {
	r.mu.Lock()
	stop(r.stopped)
	r.mu.Unlock()

	r.Wait()

	r.mu.Lock()
	if !r.closed {
		select {
		case <-r.stopped:
			r.stopped = make(chan struct{})
		default:
		}
	}
	r.mu.Unlock()
}

// Close cancels like Cancel and refuses every later Submit
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	stop(r.stopped)
	r.mu.Unlock()

	r.Wait()
}

func stop(stopped chan struct{}) {
	select {
	case <-stopped:
	default:
		close(stopped)
	}
}

func done(ctx context.Context, stopped <-chan struct{}) bool {
	select {
	case <-ctx.Done():
		return true
	case <-stopped:
		return true
	default:
		return false
	}
}
