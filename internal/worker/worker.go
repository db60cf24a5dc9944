// Package worker runs indexing and clipping tasks on a bounded in-process
// pool so webhook handlers can acknowledge immediately.
package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/volleyclip/clipper/internal/config"
	apperrors "github.com/volleyclip/clipper/internal/errors"
	"github.com/volleyclip/clipper/internal/logging"
	"github.com/volleyclip/clipper/internal/metrics"
)

// Indexer drives a video through indexing
type Indexer interface {
	StartIndexing(ctx context.Context, videoKey, videoID string) error
}

// JobRunner drives a clip job through its lifecycle
type JobRunner interface {
	RunJob(ctx context.Context, jobID string) error
}

// Dispatcher accepts pipeline work for asynchronous execution. Implemented
// by the in-process Pool and by the AMQP publisher.
type Dispatcher interface {
	// DispatchIndex enqueues indexing of an uploaded video
	DispatchIndex(ctx context.Context, videoKey, videoID string) error

	// DispatchJob enqueues execution of a pending clip job
	DispatchJob(ctx context.Context, jobID string) error
}

type taskKind int

const (
	taskIndex taskKind = iota
	taskJob
)

type task struct {
	kind     taskKind
	videoKey string
	videoID  string
	jobID    string
}

// Pool executes tasks on a fixed number of goroutines fed by a bounded
// queue. Dispatch never blocks; a full queue is reported to the caller.
type Pool struct {
	indexer Indexer
	runner  JobRunner
	logger  *slog.Logger

	tasks chan task
	count int
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewPool creates a worker pool; call Start before dispatching
func NewPool(indexer Indexer, runner JobRunner, cfg config.WorkerConfig, logger *slog.Logger) *Pool {
	count := cfg.Count
	if count < 1 {
		count = 1
	}
	queueSize := cfg.QueueSize
	if queueSize < 1 {
		queueSize = count
	}
	return &Pool{
		indexer: indexer,
		runner:  runner,
		logger:  logging.WithComponent(logger, "worker"),
		tasks:   make(chan task, queueSize),
		count:   count,
	}
}

// Start launches the workers. They exit when ctx is cancelled or the
// pool is closed.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

// Close stops accepting work and waits for queued tasks to finish
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// DispatchIndex enqueues an indexing task
func (p *Pool) DispatchIndex(ctx context.Context, videoKey, videoID string) error {
	return p.dispatch(task{kind: taskIndex, videoKey: videoKey, videoID: videoID})
}

// DispatchJob enqueues a clip job task
func (p *Pool) DispatchJob(ctx context.Context, jobID string) error {
	return p.dispatch(task{kind: taskJob, jobID: jobID})
}

func (p *Pool) dispatch(t task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return apperrors.New(apperrors.CodeUnavailable, "worker pool is shut down")
	}
	select {
	case p.tasks <- t:
		return nil
	default:
		return apperrors.New(apperrors.CodeUnavailable, "task queue is full")
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	logger := p.logger.With("worker", id)
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-p.tasks:
			if !ok {
				return
			}
			p.execute(ctx, t, logger)
		}
	}
}

// execute runs one task. Orchestrators persist their own terminal status;
// the error return exists only so this boundary can log and count it.
func (p *Pool) execute(ctx context.Context, t task, logger *slog.Logger) {
	switch t.kind {
	case taskIndex:
		if err := p.indexer.StartIndexing(ctx, t.videoKey, t.videoID); err != nil {
			metrics.VideosFailed.Inc()
			logging.WithVideoID(logger, t.videoID).Error("indexing task failed", "error", err)
			return
		}
		metrics.VideosIndexed.Inc()

	case taskJob:
		if err := p.runner.RunJob(ctx, t.jobID); err != nil {
			metrics.JobsFailed.Inc()
			logging.WithJobID(logger, t.jobID).Error("clip job task failed", "error", err)
			return
		}
		metrics.JobsCompleted.Inc()
	}
}
