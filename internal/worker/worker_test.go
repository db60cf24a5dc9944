package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleyclip/clipper/internal/config"
	apperrors "github.com/volleyclip/clipper/internal/errors"
)

// mockIndexer mocks Indexer
type mockIndexer struct {
	StartIndexingFunc func(ctx context.Context, videoKey, videoID string) error
}

func (m *mockIndexer) StartIndexing(ctx context.Context, videoKey, videoID string) error {
	if m.StartIndexingFunc != nil {
		return m.StartIndexingFunc(ctx, videoKey, videoID)
	}
	return nil
}

// mockJobRunner mocks JobRunner
type mockJobRunner struct {
	RunJobFunc func(ctx context.Context, jobID string) error
}

func (m *mockJobRunner) RunJob(ctx context.Context, jobID string) error {
	if m.RunJobFunc != nil {
		return m.RunJobFunc(ctx, jobID)
	}
	return nil
}

func newTestPool(indexer Indexer, runner JobRunner, count, queueSize int) *Pool {
	cfg := config.WorkerConfig{Count: count, QueueSize: queueSize}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPool(indexer, runner, cfg, logger)
}

func TestPool_DispatchesTasksToHandlers(t *testing.T) {
	var mu sync.Mutex
	indexed := []string{}
	jobs := []string{}

	indexer := &mockIndexer{
		StartIndexingFunc: func(ctx context.Context, videoKey, videoID string) error {
			mu.Lock()
			defer mu.Unlock()
			indexed = append(indexed, videoKey+"|"+videoID)
			return nil
		},
	}
	runner := &mockJobRunner{
		RunJobFunc: func(ctx context.Context, jobID string) error {
			mu.Lock()
			defer mu.Unlock()
			jobs = append(jobs, jobID)
			return nil
		},
	}

	pool := newTestPool(indexer, runner, 2, 8)
	pool.Start(context.Background())

	require.NoError(t, pool.DispatchIndex(context.Background(), "uploads/a.mp4", "video-1"))
	require.NoError(t, pool.DispatchJob(context.Background(), "job-1"))
	require.NoError(t, pool.DispatchJob(context.Background(), "job-2"))
	pool.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"uploads/a.mp4|video-1"}, indexed)
	assert.ElementsMatch(t, []string{"job-1", "job-2"}, jobs)
}

func TestPool_TaskErrorsDoNotStopWorkers(t *testing.T) {
	var mu sync.Mutex
	ran := 0

	runner := &mockJobRunner{
		RunJobFunc: func(ctx context.Context, jobID string) error {
			mu.Lock()
			defer mu.Unlock()
			ran++
			if jobID == "job-bad" {
				return errors.New("job failed")
			}
			return nil
		},
	}

	pool := newTestPool(&mockIndexer{}, runner, 1, 8)
	pool.Start(context.Background())

	require.NoError(t, pool.DispatchJob(context.Background(), "job-bad"))
	require.NoError(t, pool.DispatchJob(context.Background(), "job-good"))
	pool.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, ran)
}

func TestPool_FullQueueIsReported(t *testing.T) {
	// Workers never started, so the queue fills up.
	pool := newTestPool(&mockIndexer{}, &mockJobRunner{}, 1, 1)

	require.NoError(t, pool.DispatchJob(context.Background(), "job-1"))
	err := pool.DispatchJob(context.Background(), "job-2")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnavailable, apperrors.Code(err))
}

func TestPool_DispatchAfterCloseIsRejected(t *testing.T) {
	pool := newTestPool(&mockIndexer{}, &mockJobRunner{}, 1, 1)
	pool.Start(context.Background())
	pool.Close()

	err := pool.DispatchJob(context.Background(), "job-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnavailable, apperrors.Code(err))
}
