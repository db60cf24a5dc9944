// Package indexing drives a video from upload through external indexing
// to the ready or failed state.
package indexing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/volleyclip/clipper/internal/config"
	apperrors "github.com/volleyclip/clipper/internal/errors"
	"github.com/volleyclip/clipper/internal/logging"
	"github.com/volleyclip/clipper/internal/model"
	"github.com/volleyclip/clipper/internal/repository/video"
	"github.com/volleyclip/clipper/internal/service/intel"
	"github.com/volleyclip/clipper/internal/service/storage"
)

// registerURLTTL is how long the indexing backend has to fetch the source
const registerURLTTL = time.Hour

// Service is the index orchestrator
type Service struct {
	videos video.Repository
	intel  intel.Client
	store  storage.Store
	logger *slog.Logger

	pollInterval time.Duration
	maxWait      time.Duration // zero disables the bound
	now          func() time.Time
}

// NewService creates an index orchestrator
func NewService(videos video.Repository, intelClient intel.Client, store storage.Store, cfg config.IndexingConfig, logger *slog.Logger) *Service {
	return &Service{
		videos:       videos,
		intel:        intelClient,
		store:        store,
		logger:       logging.WithComponent(logger, "indexing"),
		pollInterval: cfg.PollInterval,
		maxWait:      cfg.MaxWait,
		now:          time.Now,
	}
}

// StartIndexing registers the video with the intelligence service, triggers
// indexing and polls until a terminal state. The terminal status is always
// persisted before returning; the returned error is for the task boundary's
// logging only and is never re-raised to a user-facing caller.
//
// State machine: uploaded -> processing -> {ready, failed}.
func (s *Service) StartIndexing(ctx context.Context, videoKey, videoID string) error {
	logger := logging.WithVideoID(s.logger, videoID)
	started := s.now()

	if err := s.videos.UpdateStatus(ctx, videoID, model.VideoStatusProcessing); err != nil {
		s.markFailed(ctx, videoID, logger)
		return err
	}

	indexID, assetID, err := s.createIndexAndTask(ctx, videoKey, logger)
	if err != nil {
		s.markFailed(ctx, videoID, logger)
		return err
	}

	logger.Info("indexing started", "index_id", indexID, "asset_id", assetID)

	pollCount := 0
	for {
		status, err := s.intel.GetAssetStatus(ctx, indexID, assetID)
		if err != nil {
			s.markFailed(ctx, videoID, logger)
			return err
		}

		pollCount++
		elapsed := s.now().Sub(started)
		logger.Debug("indexing poll", "poll", pollCount, "elapsed", elapsed.String(), "status", status.Status)

		switch status.Status {
		case intel.StatusReady:
			if err := s.videos.MarkReady(ctx, videoID, indexID, assetID); err != nil {
				s.markFailed(ctx, videoID, logger)
				return err
			}
			logger.Info("video ready for queries", "index_id", indexID, "asset_id", assetID, "elapsed", elapsed.String())
			return nil

		case intel.StatusFailed:
			s.markFailed(ctx, videoID, logger)
			return apperrors.New(apperrors.CodeExternal, "indexing service reported failure")
		}

		if s.maxWait > 0 && elapsed >= s.maxWait {
			s.markFailed(ctx, videoID, logger)
			return apperrors.New(apperrors.CodeTimeout, fmt.Sprintf("indexing did not finish within %s", s.maxWait))
		}

		select {
		case <-ctx.Done():
			s.markFailed(ctx, videoID, logger)
			return apperrors.Wrap(ctx.Err(), apperrors.CodeTimeout, "indexing cancelled")
		case <-time.After(s.pollInterval):
		}
	}
}

// createIndexAndTask creates the index, registers the source by presigned
// URL and triggers the indexing task
func (s *Service) createIndexAndTask(ctx context.Context, videoKey string, logger *slog.Logger) (indexID, assetID string, err error) {
	// Timestamp suffix keeps repeated attempts for the same file from
	// colliding on index name.
	indexName := fmt.Sprintf("clip_%s_%d", sanitizeKey(videoKey), s.now().Unix())

	sourceURL, err := s.store.PresignedGet(ctx, videoKey, registerURLTTL)
	if err != nil {
		return "", "", err
	}

	indexID, err = s.intel.CreateIndex(ctx, indexName, intel.DefaultModels())
	if err != nil {
		return "", "", err
	}
	logger.Info("index created", "index_name", indexName, "index_id", indexID)

	assetID, err = s.intel.RegisterAsset(ctx, indexID, sourceURL)
	if err != nil {
		return "", "", err
	}

	taskID, err := s.intel.StartIndexingTask(ctx, indexID, assetID)
	if err != nil {
		return "", "", err
	}
	logger.Info("indexing task triggered", "task_id", taskID)

	return indexID, assetID, nil
}

// markFailed persists the terminal failed status, best effort
func (s *Service) markFailed(ctx context.Context, videoID string, logger *slog.Logger) {
	if err := s.videos.UpdateStatus(ctx, videoID, model.VideoStatusFailed); err != nil {
		logger.Error("failed to persist failed status", "error", err)
	}
}

// sanitizeKey makes a storage key usable inside an index name
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, key)
}
