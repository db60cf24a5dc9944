package clipping

import (
	"context"
	"log/slog"

	apperrors "github.com/volleyclip/clipper/internal/errors"
	"github.com/volleyclip/clipper/internal/logging"
	"github.com/volleyclip/clipper/internal/model"
	cliprepo "github.com/volleyclip/clipper/internal/repository/clip"
	jobrepo "github.com/volleyclip/clipper/internal/repository/job"
	"github.com/volleyclip/clipper/internal/service/intel"
)

// Service orchestrates a clipping job from query to stored clips
type Service struct {
	jobs      jobrepo.Repository
	clips     cliprepo.Repository
	intel     intel.Client
	extractor SegmentExtractor
	logger    *slog.Logger
}

// NewService creates a clipping orchestrator
func NewService(jobs jobrepo.Repository, clips cliprepo.Repository, intelClient intel.Client, extractor SegmentExtractor, logger *slog.Logger) *Service {
	return &Service{
		jobs:      jobs,
		clips:     clips,
		intel:     intelClient,
		extractor: extractor,
		logger:    logging.WithComponent(logger, "clipping"),
	}
}

// RunJob drives one job through its lifecycle: query the indexed video,
// extract a clip per matched segment, persist the results. A job whose
// query matches nothing, or whose segments all fail extraction, still
// completes with zero clips; only pipeline errors mark it failed.
func (s *Service) RunJob(ctx context.Context, jobID string) error {
	logger := logging.WithJobID(s.logger, jobID)

	job, err := s.jobs.GetWithVideo(ctx, jobID)
	if err != nil {
		s.markFailed(ctx, jobID, logger, err)
		return err
	}

	if job.Video == nil || !job.Video.Indexed() {
		err := apperrors.New(apperrors.CodePrecondition, "video is not indexed yet")
		s.markFailed(ctx, jobID, logger, err)
		return err
	}

	if err := s.jobs.UpdateStatus(ctx, jobID, model.JobStatusProcessing); err != nil {
		s.markFailed(ctx, jobID, logger, err)
		return err
	}
	logger.Info("job started", "video_id", job.VideoID, "query", job.Query)

	segments, err := s.intel.Query(ctx, *job.Video.AssetID, job.Query)
	if err != nil {
		s.markFailed(ctx, jobID, logger, err)
		return err
	}

	if len(segments) == 0 {
		logger.Info("query matched no segments")
		return s.jobs.UpdateStatus(ctx, jobID, model.JobStatusCompleted)
	}

	clips, err := s.extractor.ExtractClips(ctx, job.Video.StorageKey, segments, job.Padding, jobID, job.UserID)
	if err != nil {
		s.markFailed(ctx, jobID, logger, err)
		return err
	}

	if len(clips) > 0 {
		if err := s.clips.CreateBatch(ctx, clips); err != nil {
			s.markFailed(ctx, jobID, logger, err)
			return err
		}
	}

	if err := s.jobs.UpdateStatus(ctx, jobID, model.JobStatusCompleted); err != nil {
		return err
	}
	logger.Info("job completed", "segments", len(segments), "clips", len(clips))
	return nil
}

// markFailed records the failed status without masking the original error
func (s *Service) markFailed(ctx context.Context, jobID string, logger *slog.Logger, cause error) {
	logger.Error("job failed", "error", cause)
	if err := s.jobs.UpdateStatus(ctx, jobID, model.JobStatusFailed); err != nil {
		logger.Error("failed to record job failure", "error", err)
	}
}
