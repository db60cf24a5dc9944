package clipping

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/volleyclip/clipper/internal/config"
	"github.com/volleyclip/clipper/internal/logging"
	"github.com/volleyclip/clipper/internal/metrics"
	"github.com/volleyclip/clipper/internal/model"
	"github.com/volleyclip/clipper/internal/service/storage"
	"github.com/volleyclip/clipper/internal/service/transcoder"
)

// SegmentExtractor converts matched time segments into stored clip artifacts
type SegmentExtractor interface {
	ExtractClips(ctx context.Context, sourceKey string, segments []model.Segment, padding float64, jobID string, userID *string) ([]*model.Clip, error)
}

// Extractor is the production SegmentExtractor. Segments are processed
// independently: a failing segment is logged and skipped, never aborting
// the rest of the batch.
type Extractor struct {
	store      storage.Store
	transcoder transcoder.Transcoder
	logger     *slog.Logger

	sourceURLTTL time.Duration
	clipURLTTL   time.Duration
	tempDir      string
}

// NewExtractor creates a clip extractor
func NewExtractor(store storage.Store, tc transcoder.Transcoder, cfg config.ClippingConfig, logger *slog.Logger) *Extractor {
	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Extractor{
		store:        store,
		transcoder:   tc,
		logger:       logging.WithComponent(logger, "extractor"),
		sourceURLTTL: cfg.SourceURLTTL,
		clipURLTTL:   cfg.ClipURLTTL,
		tempDir:      tempDir,
	}
}

// ExtractClips cuts, uploads and records one clip per matched segment.
// Returns the successfully produced records in segment order; failed
// segments contribute nothing. The error return covers only failures
// before any segment work starts (presigning the source).
func (e *Extractor) ExtractClips(ctx context.Context, sourceKey string, segments []model.Segment, padding float64, jobID string, userID *string) ([]*model.Clip, error) {
	logger := logging.WithJobID(e.logger, jobID)

	sourceURL, err := e.store.PresignedGet(ctx, sourceKey, e.sourceURLTTL)
	if err != nil {
		return nil, err
	}

	clips := []*model.Clip{}
	for i, seg := range segments {
		clip, err := e.extractOne(ctx, sourceURL, seg, padding, jobID, i, userID, logger)
		if err != nil {
			metrics.ClipsFailed.Inc()
			logger.Error("segment skipped", "segment", i, "start", seg.Start, "end", seg.End, "error", err)
			continue
		}
		metrics.ClipsProduced.Inc()
		clips = append(clips, clip)
	}

	return clips, nil
}

// extractOne processes a single segment: cut, upload, presign, thumbnail
func (e *Extractor) extractOne(ctx context.Context, sourceURL string, seg model.Segment, padding float64, jobID string, index int, userID *string, logger *slog.Logger) (*model.Clip, error) {
	start, end, duration := padWindow(seg, padding)

	clipName := fmt.Sprintf("clip_%d_%d.mp4", index, int(start))
	// Temp name is scoped by job id and segment index so concurrent jobs
	// never collide on disk.
	localPath := filepath.Join(e.tempDir, fmt.Sprintf("%s_%s", jobID, clipName))
	defer os.Remove(localPath)

	logger.Info("cutting segment", "segment", index, "start", start, "end", end)

	if err := e.transcoder.Cut(ctx, sourceURL, start, duration, localPath); err != nil {
		return nil, err
	}

	storageKey := fmt.Sprintf("clips/%s/%s", jobID, clipName)
	if err := e.store.Upload(ctx, localPath, storageKey, "video/mp4"); err != nil {
		return nil, err
	}

	publicURL, err := e.store.PresignedGet(ctx, storageKey, e.clipURLTTL)
	if err != nil {
		return nil, err
	}

	clip := &model.Clip{
		JobID:      jobID,
		StorageKey: storageKey,
		PublicURL:  publicURL,
		StartTime:  start,
		EndTime:    end,
		UserID:     userID,
	}

	// Thumbnail is best effort: a failure here is logged and the clip
	// proceeds with null thumbnail fields.
	thumbKey, thumbURL, err := e.makeThumbnail(ctx, localPath, duration/2, jobID, index)
	if err != nil {
		logger.Warn("thumbnail generation failed", "segment", index, "error", err)
	} else {
		clip.ThumbnailKey = &thumbKey
		clip.ThumbnailURL = &thumbURL
	}

	return clip, nil
}

// makeThumbnail grabs one frame from the produced clip at its midpoint
func (e *Extractor) makeThumbnail(ctx context.Context, clipPath string, offset float64, jobID string, index int) (key, url string, err error) {
	thumbName := fmt.Sprintf("clip_%d.jpg", index)
	localPath := filepath.Join(e.tempDir, fmt.Sprintf("%s_%s", jobID, thumbName))
	defer os.Remove(localPath)

	if err := e.transcoder.ExtractFrame(ctx, clipPath, offset, localPath); err != nil {
		return "", "", err
	}

	key = fmt.Sprintf("thumbs/%s/%s", jobID, thumbName)
	if err := e.store.Upload(ctx, localPath, key, "image/jpeg"); err != nil {
		return "", "", err
	}

	url, err = e.store.PresignedGet(ctx, key, e.clipURLTTL)
	if err != nil {
		return "", "", err
	}

	return key, url, nil
}

// padWindow widens a segment by padding seconds on both sides, clamping
// the start at zero. No upper clamp is applied; the transcoder clamps
// against the source length internally.
func padWindow(seg model.Segment, padding float64) (start, end, duration float64) {
	start = seg.Start - padding
	if start < 0 {
		start = 0
	}
	end = seg.End + padding
	duration = end - start
	return start, end, duration
}
