package video

import (
	"context"

	"github.com/volleyclip/clipper/internal/model"
)

// Repository defines operations for Video persistence
type Repository interface {
	// Create creates a new video record
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video by its ID
	GetByID(ctx context.Context, id string) (*model.Video, error)

	// UpdateStatus updates only the status of a video
	UpdateStatus(ctx context.Context, id string, status model.VideoStatus) error

	// MarkReady sets status=ready and stores the external index and asset
	// identifiers in a single update
	MarkReady(ctx context.Context, id, indexID, assetID string) error

	// List retrieves videos with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]*model.Video, error)
}
