package job

import (
	"context"

	"github.com/volleyclip/clipper/internal/model"
)

// Repository defines operations for Job persistence
type Repository interface {
	// Create creates a new job record in pending state
	Create(ctx context.Context, job *model.Job) error

	// GetByID retrieves a job by its ID
	GetByID(ctx context.Context, id string) (*model.Job, error)

	// GetWithVideo retrieves a job joined with its video
	GetWithVideo(ctx context.Context, id string) (*model.Job, error)

	// UpdateStatus updates only the status of a job
	UpdateStatus(ctx context.Context, id string, status model.JobStatus) error

	// ListByVideoID retrieves jobs for a video, newest first
	ListByVideoID(ctx context.Context, videoID string, limit, offset int) ([]*model.Job, error)
}
