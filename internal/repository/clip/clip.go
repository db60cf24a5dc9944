package clip

import (
	"context"

	"github.com/volleyclip/clipper/internal/model"
)

// Repository defines operations for Clip persistence
type Repository interface {
	// CreateBatch inserts all produced clip records for a job in one batch
	CreateBatch(ctx context.Context, clips []*model.Clip) error

	// ListByJobID retrieves clips for a job in production order
	ListByJobID(ctx context.Context, jobID string) ([]*model.Clip, error)
}
