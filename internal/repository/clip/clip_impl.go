package clip

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/volleyclip/clipper/internal/model"
	"github.com/volleyclip/clipper/internal/repository/common"
)

// clipRepository implements Repository using PostgreSQL
type clipRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of the clip Repository
func NewRepository(pool common.Pool) Repository {
	return &clipRepository{
		pool: pool,
	}
}

// CreateBatch inserts clip records using COPY FROM for bulk performance
func (r *clipRepository) CreateBatch(ctx context.Context, clips []*model.Clip) error {
	if len(clips) == 0 {
		return nil // Nothing to insert
	}

	// Prepare data for COPY FROM
	rows := make([][]any, len(clips))
	for i, c := range clips {
		rows[i] = []any{
			c.JobID,
			c.StorageKey,
			c.PublicURL,
			c.StartTime,
			c.EndTime,
			c.ThumbnailKey,
			c.ThumbnailURL,
			c.UserID,
		}
	}

	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"clips"},
		[]string{"job_id", "storage_key", "public_url", "start_time", "end_time", "thumbnail_key", "thumbnail_url", "user_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create clips")
	}

	return nil
}

// ListByJobID retrieves all clips for a job ordered by insertion
func (r *clipRepository) ListByJobID(ctx context.Context, jobID string) ([]*model.Clip, error) {
	sql := `SELECT id, job_id, storage_key, public_url, start_time, end_time,
		thumbnail_key, thumbnail_url, user_id, created_at
		FROM clips WHERE job_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, sql, jobID)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list clips")
	}
	defer rows.Close()

	clips := []*model.Clip{}
	for rows.Next() {
		var c model.Clip
		err := rows.Scan(
			&c.ID, &c.JobID, &c.StorageKey, &c.PublicURL, &c.StartTime, &c.EndTime,
			&c.ThumbnailKey, &c.ThumbnailURL, &c.UserID, &c.CreatedAt,
		)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan clip row")
		}
		clips = append(clips, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate clip rows")
	}

	return clips, nil
}
