package job

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/volleyclip/clipper/internal/errors"
	"github.com/volleyclip/clipper/internal/model"
	"github.com/volleyclip/clipper/internal/repository/common"
)

// jobRepository implements Repository using PostgreSQL
type jobRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of the job Repository
func NewRepository(pool common.Pool) Repository {
	return &jobRepository{
		pool: pool,
	}
}

// Create creates a new job record in pending state
func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	sql := "INSERT INTO jobs (id, video_id, query, padding, status, user_id) VALUES ($1, $2, $3, $4, $5, $6)"
	_, err := r.pool.Exec(ctx, sql, job.ID, job.VideoID, job.Query, job.Padding, job.Status, job.UserID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create job")
	}
	return nil
}

// GetByID retrieves a job by its ID
func (r *jobRepository) GetByID(ctx context.Context, id string) (*model.Job, error) {
	sql := "SELECT id, video_id, query, padding, status, user_id, created_at FROM jobs WHERE id = $1"
	row := r.pool.QueryRow(ctx, sql, id)

	var job model.Job
	err := row.Scan(&job.ID, &job.VideoID, &job.Query, &job.Padding, &job.Status, &job.UserID, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "job not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get job")
	}

	return &job, nil
}

// GetWithVideo retrieves a job joined with its video in one query
func (r *jobRepository) GetWithVideo(ctx context.Context, id string) (*model.Job, error) {
	sql := `SELECT j.id, j.video_id, j.query, j.padding, j.status, j.user_id, j.created_at,
		v.id, v.storage_key, v.status, v.index_id, v.asset_id, v.created_at
		FROM jobs j
		JOIN videos v ON v.id = j.video_id
		WHERE j.id = $1`
	row := r.pool.QueryRow(ctx, sql, id)

	var job model.Job
	var video model.Video
	err := row.Scan(
		&job.ID, &job.VideoID, &job.Query, &job.Padding, &job.Status, &job.UserID, &job.CreatedAt,
		&video.ID, &video.StorageKey, &video.Status, &video.IndexID, &video.AssetID, &video.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "job not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get job with video")
	}

	job.Video = &video
	return &job, nil
}

// UpdateStatus updates only the status of a job
func (r *jobRepository) UpdateStatus(ctx context.Context, id string, status model.JobStatus) error {
	sql := "UPDATE jobs SET status = $2 WHERE id = $1"
	_, err := r.pool.Exec(ctx, sql, id, status)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to update job status")
	}
	return nil
}

// ListByVideoID retrieves jobs for a video, newest first
func (r *jobRepository) ListByVideoID(ctx context.Context, videoID string, limit, offset int) ([]*model.Job, error) {
	sql := "SELECT id, video_id, query, padding, status, user_id, created_at FROM jobs WHERE video_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3"
	rows, err := r.pool.Query(ctx, sql, videoID, limit, offset)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list jobs by video ID")
	}
	defer rows.Close()

	jobs := []*model.Job{}
	for rows.Next() {
		var job model.Job
		err := rows.Scan(&job.ID, &job.VideoID, &job.Query, &job.Padding, &job.Status, &job.UserID, &job.CreatedAt)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan job row")
		}
		jobs = append(jobs, &job)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate job rows")
	}

	return jobs, nil
}
