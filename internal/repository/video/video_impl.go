package video

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/volleyclip/clipper/internal/errors"
	"github.com/volleyclip/clipper/internal/model"
	"github.com/volleyclip/clipper/internal/repository/common"
)

// videoRepository implements Repository using PostgreSQL
type videoRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of the video Repository
func NewRepository(pool common.Pool) Repository {
	return &videoRepository{
		pool: pool,
	}
}

// Create creates a new video record
func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	sql := "INSERT INTO videos (id, storage_key, status) VALUES ($1, $2, $3)"
	_, err := r.pool.Exec(ctx, sql, video.ID, video.StorageKey, video.Status)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create video")
	}
	return nil
}

// GetByID retrieves a video by its ID
func (r *videoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	sql := "SELECT id, storage_key, status, index_id, asset_id, created_at FROM videos WHERE id = $1"
	row := r.pool.QueryRow(ctx, sql, id)

	var video model.Video
	err := row.Scan(&video.ID, &video.StorageKey, &video.Status, &video.IndexID, &video.AssetID, &video.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get video")
	}

	return &video, nil
}

// UpdateStatus updates only the status of a video
func (r *videoRepository) UpdateStatus(ctx context.Context, id string, status model.VideoStatus) error {
	sql := "UPDATE videos SET status = $2 WHERE id = $1"
	_, err := r.pool.Exec(ctx, sql, id, status)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to update video status")
	}
	return nil
}

// MarkReady sets status=ready and both external identifiers atomically.
// Index and asset identifiers are written together exactly once.
func (r *videoRepository) MarkReady(ctx context.Context, id, indexID, assetID string) error {
	sql := "UPDATE videos SET status = $2, index_id = $3, asset_id = $4 WHERE id = $1"
	_, err := r.pool.Exec(ctx, sql, id, model.VideoStatusReady, indexID, assetID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to mark video ready")
	}
	return nil
}

// List retrieves videos with pagination, newest first
func (r *videoRepository) List(ctx context.Context, limit, offset int) ([]*model.Video, error) {
	sql := "SELECT id, storage_key, status, index_id, asset_id, created_at FROM videos ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	rows, err := r.pool.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list videos")
	}
	defer rows.Close()

	videos := []*model.Video{}
	for rows.Next() {
		var video model.Video
		err := rows.Scan(&video.ID, &video.StorageKey, &video.Status, &video.IndexID, &video.AssetID, &video.CreatedAt)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan video row")
		}
		videos = append(videos, &video)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate video rows")
	}

	return videos, nil
}
