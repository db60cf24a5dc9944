package api

import (
	"time"

	"github.com/volleyclip/clipper/internal/model"
)

// IndexWebhookRequest notifies the service that a video finished uploading
type IndexWebhookRequest struct {
	VideoFilename string `json:"video_filename"`
	VideoDBID     string `json:"video_db_id"`
}

// ProcessJobWebhookRequest asks the service to run a pending clip job
type ProcessJobWebhookRequest struct {
	JobID string `json:"job_id"`
}

// QueuedResponse acknowledges that a webhook task was accepted
type QueuedResponse struct {
	Status string `json:"status"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status  string `json:"status"`
	UptimeS int64  `json:"uptime_s"`
}

// ClipResponse is the wire form of a produced clip
type ClipResponse struct {
	ID           int64   `json:"id"`
	JobID        string  `json:"job_id"`
	PublicURL    string  `json:"public_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	StartTime    float64 `json:"start_time"`
	EndTime      float64 `json:"end_time"`
	Duration     float64 `json:"duration"`
	CreatedAt    string  `json:"created_at"`
}

// JobClipsResponse lists the clips a job produced alongside its status
type JobClipsResponse struct {
	JobID  string         `json:"job_id"`
	Status string         `json:"status"`
	Clips  []ClipResponse `json:"clips"`
}

// ErrorResponse is the wire form of a failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ClipToResponse converts a clip record to its wire form
func ClipToResponse(c *model.Clip) ClipResponse {
	return ClipResponse{
		ID:           c.ID,
		JobID:        c.JobID,
		PublicURL:    c.PublicURL,
		ThumbnailURL: c.ThumbnailURL,
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		Duration:     c.Duration(),
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}
