package model

import "time"

// VideoStatus represents the indexing lifecycle state of a video
type VideoStatus string

const (
	VideoStatusUploaded   VideoStatus = "uploaded"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusReady      VideoStatus = "ready"
	VideoStatusFailed     VideoStatus = "failed"
)

// JobStatus represents the processing lifecycle state of a clip job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Video represents a source media file registered for processing
type Video struct {
	ID         string      `json:"id" db:"id"`
	StorageKey string      `json:"storage_key" db:"storage_key"`
	Status     VideoStatus `json:"status" db:"status"`
	IndexID    *string     `json:"index_id" db:"index_id"` // set together with AssetID when indexing succeeds
	AssetID    *string     `json:"asset_id" db:"asset_id"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// Indexed reports whether the video can serve semantic queries
func (v *Video) Indexed() bool {
	return v.AssetID != nil && *v.AssetID != ""
}

// Job represents one request to extract clips matching a query from a video
type Job struct {
	ID        string    `json:"id" db:"id"`
	VideoID   string    `json:"video_id" db:"video_id"`
	Query     string    `json:"query" db:"query"`
	Padding   float64   `json:"padding" db:"padding"` // seconds added on both sides of each match
	Status    JobStatus `json:"status" db:"status"`
	UserID    *string   `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Video is populated by joined reads only
	Video *Video `json:"video,omitempty" db:"-"`
}

// Clip represents a produced clip artifact for a job
type Clip struct {
	ID           int64     `json:"id" db:"id"`
	JobID        string    `json:"job_id" db:"job_id"`
	StorageKey   string    `json:"storage_key" db:"storage_key"`
	PublicURL    string    `json:"public_url" db:"public_url"`
	StartTime    float64   `json:"start_time" db:"start_time"` // padded start in seconds
	EndTime      float64   `json:"end_time" db:"end_time"`     // padded end in seconds
	ThumbnailKey *string   `json:"thumbnail_key" db:"thumbnail_key"`
	ThumbnailURL *string   `json:"thumbnail_url" db:"thumbnail_url"`
	UserID       *string   `json:"user_id" db:"user_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Duration returns the clip length in seconds
func (c *Clip) Duration() float64 {
	return c.EndTime - c.StartTime
}

// Segment is a time range returned by a semantic query. It is transient
// and never persisted directly.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
