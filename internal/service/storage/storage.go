package storage

import (
	"context"
	"time"
)

// Store defines operations on the object store holding source videos and
// produced clip artifacts
type Store interface {
	// PresignedGet returns a time-limited read URL for a key
	PresignedGet(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Upload stores a local file under the given key. contentType may be
	// empty, in which case the store decides.
	Upload(ctx context.Context, localPath, key, contentType string) error
}
