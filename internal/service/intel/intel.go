// Package intel talks to the video-intelligence service that indexes raw
// video and answers semantic queries with time ranges.
package intel

import (
	"context"

	"github.com/volleyclip/clipper/internal/model"
)

// Asset status values reported by the intelligence service
const (
	StatusReady  = "ready"
	StatusFailed = "failed"
)

// ModelConfig selects an indexing model and its options
type ModelConfig struct {
	Name    string   `json:"model_name"`
	Options []string `json:"model_options"`
}

// DefaultModels returns the indexing model configuration used for new indexes
func DefaultModels() []ModelConfig {
	return []ModelConfig{
		{Name: "marengo3.0", Options: []string{"visual", "audio"}},
		{Name: "pegasus1.2", Options: []string{"visual", "audio"}},
	}
}

// AssetStatus is the indexing state of a registered asset
type AssetStatus struct {
	Status  string `json:"status"`
	ReadyID string `json:"_id"`
}

// Client defines the operations required of the video-intelligence service
type Client interface {
	// CreateIndex creates a named index configured with the given models
	CreateIndex(ctx context.Context, name string, models []ModelConfig) (string, error)

	// RegisterAsset registers a fetchable source URL with an index and
	// returns the asset identifier
	RegisterAsset(ctx context.Context, indexID, sourceURL string) (string, error)

	// StartIndexingTask triggers indexing of a registered asset and returns
	// the task identifier
	StartIndexingTask(ctx context.Context, indexID, assetID string) (string, error)

	// GetAssetStatus reports the indexing state of an asset
	GetAssetStatus(ctx context.Context, indexID, assetID string) (*AssetStatus, error)

	// Query runs a semantic query against an indexed asset and returns
	// matched time segments. The response is schema-constrained and parsed
	// strictly; a malformed response is an error.
	Query(ctx context.Context, assetID, prompt string) ([]model.Segment, error)
}
