package indexing

import (
	"context"
	"time"

	"github.com/volleyclip/clipper/internal/model"
	"github.com/volleyclip/clipper/internal/service/intel"
)

// Mock collaborators for testing

// mockVideoRepo mocks video.Repository
type mockVideoRepo struct {
	CreateFunc       func(ctx context.Context, video *model.Video) error
	GetByIDFunc      func(ctx context.Context, id string) (*model.Video, error)
	UpdateStatusFunc func(ctx context.Context, id string, status model.VideoStatus) error
	MarkReadyFunc    func(ctx context.Context, id, indexID, assetID string) error
	ListFunc         func(ctx context.Context, limit, offset int) ([]*model.Video, error)
}

func (m *mockVideoRepo) Create(ctx context.Context, video *model.Video) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, video)
	}
	return nil
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id string) (*model.Video, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockVideoRepo) UpdateStatus(ctx context.Context, id string, status model.VideoStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockVideoRepo) MarkReady(ctx context.Context, id, indexID, assetID string) error {
	if m.MarkReadyFunc != nil {
		return m.MarkReadyFunc(ctx, id, indexID, assetID)
	}
	return nil
}

func (m *mockVideoRepo) List(ctx context.Context, limit, offset int) ([]*model.Video, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*model.Video{}, nil
}

// mockIntelClient mocks intel.Client
type mockIntelClient struct {
	CreateIndexFunc       func(ctx context.Context, name string, models []intel.ModelConfig) (string, error)
	RegisterAssetFunc     func(ctx context.Context, indexID, sourceURL string) (string, error)
	StartIndexingTaskFunc func(ctx context.Context, indexID, assetID string) (string, error)
	GetAssetStatusFunc    func(ctx context.Context, indexID, assetID string) (*intel.AssetStatus, error)
	QueryFunc             func(ctx context.Context, assetID, prompt string) ([]model.Segment, error)
}

func (m *mockIntelClient) CreateIndex(ctx context.Context, name string, models []intel.ModelConfig) (string, error) {
	if m.CreateIndexFunc != nil {
		return m.CreateIndexFunc(ctx, name, models)
	}
	return "idx-1", nil
}

func (m *mockIntelClient) RegisterAsset(ctx context.Context, indexID, sourceURL string) (string, error) {
	if m.RegisterAssetFunc != nil {
		return m.RegisterAssetFunc(ctx, indexID, sourceURL)
	}
	return "asset-1", nil
}

func (m *mockIntelClient) StartIndexingTask(ctx context.Context, indexID, assetID string) (string, error) {
	if m.StartIndexingTaskFunc != nil {
		return m.StartIndexingTaskFunc(ctx, indexID, assetID)
	}
	return "task-1", nil
}

func (m *mockIntelClient) GetAssetStatus(ctx context.Context, indexID, assetID string) (*intel.AssetStatus, error) {
	if m.GetAssetStatusFunc != nil {
		return m.GetAssetStatusFunc(ctx, indexID, assetID)
	}
	return &intel.AssetStatus{Status: intel.StatusReady}, nil
}

func (m *mockIntelClient) Query(ctx context.Context, assetID, prompt string) ([]model.Segment, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, assetID, prompt)
	}
	return nil, nil
}

// mockStore mocks storage.Store
type mockStore struct {
	PresignedGetFunc func(ctx context.Context, key string, ttl time.Duration) (string, error)
	UploadFunc       func(ctx context.Context, localPath, key, contentType string) error
}

func (m *mockStore) PresignedGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if m.PresignedGetFunc != nil {
		return m.PresignedGetFunc(ctx, key, ttl)
	}
	return "https://store.example/" + key, nil
}

func (m *mockStore) Upload(ctx context.Context, localPath, key, contentType string) error {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, localPath, key, contentType)
	}
	return nil
}
