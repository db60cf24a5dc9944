package clipping

import (
	"context"
	"time"

	"github.com/volleyclip/clipper/internal/model"
	"github.com/volleyclip/clipper/internal/service/intel"
)

// Mock collaborators for testing

// mockJobRepo mocks job.Repository
type mockJobRepo struct {
	CreateFunc        func(ctx context.Context, job *model.Job) error
	GetByIDFunc       func(ctx context.Context, id string) (*model.Job, error)
	GetWithVideoFunc  func(ctx context.Context, id string) (*model.Job, error)
	UpdateStatusFunc  func(ctx context.Context, id string, status model.JobStatus) error
	ListByVideoIDFunc func(ctx context.Context, videoID string, limit, offset int) ([]*model.Job, error)
}

func (m *mockJobRepo) Create(ctx context.Context, job *model.Job) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, job)
	}
	return nil
}

func (m *mockJobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockJobRepo) GetWithVideo(ctx context.Context, id string) (*model.Job, error) {
	if m.GetWithVideoFunc != nil {
		return m.GetWithVideoFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockJobRepo) UpdateStatus(ctx context.Context, id string, status model.JobStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockJobRepo) ListByVideoID(ctx context.Context, videoID string, limit, offset int) ([]*model.Job, error) {
	if m.ListByVideoIDFunc != nil {
		return m.ListByVideoIDFunc(ctx, videoID, limit, offset)
	}
	return []*model.Job{}, nil
}

// mockClipRepo mocks clip.Repository
type mockClipRepo struct {
	CreateBatchFunc func(ctx context.Context, clips []*model.Clip) error
	ListByJobIDFunc func(ctx context.Context, jobID string) ([]*model.Clip, error)
}

func (m *mockClipRepo) CreateBatch(ctx context.Context, clips []*model.Clip) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, clips)
	}
	return nil
}

func (m *mockClipRepo) ListByJobID(ctx context.Context, jobID string) ([]*model.Clip, error) {
	if m.ListByJobIDFunc != nil {
		return m.ListByJobIDFunc(ctx, jobID)
	}
	return []*model.Clip{}, nil
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

// mockExtractor mocks SegmentExtractor
type mockExtractor struct {
	ExtractClipsFunc func(ctx context.Context, sourceKey string, segments []model.Segment, padding float64, jobID string, userID *string) ([]*model.Clip, error)
}

func (m *mockExtractor) ExtractClips(ctx context.Context, sourceKey string, segments []model.Segment, padding float64, jobID string, userID *string) ([]*model.Clip, error) {
	if m.ExtractClipsFunc != nil {
		return m.ExtractClipsFunc(ctx, sourceKey, segments, padding, jobID, userID)
	}
	return []*model.Clip{}, nil
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

// mockTranscoder mocks transcoder.Transcoder
type mockTranscoder struct {
	CutFunc          func(ctx context.Context, sourceRef string, startOffset, duration float64, outputPath string) error
	ExtractFrameFunc func(ctx context.Context, sourceRef string, offsetSeconds float64, outputPath string) error
}

func (m *mockTranscoder) Cut(ctx context.Context, sourceRef string, startOffset, duration float64, outputPath string) error {
	if m.CutFunc != nil {
		return m.CutFunc(ctx, sourceRef, startOffset, duration, outputPath)
	}
	return nil
}

func (m *mockTranscoder) ExtractFrame(ctx context.Context, sourceRef string, offsetSeconds float64, outputPath string) error {
	if m.ExtractFrameFunc != nil {
		return m.ExtractFrameFunc(ctx, sourceRef, offsetSeconds, outputPath)
	}
	return nil
}
