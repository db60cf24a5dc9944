package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockS3API struct {
	PutObjectFunc func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	gotInput      *s3.PutObjectInput
}

func (m *mockS3API) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.gotInput = params
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

type mockPresignAPI struct {
	PresignGetObjectFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	gotInput             *s3.GetObjectInput
}

func (m *mockPresignAPI) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	m.gotInput = params
	if m.PresignGetObjectFunc != nil {
		return m.PresignGetObjectFunc(ctx, params, optFns...)
	}
	return &v4.PresignedHTTPRequest{URL: "https://store.example/signed"}, nil
}

func TestS3Store_PresignedGet(t *testing.T) {
	presign := &mockPresignAPI{}
	store := newS3StoreWithClients(&mockS3API{}, presign, "clips-bucket")

	url, err := store.PresignedGet(context.Background(), "uploads/match.mp4", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "https://store.example/signed", url)
	assert.Equal(t, "clips-bucket", aws.ToString(presign.gotInput.Bucket))
	assert.Equal(t, "uploads/match.mp4", aws.ToString(presign.gotInput.Key))
}

func TestS3Store_PresignedGet_EmptyKey(t *testing.T) {
	store := newS3StoreWithClients(&mockS3API{}, &mockPresignAPI{}, "clips-bucket")

	_, err := store.PresignedGet(context.Background(), "", time.Hour)
	assert.Error(t, err)
}

func TestS3Store_Upload(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(tmpFile, []byte("fake mp4 bytes"), 0644))

	client := &mockS3API{}
	store := newS3StoreWithClients(client, &mockPresignAPI{}, "clips-bucket")

	err := store.Upload(context.Background(), tmpFile, "clips/job-1/clip_0.mp4", "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "clips-bucket", aws.ToString(client.gotInput.Bucket))
	assert.Equal(t, "clips/job-1/clip_0.mp4", aws.ToString(client.gotInput.Key))
	assert.Equal(t, "video/mp4", aws.ToString(client.gotInput.ContentType))
}

func TestS3Store_Upload_MissingFile(t *testing.T) {
	store := newS3StoreWithClients(&mockS3API{}, &mockPresignAPI{}, "clips-bucket")

	err := store.Upload(context.Background(), "/nonexistent/clip.mp4", "clips/job-1/clip_0.mp4", "")
	assert.Error(t, err)
}
