package storage

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/volleyclip/clipper/internal/config"
	apperrors "github.com/volleyclip/clipper/internal/errors"
)

// s3API is the subset of the S3 client the store uses
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// presignAPI is the subset of the S3 presign client the store uses
type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store implements Store against any S3-compatible endpoint (AWS S3,
// Cloudflare R2, MinIO)
type S3Store struct {
	client  s3API
	presign presignAPI
	bucket  string
}

// NewS3Store creates a Store from storage configuration
func NewS3Store(ctx context.Context, cfg appconfig.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load storage credentials")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// R2 and MinIO require path-style addressing
		o.UsePathStyle = cfg.Endpoint != ""
	})

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// newS3StoreWithClients wires explicit API handles (for testing)
func newS3StoreWithClients(client s3API, presign presignAPI, bucket string) *S3Store {
	return &S3Store{client: client, presign: presign, bucket: bucket}
}

// PresignedGet returns a time-limited read URL for a key
func (s *S3Store) PresignedGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", apperrors.New(apperrors.CodeInvalidArg, "storage key is required")
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeExternal, "failed to presign storage URL")
	}

	return req.URL, nil
}

// Upload stores a local file under the given key
func (s *S3Store) Upload(ctx context.Context, localPath, key, contentType string) error {
	if key == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "storage key is required")
	}

	file, err := os.Open(localPath)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to open file for upload")
	}
	defer file.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternal, "failed to upload object")
	}

	return nil
}
