package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client is the subset of *s3.Client the store depends on, so tests can
// substitute a fake without spinning up real AWS credentials.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store is the production ArtworkSource/ArtifactSink backed by an S3
// bucket, used by the worker process in real deployments.
type S3Store struct {
	Client S3Client
	Bucket string
}

// NewS3Store loads the default AWS config chain (environment, shared
// config, EC2/ECS role) and builds an S3Store against bucket.
func NewS3Store(ctx context.Context, bucket string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Store{Client: s3.NewFromConfig(cfg), Bucket: bucket}, nil
}

// FetchArtwork implements ArtworkSource, treating handle as the S3 object
// key within Bucket.
func (s *S3Store) FetchArtwork(ctx context.Context, handle string) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(handle),
	})
	if err != nil {
		return nil, wrapReadErr(handle, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, wrapReadErr(handle, err)
	}
	return data, nil
}

// WriteArtifact implements ArtifactSink, uploading the artifact to its
// canonical key and returning an s3:// URI.
func (s *S3Store) WriteArtifact(ctx context.Context, tenantID, jobID string, baseIndex int, ext string, data []byte) (string, error) {
	key := ArtifactPath(tenantID, jobID, baseIndex, ext)
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeFor(ext)),
	})
	if err != nil {
		return "", wrapWriteErr(key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.Bucket, key), nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
