package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/printloom/dtfbase/model"
	"github.com/printloom/dtfbase/storage"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := storage.NewMemoryStore()
	m.PutArtwork("art-1", []byte("pixels"))

	data, err := m.FetchArtwork(context.Background(), "art-1")
	require.NoError(t, err)
	require.Equal(t, []byte("pixels"), data)

	uri, err := m.WriteArtifact(context.Background(), "tenant-a", "job-1", 1, "png", []byte("page"))
	require.NoError(t, err)
	require.Equal(t, "tenant/tenant-a/outputs/job-1/base_1.png", uri)

	got, ok := m.Artifact(uri)
	require.True(t, ok)
	require.Equal(t, []byte("page"), got)
}

func TestMemoryStoreFetchUnknownHandleFails(t *testing.T) {
	m := storage.NewMemoryStore()
	_, err := m.FetchArtwork(context.Background(), "missing")
	require.Error(t, err)

	var jobErr *model.JobError
	require.True(t, errors.As(err, &jobErr))
	require.Equal(t, model.ErrStorageReadFail, jobErr.Kind)
}

func TestFilesystemStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/art.png", []byte("raw-bytes"), 0o644))

	fs := storage.NewFilesystemStore(dir)
	data, err := fs.FetchArtwork(context.Background(), "art.png")
	require.NoError(t, err)
	require.Equal(t, []byte("raw-bytes"), data)

	uri, err := fs.WriteArtifact(context.Background(), "tenant-a", "job-1", 2, "png", []byte("page-bytes"))
	require.NoError(t, err)
	require.Contains(t, uri, "base_2.png")

	written, err := os.ReadFile(dir + "/tenant/tenant-a/outputs/job-1/base_2.png")
	require.NoError(t, err)
	require.Equal(t, []byte("page-bytes"), written)
}

func TestFilesystemStoreFetchContainsTraversalIsContained(t *testing.T) {
	dir := t.TempDir()
	fs := storage.NewFilesystemStore(dir)

	_, err := fs.FetchArtwork(context.Background(), "../../../../etc/passwd")
	require.Error(t, err, "a path-traversal handle must not escape the store root")
}

type fakeS3Client struct {
	getObjectOut *s3.GetObjectOutput
	getObjectErr error
	putObjectErr error
	lastPut      *s3.PutObjectInput
}

func (f *fakeS3Client) GetObject(_ context.Context, _ *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return f.getObjectOut, f.getObjectErr
}

func (f *fakeS3Client) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.lastPut = params
	if f.putObjectErr != nil {
		return nil, f.putObjectErr
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoreFetchArtwork(t *testing.T) {
	fake := &fakeS3Client{getObjectOut: &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("s3-bytes")))}}
	s3store := &storage.S3Store{Client: fake, Bucket: "dtf-bucket"}

	data, err := s3store.FetchArtwork(context.Background(), "handle-1")
	require.NoError(t, err)
	require.Equal(t, []byte("s3-bytes"), data)
}

func TestS3StoreFetchArtworkWrapsError(t *testing.T) {
	fake := &fakeS3Client{getObjectErr: errors.New("access denied")}
	s3store := &storage.S3Store{Client: fake, Bucket: "dtf-bucket"}

	_, err := s3store.FetchArtwork(context.Background(), "handle-1")
	require.Error(t, err)

	var jobErr *model.JobError
	require.True(t, errors.As(err, &jobErr))
	require.Equal(t, model.ErrStorageReadFail, jobErr.Kind)
}

func TestS3StoreWriteArtifact(t *testing.T) {
	fake := &fakeS3Client{}
	s3store := &storage.S3Store{Client: fake, Bucket: "dtf-bucket"}

	uri, err := s3store.WriteArtifact(context.Background(), "tenant-a", "job-1", 3, "png", []byte("page"))
	require.NoError(t, err)
	require.Equal(t, "s3://dtf-bucket/tenant/tenant-a/outputs/job-1/base_3.png", uri)
	require.NotNil(t, fake.lastPut)
	require.Equal(t, "image/png", *fake.lastPut.ContentType)
}
