package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FilesystemStore reads artwork from and writes artifacts under a root
// directory on local disk, for local/dev runs.
type FilesystemStore struct {
	Root string
}

// NewFilesystemStore builds a FilesystemStore rooted at root. Artwork
// handles are resolved as paths relative to root.
func NewFilesystemStore(root string) *FilesystemStore {
	return &FilesystemStore{Root: root}
}

// FetchArtwork implements ArtworkSource, reading handle as a path
// relative to Root.
func (f *FilesystemStore) FetchArtwork(_ context.Context, handle string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.Root, filepath.Clean("/"+handle)))
	if err != nil {
		return nil, wrapReadErr(handle, err)
	}
	return data, nil
}

// WriteArtifact implements ArtifactSink, writing the artifact to its
// canonical path under Root and creating intermediate directories as
// needed.
func (f *FilesystemStore) WriteArtifact(_ context.Context, tenantID, jobID string, baseIndex int, ext string, data []byte) (string, error) {
	path := ArtifactPath(tenantID, jobID, baseIndex, ext)
	full := filepath.Join(f.Root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", wrapWriteErr(path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", wrapWriteErr(path, err)
	}
	return "file://" + full, nil
}
