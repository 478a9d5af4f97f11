// Package storage defines the narrow collaborator contracts the core
// consumes for reading artwork and writing rendered artifacts (spec §1:
// "the storage abstraction for reading artwork and writing output" is an
// external collaborator, invoked through a narrow contract). Concrete
// adapters live in this package's sibling files; none of them are
// imported by sizing, packing, or render — only by the pipeline driver
// and the root package's re-exports.
package storage

import (
	"context"
	"fmt"

	"github.com/printloom/dtfbase/model"
)

// ArtworkSource resolves an opaque artwork handle (set on a
// model.ResolvedItem upstream of the core) to the raw artwork bytes.
type ArtworkSource interface {
	FetchArtwork(ctx context.Context, handle string) ([]byte, error)
}

// ArtifactSink writes a rendered base artifact to its final location and
// returns the URI recorded in the manifest's outputs.artifacts list.
type ArtifactSink interface {
	WriteArtifact(ctx context.Context, tenantID, jobID string, baseIndex int, ext string, data []byte) (uri string, err error)
}

// ArtifactPath builds the canonical storage path for one base's artifact,
// per spec §6: tenant/{tenant}/outputs/{job}/base_{i}.{ext}.
func ArtifactPath(tenantID, jobID string, baseIndex int, ext string) string {
	return fmt.Sprintf("tenant/%s/outputs/%s/base_%d.%s", tenantID, jobID, baseIndex, ext)
}

// wrapReadErr converts a collaborator-specific read failure into the
// core's STORAGE_READ_FAIL taxonomy entry.
func wrapReadErr(handle string, err error) error {
	return model.NewJobError(model.ErrStorageReadFail, fmt.Sprintf("fetch artwork %q: %v", handle, err), err)
}

// wrapWriteErr converts a collaborator-specific write failure into the
// core's STORAGE_WRITE_FAIL taxonomy entry.
func wrapWriteErr(path string, err error) error {
	return model.NewJobError(model.ErrStorageWriteFail, fmt.Sprintf("write artifact %q: %v", path, err), err)
}
