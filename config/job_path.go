package config

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// SlugifyTenant normalizes a tenant identifier into a safe storage path
// segment. Nothing in the module calls it: storage.ArtifactPath and the
// pipeline driver use tenant and job identifiers exactly as given.
func SlugifyTenant(tenantID string) string {
	return slug.Make(tenantID)
}

// NewJobID generates a job identifier when the caller (the queue
// consumer, out of the core's scope) does not already have one. The
// pipeline driver does not call it; Run takes the job ID from its caller.
func NewJobID() string {
	return uuid.NewString()
}
