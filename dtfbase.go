// Package dtfbase is the public entry point of the DTF base composition
// core: sizing, skyline packing, and rendering of print items onto
// fixed-width bounded-length bases. It re-exports the types and
// constructors a caller needs under one namespace, the way the teacher
// codebase's root package aliases its internal subsystems.
package dtfbase

import (
	"github.com/printloom/dtfbase/manifest"
	"github.com/printloom/dtfbase/model"
	"github.com/printloom/dtfbase/packing"
	"github.com/printloom/dtfbase/pipeline"
	"github.com/printloom/dtfbase/render"
	"github.com/printloom/dtfbase/sizing"
	"github.com/printloom/dtfbase/storage"
)

// Core data types, re-exported from model so callers never import it
// directly.
type (
	Machine       = model.Machine
	SizingProfile = model.SizingProfile
	ProfileSet    = model.ProfileSet
	Margins       = model.Margins
	Mode          = model.Mode
	ResolvedItem  = model.ResolvedItem
	SizedItem     = model.SizedItem
	ArtworkFormat = model.ArtworkFormat
	ErrorKind     = model.ErrorKind
	JobError      = model.JobError
)

// Mode values (spec §4.3).
const (
	ModeSequence = model.ModeSequence
	ModeOptimize = model.ModeOptimize
)

// Artwork format values (spec §4.1).
const (
	FormatPNG  = model.FormatPNG
	FormatJPEG = model.FormatJPEG
)

// Error kinds (spec §7).
const (
	ErrNoProfile         = model.ErrNoProfile
	ErrLowDPI            = model.ErrLowDPI
	ErrUnsupportedFormat = model.ErrUnsupportedFormat
	ErrItemExceedsMaxLen = model.ErrItemExceedsMaxLen
	ErrItemExceedsBase   = model.ErrItemExceedsBase
	ErrStorageReadFail   = model.ErrStorageReadFail
	ErrStorageWriteFail  = model.ErrStorageWriteFail
	ErrRenderFail        = model.ErrRenderFail
	ErrTimeout           = model.ErrTimeout
	ErrInternalCollision = model.ErrInternalCollision
)

// DefaultMargins returns the spec-mandated SIDE_MARGIN_MM/INTER_ITEM_MARGIN_MM.
var DefaultMargins = model.DefaultMargins

// Pipeline types: the orchestrator most callers want rather than wiring
// sizing/packing/render by hand.
type (
	PipelineConfig = pipeline.Config
	PipelineResult = pipeline.Result
	Driver         = pipeline.Driver
	Manifest       = manifest.Manifest
)

// NewDriver builds a pipeline Driver for one job run.
var NewDriver = pipeline.New

// Stage constructors, for callers that need finer-grained control than
// the Driver offers.
type (
	SizingEngine = sizing.Engine
	Packer       = packing.Packer
	Base         = packing.Base
	Placement    = packing.Placement
	Renderer     = render.Renderer
	Artifact     = render.Artifact
)

var (
	NewSizingEngine = sizing.New
	NewPacker       = packing.New
	NewRenderer     = render.New
)

// Storage collaborator contracts and the bundled adapters.
type (
	ArtworkSource = storage.ArtworkSource
	ArtifactSink  = storage.ArtifactSink
)

var (
	NewMemoryStore     = storage.NewMemoryStore
	NewFilesystemStore = storage.NewFilesystemStore
	NewS3Store         = storage.NewS3Store
)
