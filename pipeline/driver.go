// Package pipeline orchestrates the core's three stages — sizing,
// packing, rendering — into one job run, writes artifacts to the
// storage collaborator, and composes the manifest (spec §4.5).
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/printloom/dtfbase/internal/core/sniff"
	"github.com/printloom/dtfbase/manifest"
	"github.com/printloom/dtfbase/model"
	"github.com/printloom/dtfbase/packing"
	"github.com/printloom/dtfbase/render"
	"github.com/printloom/dtfbase/sizing"
	"github.com/printloom/dtfbase/storage"
)

// DefaultSoftDeadline is the job-level soft deadline spec §5 mandates
// when a caller does not override it.
const DefaultSoftDeadline = 5 * time.Minute

// Config configures one Driver. Machine, Profiles, Margins, and Mode are
// snapshotted at job start per spec §5 ("snapshots are taken at job
// start to prevent mid-job profile mutations from affecting sizing").
type Config struct {
	Machine      model.Machine
	Profiles     []model.SizingProfile
	Margins      model.Margins
	Mode         model.Mode
	AllowRotate  bool
	SoftDeadline time.Duration
	SniffArtwork bool

	Source storage.ArtworkSource
	Sink   storage.ArtifactSink
	Log    *zap.Logger
}

// Driver runs one job at a time; construct a new Driver (or reuse one
// with a fresh Config) per job to keep the profile/machine snapshot
// honest.
type Driver struct {
	cfg Config
}

// New builds a Driver. A nil logger is replaced with a no-op one.
func New(cfg Config) *Driver {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.SoftDeadline <= 0 {
		cfg.SoftDeadline = DefaultSoftDeadline
	}
	cfg.Profiles = append([]model.SizingProfile(nil), cfg.Profiles...)
	return &Driver{cfg: cfg}
}

// Result is the terminal outcome of one job run.
type Result struct {
	Status   string // "completed" or "failed"
	Manifest manifest.Manifest
	Err      error
}

// Run executes the full pipeline for one job: resolve artwork bytes,
// size, pack, render, write artifacts, build the manifest. Partial
// success is never returned — on any failure, Result.Status is "failed"
// and Outputs.Artifacts is empty (spec §6: "either all bases for a job
// are present or none").
func (d *Driver) Run(ctx context.Context, tenantID, jobID string, items []model.ResolvedItem) Result {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, d.cfg.SoftDeadline)
	defer cancel()

	log := d.cfg.Log.With(zap.String("job_id", jobID), zap.String("tenant_id", tenantID))
	mb := manifest.NewBuilder(d.cfg.Mode)

	resolved, err := d.resolveArtwork(ctx, items)
	if err != nil {
		return d.fail(mb, start, err)
	}
	if err := checkDeadline(ctx); err != nil {
		return d.fail(mb, start, err)
	}

	log.Info("sizing stage starting", zap.Int("items", len(resolved)))
	engine := sizing.New(d.cfg.Machine, d.cfg.Profiles, d.cfg.Margins, log)
	sized, sizingErrs := engine.SizeAll(resolved)
	mb.SetSizing(len(resolved), sized, sizingErrs)
	for _, s := range sized {
		for _, w := range s.Warnings {
			log.Warn("sizing warning", zap.String("item_id", s.Item.ItemID), zap.String("warning", w))
		}
	}
	if len(sizingErrs) > 0 {
		return d.fail(mb, start, multierr.Combine(sizingErrs...))
	}
	if err := checkDeadline(ctx); err != nil {
		return d.fail(mb, start, err)
	}

	log.Info("packing stage starting", zap.String("mode", string(d.cfg.Mode)))
	packer := packing.New(d.cfg.Machine, d.cfg.Margins, d.cfg.Mode, d.cfg.AllowRotate, log)
	bases, err := packer.Pack(sized)
	if err != nil {
		return d.fail(mb, start, err)
	}
	mb.SetBases(bases)
	if err := checkDeadline(ctx); err != nil {
		return d.fail(mb, start, err)
	}

	log.Info("rendering stage starting", zap.Int("bases", len(bases)))
	renderer := render.New(log)
	artifacts := make([]render.Artifact, 0, len(bases))
	for _, b := range bases {
		if err := checkDeadline(ctx); err != nil {
			return d.fail(mb, start, err)
		}
		a, err := renderer.RenderBase(b, d.cfg.Margins.SideMM)
		if err != nil {
			return d.fail(mb, start, err)
		}
		artifacts = append(artifacts, a)
	}

	uris := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		uri, err := d.cfg.Sink.WriteArtifact(ctx, tenantID, jobID, a.BaseIndex, a.Ext, a.PNGBytes)
		if err != nil {
			return d.fail(mb, start, err)
		}
		uris = append(uris, uri)
	}
	for _, uri := range uris {
		mb.AddArtifact(uri)
	}

	elapsed := time.Since(start).Seconds()
	log.Info("job completed", zap.Float64("processing_time_seconds", elapsed))
	return Result{Status: "completed", Manifest: mb.Build(elapsed)}
}

// resolveArtwork fetches each item's artwork bytes through the
// collaborator when not already populated, and optionally sniffs the
// declared format against the byte signature.
func (d *Driver) resolveArtwork(ctx context.Context, items []model.ResolvedItem) ([]model.ResolvedItem, error) {
	out := make([]model.ResolvedItem, len(items))
	for i, item := range items {
		if len(item.ArtworkBytes) == 0 && item.ArtworkHandle != "" && d.cfg.Source != nil {
			data, err := d.cfg.Source.FetchArtwork(ctx, item.ArtworkHandle)
			if err != nil {
				return nil, err
			}
			item.ArtworkBytes = data
		}
		if d.cfg.SniffArtwork && len(item.ArtworkBytes) > 0 {
			if err := sniff.Verify(item.ArtworkBytes, item.ArtworkFormat); err != nil {
				return nil, err
			}
		}
		out[i] = item
	}
	return out, nil
}

func (d *Driver) fail(mb *manifest.Builder, start time.Time, err error) Result {
	mb.AddError(err)
	return Result{Status: "failed", Manifest: mb.Build(time.Since(start).Seconds()), Err: err}
}

// checkDeadline observes cancellation only between stages and between
// bases, per spec §5 — in-progress work inside a stage is never
// interrupted mid-operation.
func checkDeadline(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return model.NewJobError(model.ErrTimeout, fmt.Sprintf("soft deadline exceeded: %v", ctx.Err()), ctx.Err())
	default:
		return nil
	}
}
