// Package sniff cross-checks a declared artwork format against the
// actual byte signature of the artwork, per SPEC_FULL.md's artwork
// format sniffing supplement: a defensive step against a mislabeled or
// spoofed upload reaching the sizing engine.
package sniff

import (
	"fmt"

	"github.com/h2non/filetype"

	"github.com/printloom/dtfbase/model"
)

// Verify checks that data's actual signature matches declared. Returns
// nil if they agree; a *model.JobError with UNSUPPORTED_FORMAT otherwise
// (this also catches the case where data matches neither PNG nor JPEG at
// all, a format the sizing engine rejects regardless).
func Verify(data []byte, declared model.ArtworkFormat) error {
	kind, err := filetype.Match(data)
	if err != nil {
		return model.NewJobError(model.ErrUnsupportedFormat, fmt.Sprintf("sniff artwork bytes: %v", err), err)
	}

	var actual model.ArtworkFormat
	switch kind.Extension {
	case "png":
		actual = model.FormatPNG
	case "jpg", "jpeg":
		actual = model.FormatJPEG
	default:
		actual = model.FormatUnknown
	}

	if actual == model.FormatUnknown {
		return model.NewJobError(model.ErrUnsupportedFormat,
			fmt.Sprintf("artwork byte signature %q is not PNG or JPEG", kind.Extension), nil)
	}
	if actual != declared {
		return model.NewJobError(model.ErrUnsupportedFormat,
			fmt.Sprintf("declared format %q does not match detected format %q", declared, actual), nil)
	}
	return nil
}
