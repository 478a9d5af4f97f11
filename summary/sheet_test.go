package summary_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/printloom/dtfbase/summary"
)

// NewSheet loads a TrueType font bundled with the worker's container
// image; the repository does not ship one (no font asset can be faked
// or hand-written as valid TrueType data). Coverage here is limited to
// the failure path that does not require one; no test in the repository
// exercises Render or the layout.
func TestNewSheetFailsOnMissingFont(t *testing.T) {
	_, err := summary.NewSheet("/nonexistent/font.ttf")
	require.Error(t, err)
}
