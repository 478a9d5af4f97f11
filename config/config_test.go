package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/printloom/dtfbase/config"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMachine(t *testing.T) {
	path := writeTempFile(t, "machine.yaml", "usable_width_mm: 600\nmax_length_mm: 2500\nmin_dpi: 150\n")

	m, err := config.LoadMachine(path)
	require.NoError(t, err)
	require.Equal(t, 600.0, m.UsableWidthMM)
	require.Equal(t, 2500.0, m.MaxLengthMM)
	require.Equal(t, 150.0, m.MinDPI)
}

func TestLoadMachineMissingFile(t *testing.T) {
	_, err := config.LoadMachine("/nonexistent/machine.yaml")
	require.Error(t, err)
}

func TestLoadProfileSet(t *testing.T) {
	path := writeTempFile(t, "profiles.yaml", `
tenant_id: acme
profiles:
  - sku_prefix: TEE-
    target_width_mm: 280
  - sku_prefix: ""
    target_width_mm: 200
    is_default: true
`)

	ps, err := config.LoadProfileSet(path)
	require.NoError(t, err)
	require.Equal(t, "acme", ps.TenantID)
	require.Len(t, ps.Profiles, 2)
	require.True(t, ps.Profiles[1].IsDefault)
}

func TestLoadProfileSetRejectsMultipleDefaults(t *testing.T) {
	path := writeTempFile(t, "profiles.yaml", `
tenant_id: acme
profiles:
  - sku_prefix: TEE-
    target_width_mm: 280
    is_default: true
  - sku_prefix: MUG-
    target_width_mm: 90
    is_default: true
`)

	_, err := config.LoadProfileSet(path)
	require.Error(t, err)
}

func TestSlugifyTenant(t *testing.T) {
	require.Equal(t, "acme-corp", config.SlugifyTenant("Acme Corp"))
}

func TestNewJobIDIsUnique(t *testing.T) {
	a := config.NewJobID()
	b := config.NewJobID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
