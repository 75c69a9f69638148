package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ferrite-lang/ferritec/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifestAppliesDefaultsForZeroFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ferrite.yaml")
	writeFile(t, path, "root: main.fe\n")

	m, err := config.LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "main.fe", m.Root)
	assert.Equal(t, 64, m.AddressSize)
	assert.Equal(t, 32, m.DefaultIntSize)
	assert.NoError(t, m.Config().Validate())
}

func TestLoadManifestHonorsExplicitSizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ferrite.yaml")
	writeFile(t, path, "root: main.fe\naddress_size: 32\ndefault_int_size: 16\n")

	m, err := config.LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, 32, m.AddressSize)
	assert.Equal(t, 16, m.DefaultIntSize)
}

func TestLoadManifestMissingFileErrors(t *testing.T) {
	_, err := config.LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadToolConfigMissingFileIsZeroValue(t *testing.T) {
	tc, err := config.LoadToolConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, &config.ToolConfig{}, tc)
}

func TestLoadToolConfigParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ferritec.toml")
	writeFile(t, path, "color = true\nverbose = true\ndump_ir_mode = \"json\"\n")

	tc, err := config.LoadToolConfig(path)
	require.NoError(t, err)
	assert.True(t, tc.Color)
	assert.True(t, tc.Verbose)
	assert.Equal(t, "json", tc.DumpIRMode)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
