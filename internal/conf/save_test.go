package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSaveSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	settings := validSettings()
	settings.Analysis.Overlay = []string{"California", "Texas"}
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, SaveSettings(settings, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Settings
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, settings.Input.Election, loaded.Input.Election)
	assert.Equal(t, settings.Analysis.Year, loaded.Analysis.Year)
	assert.Equal(t, settings.Analysis.Overlay, loaded.Analysis.Overlay)
	assert.Equal(t, settings.Output.Format, loaded.Output.Format)
}

func TestSaveSettingsLeavesNoTempFileBehind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, SaveSettings(validSettings(), filepath.Join(dir, "config.yaml")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.yaml", entries[0].Name())
}
