package mesh2rn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfiguration(t *testing.T) {
	dir := t.TempDir()

	yamlFile := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte(`
plane: xz
ignore_highway: true
road_size: 3.5
median:
  enabled: false
calibration:
  max_offset: 5
`), 0644))
	cfg, err := LoadConfiguration(yamlFile)
	require.NoError(t, err)
	assert.Equal(t, "xz", cfg.Plane)
	assert.True(t, cfg.IgnoreHighway)
	assert.Equal(t, 3.5, cfg.RoadSize)
	assert.False(t, cfg.Median.Enabled)
	assert.Equal(t, 5.0, cfg.Calibration.MaxOffset)
	// untouched values keep defaults
	assert.True(t, cfg.Calibration.Enabled)
	assert.Equal(t, 0.1, cfg.Weld.CellSize)

	tomlFile := filepath.Join(dir, "cfg.toml")
	require.NoError(t, os.WriteFile(tomlFile, []byte(`
allow_self_track = true

[sidewalk]
enabled = false
size = 2.0
`), 0644))
	cfg, err = LoadConfiguration(tomlFile)
	require.NoError(t, err)
	assert.True(t, cfg.AllowSelfTrack)
	assert.False(t, cfg.SideWalk.Enabled)
	assert.Equal(t, 2.0, cfg.SideWalk.Size)
	assert.Equal(t, 12.0, cfg.SideWalk.MinRoadSize)

	_, err = LoadConfiguration(filepath.Join(dir, "cfg.ini"))
	assert.Error(t, err)
	iniFile := filepath.Join(dir, "cfg.ini")
	require.NoError(t, os.WriteFile(iniFile, []byte("a=b"), 0644))
	_, err = LoadConfiguration(iniFile)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestConfigurationOptions(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.RoadSize = 4
	cfg.SideWalk.Enabled = false
	factory := NewFactory(cfg.FactoryOptions()...)
	assert.Equal(t, 4.0, factory.roadSize)
	assert.False(t, factory.addSideWalk)
	assert.Len(t, factory.graphOptions, 5)

	builder := NewGraphBuilder(cfg.GraphOptions()...)
	assert.Equal(t, AXIS_PLANE_XY, builder.plane)
	assert.Equal(t, 0.1, builder.cellSize)
}
