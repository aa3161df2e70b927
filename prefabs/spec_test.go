package prefabs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/britzl/platypus"
)

const tuningYAML = `
left: 16
right: 16
top: 32
bottom: 32
gravity: 900
wall_slide_gravity: 150
max_velocity: 600
allow_double_jump: true
allow_wall_jump: true
allow_wall_slide: true
wall_jump_power_ratio_x: 0.35
wall_jump_power_ratio_y: 0.75
groups:
  ground: [all]
  platform: [down]
  grate: [left, right]
`

func TestParseBodySpec(t *testing.T) {
	spec, err := ParseBodySpec([]byte(tuningYAML))
	require.NoError(t, err)

	cfg, err := spec.Config()
	require.NoError(t, err)

	assert.Equal(t, 16.0, cfg.Left)
	assert.Equal(t, 32.0, cfg.Bottom)
	assert.Equal(t, 900.0, cfg.Gravity)
	assert.Equal(t, 150.0, cfg.WallSlideGravity)
	assert.Equal(t, 600.0, cfg.MaxVelocity)
	assert.True(t, cfg.AllowDoubleJump)
	assert.Equal(t, 0.35, cfg.WallJumpPowerRatioX)

	assert.Equal(t, platypus.DirAll, cfg.Groups["ground"])
	assert.Equal(t, platypus.DirDown, cfg.Groups["platform"])
	assert.Equal(t, platypus.DirLeft|platypus.DirRight, cfg.Groups["grate"])
}

func TestParseBodySpecUnknownKey(t *testing.T) {
	_, err := ParseBodySpec([]byte("left: 16\ngravityy: 900\n"))
	assert.Error(t, err, "typos in tuning files fail instead of defaulting")
}

func TestConfigUnknownDirection(t *testing.T) {
	spec, err := ParseBodySpec([]byte("groups:\n  ground: [sideways]\n"))
	require.NoError(t, err)
	_, err = spec.Config()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestLoadBodySpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tuningYAML), 0o644))

	spec, err := LoadBodySpec(path)
	require.NoError(t, err)
	assert.Equal(t, 16.0, spec.Left)

	_, err = LoadBodySpec(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
