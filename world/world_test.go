package world

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/britzl/platypus"
)

func TestRaycastBox(t *testing.T) {
	w := New()
	id, err := w.AddBox("ground", cp.BB{L: 0, B: 0, R: 100, T: 50})
	require.NoError(t, err)

	hit, ok := w.Raycast(cp.Vector{X: 50, Y: 100}, cp.Vector{X: 50, Y: -10}, []string{"ground"})
	require.True(t, ok)
	assert.Equal(t, id, hit.Surface)
	assert.Equal(t, "ground", hit.Group)
	assert.InDelta(t, 50.0/110.0, hit.Fraction, 1e-6)
	assert.InDelta(t, 50, hit.Point.Y, 1e-6)
	assert.Greater(t, hit.Normal.Y, 0.9)
}

func TestRaycastGroupFilter(t *testing.T) {
	w := New()
	_, err := w.AddBox("ground", cp.BB{L: 0, B: 0, R: 100, T: 50})
	require.NoError(t, err)
	_, err = w.AddBox("platform", cp.BB{L: 0, B: 60, R: 100, T: 70})
	require.NoError(t, err)

	from := cp.Vector{X: 50, Y: 100}
	to := cp.Vector{X: 50, Y: -10}

	// Only the named groups are probed; nearer shapes of other groups are
	// passed through.
	hit, ok := w.Raycast(from, to, []string{"ground"})
	require.True(t, ok)
	assert.Equal(t, "ground", hit.Group)

	_, ok = w.Raycast(from, to, []string{"lava"})
	assert.False(t, ok)

	hit, ok = w.Raycast(from, to, []string{"ground", "platform"})
	require.True(t, ok)
	assert.Equal(t, "platform", hit.Group, "nearest surface among the probed groups wins")
}

func TestRemoveAndExists(t *testing.T) {
	w := New()
	id, err := w.AddSegment("ground", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 100, Y: 0}, 0)
	require.NoError(t, err)

	assert.True(t, w.Exists(id))
	group, ok := w.Group(id)
	require.True(t, ok)
	assert.Equal(t, "ground", group)

	w.Remove(id)
	assert.False(t, w.Exists(id))
	_, ok = w.Group(id)
	assert.False(t, ok)
	_, ok = w.Raycast(cp.Vector{X: 50, Y: 50}, cp.Vector{X: 50, Y: -50}, []string{"ground"})
	assert.False(t, ok)
}

func TestPlatformMove(t *testing.T) {
	w := New()
	id, err := w.AddPlatform("platform", cp.Vector{X: 50, Y: 50}, 100, 20)
	require.NoError(t, err)

	pos, ok := w.PlatformPosition(id)
	require.True(t, ok)
	assert.Equal(t, cp.Vector{X: 50, Y: 50}, pos)

	from := cp.Vector{X: 50, Y: 100}
	to := cp.Vector{X: 50, Y: 0}
	_, ok = w.Raycast(from, to, []string{"platform"})
	require.True(t, ok)

	w.SetPlatformPosition(id, cp.Vector{X: 500, Y: 50})
	_, ok = w.Raycast(from, to, []string{"platform"})
	assert.False(t, ok, "queries see the moved platform, not the stale index")

	hit, ok := w.Raycast(cp.Vector{X: 500, Y: 100}, cp.Vector{X: 500, Y: 0}, []string{"platform"})
	require.True(t, ok)
	assert.Equal(t, id, hit.Surface)
}

func TestSetPlatformPositionIgnoresStaticSurfaces(t *testing.T) {
	w := New()
	id, err := w.AddBox("ground", cp.BB{L: 0, B: 0, R: 100, T: 50})
	require.NoError(t, err)

	w.SetPlatformPosition(id, cp.Vector{X: 500, Y: 500})
	_, ok := w.Raycast(cp.Vector{X: 50, Y: 100}, cp.Vector{X: 50, Y: -10}, []string{"ground"})
	assert.True(t, ok)
}

func TestAddTilesMergesRectangles(t *testing.T) {
	w := New()

	t.Run("full_block_is_one_surface", func(t *testing.T) {
		ids, err := w.AddTiles("ground", []string{"###", "###"}, '#', 16)
		require.NoError(t, err)
		assert.Len(t, ids, 1)
	})

	t.Run("gap_splits_surfaces", func(t *testing.T) {
		ids, err := w.AddTiles("ground", []string{"#.#"}, '#', 16)
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})

	t.Run("l_shape", func(t *testing.T) {
		ids, err := w.AddTiles("ground", []string{"##.", "###"}, '#', 16)
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})

	t.Run("empty_grid", func(t *testing.T) {
		ids, err := w.AddTiles("ground", nil, '#', 16)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestTooManyGroups(t *testing.T) {
	w := New()
	for i := 0; i < maxGroups; i++ {
		_, err := w.AddBox(string(rune('a'+i)), cp.BB{L: 0, B: 0, R: 1, T: 1})
		require.NoError(t, err)
	}
	_, err := w.AddBox("overflow", cp.BB{L: 0, B: 0, R: 1, T: 1})
	assert.Error(t, err)
}

// Body against the real Chipmunk space, screen-down coordinates like the
// demo: positive gravity, larger Y is down.
func TestBodyIntegration(t *testing.T) {
	w := New()
	_, err := w.AddBox("ground", cp.BB{L: -100, B: 100, R: 100, T: 116})
	require.NoError(t, err)

	cfg := platypus.Config{
		Left: 6, Right: 6, Top: 12, Bottom: 12,
		Gravity: 900,
		Groups:  map[string]platypus.DirMask{"ground": platypus.DirAll},
	}
	b, err := platypus.New(cfg, w, cp.Vector{X: 0, Y: 40})
	require.NoError(t, err)

	for i := 0; i < 300 && !b.HasGroundContact(); i++ {
		b.Update(1.0 / 60.0)
	}
	require.True(t, b.HasGroundContact())
	assert.InDelta(t, 88, b.Position().Y, 1e-6)

	b.Jump(300)
	b.Update(1.0 / 60.0)
	assert.False(t, b.HasGroundContact())
	assert.Less(t, b.Velocity().Y, 0.0)

	for i := 0; i < 300 && !b.HasGroundContact(); i++ {
		b.Update(1.0 / 60.0)
	}
	assert.True(t, b.HasGroundContact())
}

func TestBodyRidesAttachment(t *testing.T) {
	w := New()
	platformID, err := w.AddPlatform("platform", cp.Vector{X: 0, Y: 100}, 80, 16)
	require.NoError(t, err)

	cfg := platypus.Config{
		Left: 6, Right: 6, Top: 12, Bottom: 12,
		Gravity: 900,
		Groups:  map[string]platypus.DirMask{"platform": platypus.DirAll},
	}
	b, err := platypus.New(cfg, w, cp.Vector{X: 0, Y: 40})
	require.NoError(t, err)

	for i := 0; i < 300 && !b.HasGroundContact(); i++ {
		b.Update(1.0 / 60.0)
	}
	require.True(t, b.HasGroundContact())

	surface, attached := b.Attachment()
	require.True(t, attached)
	assert.Equal(t, platformID, surface)

	// Removing the platform detaches the body on its next update.
	w.Remove(platformID)
	b.Update(1.0 / 60.0)
	_, attached = b.Attachment()
	assert.False(t, attached)
	assert.True(t, b.IsFalling())
}
