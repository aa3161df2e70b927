package platypus

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Hit is the result of a single probe ray intersection.
type Hit struct {
	// Surface is an opaque id for the hit object, stable for its lifetime.
	Surface uint64
	Group   string
	Point   cp.Vector
	Normal  cp.Vector
	// Fraction is the hit distance along the ray in [0, 1]. A fraction at or
	// near 0 means the probe origin already overlaps the surface; it is a
	// valid hit, not a miss.
	Fraction float64
}

// RayCaster is the host collision service the controller probes against.
// Calls are synchronous; a host with async ray queries must buffer responses
// and answer from the completed set before resuming the frame.
type RayCaster interface {
	// Raycast tests the segment from->to against the named surface groups
	// and returns the nearest hit, if any.
	Raycast(from, to cp.Vector, groups []string) (Hit, bool)
	// Exists reports whether the surface id still resolves to a live object.
	// Used to detect removal of the surface the body stands on.
	Exists(surface uint64) bool
}

// DebugDrawer receives probe rays when debug drawing is toggled on.
type DebugDrawer interface {
	DrawLine(from, to cp.Vector, clr color.Color)
}
