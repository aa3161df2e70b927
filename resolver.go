package platypus

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
)

// Walkable-slope threshold on the vertical component of a hit normal.
// Down hits above it count as ground, up hits below its negation as ceiling.
const normalThreshold = 0.7

// rayID enumerates the eight fixed probes. The declaration order is the
// evaluation order: side probes before the top corner probes, down probes
// last and classified together.
type rayID int

const (
	rayLeft rayID = iota
	rayRight
	rayUp
	rayUpLeft
	rayUpRight
	rayDown
	rayDownLeft
	rayDownRight
	rayCount
)

var rayNames = [rayCount]string{
	"left", "right", "up", "up_left", "up_right", "down", "down_left", "down_right",
}

var rayColors = [rayCount]color.Color{
	color.RGBA{R: 0xff, A: 0xff},
	color.RGBA{R: 0xff, A: 0xff},
	color.RGBA{G: 0xff, A: 0xff},
	color.RGBA{G: 0xff, A: 0xff},
	color.RGBA{G: 0xff, A: 0xff},
	color.RGBA{B: 0xff, A: 0xff},
	color.RGBA{B: 0xff, A: 0xff},
	color.RGBA{B: 0xff, A: 0xff},
}

func (id rayID) String() string {
	if id < 0 || id >= rayCount {
		return "unknown"
	}
	return rayNames[id]
}

// probe is one ray of the fixed probe table: an offset from the body center,
// the direction bit a hit must be permitted for, and the slack between the
// ray end and the bounding edge. Side and up rays reach one unit past their
// edge; down rays reach one extra unit so resting contact does not drop out
// at exact-edge distances.
type probe struct {
	offset cp.Vector
	mask   DirMask
	slack  float64
}

// buildProbes derives the probe table from the bounding extents. up is the
// axis opposing gravity (+1 or -1 on Y).
func buildProbes(c *Config, up float64) [rayCount]probe {
	return [rayCount]probe{
		rayLeft:      {offset: cp.Vector{X: -(c.Left + 1)}, mask: DirLeft, slack: 1},
		rayRight:     {offset: cp.Vector{X: c.Right + 1}, mask: DirRight, slack: 1},
		rayUp:        {offset: cp.Vector{Y: up * (c.Top + 1)}, mask: DirUp, slack: 1},
		rayUpLeft:    {offset: cp.Vector{X: -c.Left, Y: up * (c.Top + 1)}, mask: DirUp, slack: 1},
		rayUpRight:   {offset: cp.Vector{X: c.Right, Y: up * (c.Top + 1)}, mask: DirUp, slack: 1},
		rayDown:      {offset: cp.Vector{Y: -up * (c.Bottom + 2)}, mask: DirDown, slack: 2},
		rayDownLeft:  {offset: cp.Vector{X: -c.Left, Y: -up * (c.Bottom + 2)}, mask: DirDown, slack: 2},
		rayDownRight: {offset: cp.Vector{X: c.Right, Y: -up * (c.Bottom + 2)}, mask: DirDown, slack: 2},
	}
}

// depthEpsilon absorbs float error in fractions computed from ray geometry;
// depths within it of zero are exact resting contact.
const depthEpsilon = 1e-9

// correction is the separating displacement for a hit on p: the unresolved
// length of the ray beyond the slack margin, pushed back along the ray.
func (p *probe) correction(h Hit) cp.Vector {
	length := p.offset.Length()
	depth := length*(1-h.Fraction) - p.slack
	if depth <= depthEpsilon {
		return cp.Vector{}
	}
	return p.offset.Mult(-depth / length)
}

// snap is the down-probe correction. Unlike correction it also pulls the body
// onto the surface when the hit is inside the slack margin, so a landing body
// rests on the surface instead of stopping on the probe overreach.
func (p *probe) snap(h Hit) cp.Vector {
	length := p.offset.Length()
	depth := length*(1-h.Fraction) - p.slack
	if math.Abs(depth) <= depthEpsilon {
		return cp.Vector{}
	}
	return p.offset.Mult(-depth / length)
}

// resolution is the outcome of one frame of probing: the cumulative
// separating correction, applied to the position exactly once per frame, and
// whether an up probe is blocking ascent.
type resolution struct {
	correction cp.Vector
	ceiling    bool
}

// resolve casts the probe table from the tentative frame position, rewrites
// the contact classification fields of the current state (wall, ground,
// slope, attachment) and returns the frame correction. Sub-state flags
// (wall slide, wall jump, double jump) are left for the state machine.
func (b *Body) resolve(pos cp.Vector) resolution {
	center := pos.Add(cp.Vector{X: b.cfg.OffsetX, Y: b.cfg.OffsetY})

	var results [rayCount]Hit
	var hits [rayCount]bool
	for id := rayID(0); id < rayCount; id++ {
		p := &b.probes[id]
		to := center.Add(p.offset)
		if b.debug && b.drawer != nil {
			b.drawer.DrawLine(center, to, rayColors[id])
		}
		results[id], hits[id] = b.rays.Raycast(center, to, b.groups)
	}

	var res resolution

	b.current.wallContact = wallNone
	b.current.ground = false
	b.current.hasSlope = false
	b.current.slope = cp.Vector{}

	// Side probes first.
	if hits[rayLeft] && b.permits(results[rayLeft], DirLeft) {
		b.current.wallContact = wallLeft
		res.correction = res.correction.Add(b.probes[rayLeft].correction(results[rayLeft]))
	}
	if hits[rayRight] && b.permits(results[rayRight], DirRight) {
		b.current.wallContact = wallRight
		res.correction = res.correction.Add(b.probes[rayRight].correction(results[rayRight]))
	}

	// Up probes block ascent when the hit normal points downward.
	for _, id := range [...]rayID{rayUp, rayUpLeft, rayUpRight} {
		if !hits[id] || !b.permits(results[id], DirUp) {
			continue
		}
		if results[id].Normal.Y*b.up >= -normalThreshold {
			continue
		}
		res.ceiling = true
		res.correction = res.correction.Add(b.probes[id].correction(results[id]))
	}

	// Down probes are classified together. A candidate needs a permitted hit
	// with a near-vertical upward normal (walkable slope threshold).
	var candidates [rayCount]bool
	for _, id := range [...]rayID{rayDown, rayDownLeft, rayDownRight} {
		candidates[id] = hits[id] &&
			b.permits(results[id], DirDown) &&
			results[id].Normal.Y*b.up > normalThreshold
	}

	// The slope normal is active only while exactly one diagonal down probe
	// touches and the straight-down probe does not.
	if !candidates[rayDown] && candidates[rayDownLeft] != candidates[rayDownRight] {
		id := rayDownLeft
		if candidates[rayDownRight] {
			id = rayDownRight
		}
		b.current.slope = results[id].Normal
		b.current.hasSlope = true
	}

	// One representative down hit corrects and parents at full strength;
	// summing all matching rays would double-correct on tile seams.
	b.current.surface = 0
	for _, id := range [...]rayID{rayDown, rayDownLeft, rayDownRight} {
		if !candidates[id] {
			continue
		}
		b.current.ground = true
		b.current.surface = results[id].Surface
		res.correction = res.correction.Add(b.probes[id].snap(results[id]))
		break
	}

	return res
}

func (b *Body) permits(h Hit, d DirMask) bool {
	mask, ok := b.cfg.Groups[h.Group]
	return ok && mask.Permits(d)
}
