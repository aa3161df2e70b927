package platypus

import (
	"fmt"
	"log"
)

// DirMask restricts which approach directions a surface group blocks.
// A one-way platform that only blocks from above uses DirDown.
type DirMask uint8

const (
	DirUp    DirMask = 1
	DirLeft  DirMask = 2
	DirRight DirMask = 4
	DirDown  DirMask = 8
	DirAll   DirMask = DirUp | DirLeft | DirRight | DirDown
)

// Permits reports whether the mask allows contact from direction d.
func (m DirMask) Permits(d DirMask) bool {
	return m&d != 0
}

// Separation modes. Ray separation is the only behavior; the shape mode is
// accepted for old configs and treated as a synonym.
const (
	SeparationRays   = "rays"
	SeparationShapes = "shapes"
)

const (
	defaultWallJumpPowerRatioX = 0.75
	defaultWallJumpPowerRatioY = 0.75
)

// Config holds the per-instance controller settings. Bounding extents are
// measured from the body center; the sign of Gravity picks the down axis
// (negative gravity for y-up worlds, positive for screen-down worlds).
type Config struct {
	// Bounding box half-extents, all required.
	Left   float64
	Right  float64
	Top    float64
	Bottom float64

	// Probe origin offset from the body position.
	OffsetX float64
	OffsetY float64

	Gravity          float64
	WallSlideGravity float64
	// MaxVelocity clamps each velocity component when non-zero.
	MaxVelocity float64

	AllowDoubleJump bool
	AllowWallJump   bool
	AllowWallSlide  bool
	// ConstWallJump makes the horizontal push of a wall jump unconditional.
	// When false the push is halved while movement is held into the wall.
	ConstWallJump bool

	WallJumpPowerRatioX float64
	WallJumpPowerRatioY float64

	// Groups lists the surface groups probed each frame and the directions
	// each group is allowed to block. Required, non-empty.
	Groups map[string]DirMask

	// Separation is kept for old configs; leave empty for SeparationRays.
	Separation string

	Debug bool
}

func (c *Config) applyDefaults() {
	if c.Separation == "" {
		c.Separation = SeparationRays
	}
	if c.WallJumpPowerRatioX == 0 {
		c.WallJumpPowerRatioX = defaultWallJumpPowerRatioX
	}
	if c.WallJumpPowerRatioY == 0 {
		c.WallJumpPowerRatioY = defaultWallJumpPowerRatioY
	}
}

func (c *Config) validate() error {
	if c.Left <= 0 || c.Right <= 0 || c.Top <= 0 || c.Bottom <= 0 {
		return fmt.Errorf("platypus: config: bounding extents must all be positive (left=%v right=%v top=%v bottom=%v)",
			c.Left, c.Right, c.Top, c.Bottom)
	}
	if c.Gravity == 0 {
		return fmt.Errorf("platypus: config: gravity is required and must be non-zero")
	}
	if c.MaxVelocity < 0 {
		return fmt.Errorf("platypus: config: max velocity must not be negative")
	}
	if c.WallJumpPowerRatioX < 0 || c.WallJumpPowerRatioY < 0 {
		return fmt.Errorf("platypus: config: wall jump power ratios must not be negative")
	}
	if len(c.Groups) == 0 {
		return fmt.Errorf("platypus: config: at least one collision group is required")
	}
	for name, mask := range c.Groups {
		if mask == 0 || mask > DirAll {
			return fmt.Errorf("platypus: config: group %q has invalid direction mask %d", name, mask)
		}
	}
	switch c.Separation {
	case SeparationRays:
	case SeparationShapes:
		log.Printf("platypus: config: shape separation is deprecated, using ray separation")
	default:
		return fmt.Errorf("platypus: config: unknown separation mode %q", c.Separation)
	}
	return nil
}
