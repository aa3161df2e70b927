// Package platypus is a ray-cast 2D platformer character controller. A Body
// consumes per-frame movement and jump intents, probes level geometry through
// a host-provided RayCaster and resolves velocity, position correction,
// ground/wall state and the discrete events of each state transition.
package platypus

import (
	"fmt"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
)

// Wall contact values. The sign names the blocked side.
const (
	wallNone  = 0
	wallLeft  = 1
	wallRight = -1
)

// AbortJumpReduction is the conventional vertical velocity factor for
// cutting a jump short on early key release.
const AbortJumpReduction = 0.5

// contactState is one snapshot of the contact classification and airborne
// sub-states. Two snapshots are kept and swapped at a single point per frame
// so transition edges can be detected against the previous frame.
type contactState struct {
	wallContact int
	ground      bool
	falling     bool
	wallSlide   bool
	wallJump    bool
	doubleJump  bool
	slope       cp.Vector
	hasSlope    bool
	surface     uint64
}

// Body is a character controller instance. It is owned by a single
// game-logic goroutine; intent calls and Update must not race.
type Body struct {
	cfg    Config
	rays   RayCaster
	drawer DebugDrawer

	listener Listener
	queue    eventQueue

	pos      cp.Vector
	velocity cp.Vector
	movement cp.Vector

	current  contactState
	previous contactState

	probes [rayCount]probe
	groups []string
	// up is the Y sign of the axis opposing gravity.
	up    float64
	debug bool
}

// New validates cfg and creates a body at position pos. rays is required.
func New(cfg Config, rays RayCaster, pos cp.Vector) (*Body, error) {
	if rays == nil {
		return nil, fmt.Errorf("platypus: a ray caster is required")
	}
	b := &Body{rays: rays, pos: pos}
	if err := b.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return b, nil
}

// Reconfigure swaps the settings of a live body. The new config is validated
// like at construction; on error the body keeps its previous settings. The
// debug drawing flag follows the config, so a ToggleDebug override lasts
// until the next Reconfigure.
func (b *Body) Reconfigure(cfg Config) error {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return err
	}
	b.cfg = cfg
	b.debug = cfg.Debug
	b.up = -math.Copysign(1, cfg.Gravity)
	b.probes = buildProbes(&b.cfg, b.up)
	b.groups = b.groups[:0]
	for name := range cfg.Groups {
		b.groups = append(b.groups, name)
	}
	sort.Strings(b.groups)
	return nil
}

// SetListener registers the event receiver. Events are flushed in order once
// per Update.
func (b *Body) SetListener(l Listener) {
	b.listener = l
}

// SetDebugDrawer registers the optional probe drawer used while debug
// drawing is toggled on.
func (b *Body) SetDebugDrawer(d DebugDrawer) {
	b.drawer = d
}

// Position returns the body's world position.
func (b *Body) Position() cp.Vector {
	return b.pos
}

// SetPosition moves the body without collision resolution. The next Update
// probes from the new position.
func (b *Body) SetPosition(pos cp.Vector) {
	b.pos = pos
}

// Velocity returns the current velocity.
func (b *Body) Velocity() cp.Vector {
	return b.velocity
}

// SetVelocity overrides the current velocity, for host mechanics such as
// springs or knockback that bypass the intent API.
func (b *Body) SetVelocity(v cp.Vector) {
	b.velocity = v
}

// Attachment returns the id of the supporting surface while the body has
// ground contact. The host applies any scene-graph parenting itself.
func (b *Body) Attachment() (uint64, bool) {
	return b.current.surface, b.current.surface != 0
}

// ToggleDebug flips probe debug drawing. No physical effect.
func (b *Body) ToggleDebug() {
	b.debug = !b.debug
}

// Left requests leftward movement for the next update. The request is
// dropped while a wall blocks the left side; pressing into that wall while
// falling starts a wall slide instead when the feature is enabled.
func (b *Body) Left(speed float64) {
	checkSpeed("left", speed)
	if b.current.wallContact == wallLeft {
		b.tryWallSlide()
		return
	}
	b.movement.X = -speed
}

// Right mirrors Left for the right side.
func (b *Body) Right(speed float64) {
	checkSpeed("right", speed)
	if b.current.wallContact == wallRight {
		b.tryWallSlide()
		return
	}
	b.movement.X = speed
}

// Up requests movement against gravity for the next update, e.g. climbing.
func (b *Body) Up(speed float64) {
	checkSpeed("up", speed)
	b.movement.Y = b.up * speed
}

// Down requests movement along gravity for the next update.
func (b *Body) Down(speed float64) {
	checkSpeed("down", speed)
	b.movement.Y = -b.up * speed
}

// Move sets the full movement intent directly, superseding any Left, Right,
// Up or Down request made this frame.
func (b *Body) Move(v cp.Vector) {
	b.movement = v
}

// Jump is state dependent: a ground jump when grounded, a wall jump while in
// wall contact, a double jump while ascending, otherwise silently ignored so
// hosts can forward raw jump input without their own state checks.
func (b *Body) Jump(power float64) {
	checkPower("jump", power)
	switch {
	case b.current.ground:
		b.current.ground = false
		b.current.surface = 0
		b.velocity.Y = b.up * power
		b.queue.push(EventJump)
	case b.current.wallContact != wallNone && b.cfg.AllowWallJump:
		b.wallJump(power)
	case b.cfg.AllowDoubleJump && b.ascending() && !b.current.doubleJump:
		b.current.doubleJump = true
		b.velocity.Y += b.up * power
		b.queue.push(EventDoubleJump)
	}
}

func (b *Body) wallJump(power float64) {
	side := float64(b.current.wallContact)
	push := side * power * b.cfg.WallJumpPowerRatioX
	// Holding into the wall halves the push-away unless wall jumps are
	// configured as constant.
	if !b.cfg.ConstWallJump && b.movement.X*side < 0 {
		push *= 0.5
	}
	b.current.wallJump = true
	b.current.wallSlide = false
	b.velocity = cp.Vector{X: push, Y: b.up * power * b.cfg.WallJumpPowerRatioY}
	b.queue.push(EventWallJump)
}

// ForceJump sets the vertical velocity to power regardless of contact state,
// for mechanics without ground or wall semantics (ropes, springs).
func (b *Body) ForceJump(power float64) {
	checkPower("force jump", power)
	b.velocity.Y = b.up * power
	b.queue.push(EventJump)
}

// AbortJump scales the vertical velocity by reduction while ascending, for
// variable jump height on early key release. A no-op while not ascending.
func (b *Body) AbortJump(reduction float64) {
	if reduction <= 0 || reduction > 1 {
		panic(fmt.Sprintf("platypus: abort jump: reduction %v outside (0, 1]", reduction))
	}
	if b.ascending() {
		b.velocity.Y *= reduction
	}
}

// AbortWallSlide force-clears an active wall slide, e.g. on key release.
func (b *Body) AbortWallSlide() {
	b.current.wallSlide = false
}

func (b *Body) tryWallSlide() {
	if !b.cfg.AllowWallSlide || !b.current.falling || b.current.wallSlide {
		return
	}
	b.current.wallSlide = true
	b.velocity.Y = 0
	b.queue.push(EventWallSlide)
}

// HasGroundContact reports whether the body rests on a walkable surface.
func (b *Body) HasGroundContact() bool {
	return b.current.ground
}

// HasWallContact reports whether a side probe blocks either side.
func (b *Body) HasWallContact() bool {
	return b.current.wallContact != wallNone
}

// WallContact returns the blocked side: 1 for a wall on the left, -1 for a
// wall on the right, 0 for none.
func (b *Body) WallContact() int {
	return b.current.wallContact
}

// IsFalling reports whether the body is airborne and moving with gravity.
func (b *Body) IsFalling() bool {
	return b.current.falling
}

// IsJumping reports whether the body is airborne and moving against gravity.
func (b *Body) IsJumping() bool {
	return !b.current.ground && b.ascending()
}

// IsWallJumping reports whether the current airborne interval started with a
// wall jump.
func (b *Body) IsWallJumping() bool {
	return b.current.wallJump
}

// IsWallSliding reports whether a wall slide is active.
func (b *Body) IsWallSliding() bool {
	return b.current.wallSlide
}

func (b *Body) ascending() bool {
	return b.velocity.Y*b.up > 0
}

// Update advances the body by dt seconds: gravity, velocity clamp, slope
// deflection of the movement intent, probe resolution, position correction,
// transition events, then the buffer swap and transient reset.
func (b *Body) Update(dt float64) {
	if b == nil || dt <= 0 {
		return
	}

	// A supporting surface that was removed must not leave the body standing
	// on air, nor free-falling through the space it occupied: detach now and
	// let this frame's down probes re-resolve from the current position.
	if b.current.surface != 0 && !b.rays.Exists(b.current.surface) {
		b.current.surface = 0
		b.current.ground = false
	}

	switch {
	case b.current.wallSlide:
		b.velocity.Y += b.cfg.WallSlideGravity * dt
	case !b.current.ground:
		b.velocity.Y += b.cfg.Gravity * dt
	default:
		// Grounded vertical velocity is held at zero; slope walking is
		// driven by intent deflection, not residual velocity.
		b.velocity.Y = 0
	}

	if max := b.cfg.MaxVelocity; max > 0 {
		b.velocity.X = clamp(b.velocity.X, max)
		b.velocity.Y = clamp(b.velocity.Y, max)
	}

	movement := b.movement
	if b.current.hasSlope && movement.X != 0 {
		movement = deflect(movement, b.current.slope)
	}

	tentative := b.pos.Add(b.velocity.Add(movement).Mult(dt))
	res := b.resolve(tentative)
	b.pos = tentative.Add(res.correction)

	if res.ceiling && b.ascending() {
		b.velocity.Y = 0
	}

	if b.current.ground && !b.previous.ground {
		b.velocity = cp.Vector{}
		b.current.doubleJump = false
		b.current.wallJump = false
		b.current.wallSlide = false
		b.queue.pushSurface(EventGroundContact, b.current.surface)
	}

	b.current.falling = !b.current.ground && !b.ascending()
	if b.current.falling && !b.previous.falling {
		b.queue.push(EventFalling)
	}

	if b.current.wallContact != wallNone && b.current.wallContact != b.previous.wallContact {
		b.queue.push(EventWallContact)
	}
	if b.current.wallSlide && b.current.wallContact == wallNone {
		b.current.wallSlide = false
	}

	if b.current.surface != b.previous.surface {
		b.queue.pushSurface(EventParent, b.current.surface)
	}

	b.previous = b.current
	b.movement = cp.Vector{}
	b.flush()
}

func (b *Body) flush() {
	events := b.queue.drain()
	if b.listener == nil {
		return
	}
	for _, e := range events {
		b.listener(e)
	}
}

// deflect projects the horizontal part of the movement intent onto the slope
// contact plane so walking into a rising slope climbs it and walking down a
// falling slope follows it, without floating or clipping. Vertical intent is
// passed through.
func deflect(movement, normal cp.Vector) cp.Vector {
	h := cp.Vector{X: movement.X}
	along := h.Sub(normal.Mult(h.Dot(normal)))
	return cp.Vector{X: along.X, Y: along.Y + movement.Y}
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func checkSpeed(op string, speed float64) {
	if speed <= 0 {
		panic(fmt.Sprintf("platypus: %s: speed %v must be positive", op, speed))
	}
}

func checkPower(op string, power float64) {
	if power <= 0 {
		panic(fmt.Sprintf("platypus: %s: power %v must be positive", op, power))
	}
}
