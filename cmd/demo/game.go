package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/britzl/platypus"
	"github.com/britzl/platypus/prefabs"
	"github.com/britzl/platypus/world"
)

const (
	baseWidth  = 960
	baseHeight = 544

	moveSpeed = 220
	jumpPower = 560

	eventLogLines = 6
)

type Game struct {
	frames int

	input  *Input
	wld    *world.World
	body   *platypus.Body
	drawer *lineDrawer

	platformID   uint64
	platformSeq  *gween.Sequence
	platformBase cp.Vector
	platformPrev cp.Vector

	watcher    *prefabs.Watcher
	tuningPath string
	// Drawn body extents, kept in sync with the loaded tuning.
	bodyL, bodyR, bodyT, bodyB float64

	paused bool
	ui     *ebitenui.UI

	events []string
}

func NewGame(tuningPath string, debug bool) (*Game, error) {
	spec, err := prefabs.LoadBodySpec(tuningPath)
	if err != nil {
		return nil, err
	}
	cfg, err := spec.Config()
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}

	wld := world.New()
	if err := buildLevel(wld); err != nil {
		return nil, err
	}

	base := cp.Vector{X: 15 * tileSize, Y: 10 * tileSize}
	platformID, err := wld.AddPlatform(platformGroup, base, 3*tileSize, 12)
	if err != nil {
		return nil, err
	}

	g := &Game{
		input:        NewInput(),
		wld:          wld,
		drawer:       &lineDrawer{},
		platformID:   platformID,
		platformBase: base,
		platformPrev: base,
		tuningPath:   tuningPath,
	}

	spawn := cp.Vector{X: 3.5 * tileSize, Y: 13 * tileSize}
	body, err := platypus.New(cfg, wld, spawn)
	if err != nil {
		return nil, err
	}
	body.SetDebugDrawer(g.drawer)
	body.SetListener(g.onEvent)
	g.body = body
	g.setExtents(cfg)

	// Back and forth over five tiles.
	g.platformSeq = gween.NewSequence(
		gween.New(0, 5*tileSize, 2.5, ease.InOutQuad),
		gween.New(5*tileSize, 0, 2.5, ease.InOutQuad),
	)

	watcher, err := prefabs.NewWatcher(filepath.Dir(tuningPath))
	if err != nil {
		log.Printf("tuning watch disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) setExtents(cfg platypus.Config) {
	g.bodyL, g.bodyR = cfg.Left, cfg.Right
	g.bodyT, g.bodyB = cfg.Top, cfg.Bottom
}

func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
	}
}

func (g *Game) onEvent(e platypus.Event) {
	msg := fmt.Sprintf("%6d  %s", g.frames, e.Kind)
	if e.Kind == platypus.EventParent || e.Kind == platypus.EventGroundContact {
		msg += fmt.Sprintf(" (surface %d)", e.Surface)
	}
	g.events = append(g.events, msg)
	if len(g.events) > eventLogLines {
		g.events = g.events[len(g.events)-eventLogLines:]
	}
}

// reloadTuning drains the file watcher and reconfigures the body on edits. A
// bad tuning file logs and keeps the previous settings.
func (g *Game) reloadTuning() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			spec, err := prefabs.LoadBodySpec(path)
			if err != nil {
				log.Printf("tuning reload: %v", err)
				continue
			}
			cfg, err := spec.Config()
			if err != nil {
				log.Printf("tuning reload: %v", err)
				continue
			}
			if err := g.body.Reconfigure(cfg); err != nil {
				log.Printf("tuning reload: %v", err)
				continue
			}
			g.setExtents(cfg)
			log.Printf("reloaded tuning from %s", path)
		case err := <-g.watcher.Errors:
			log.Printf("tuning watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.frames++
	g.input.Update()

	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	if g.input.DebugPressed {
		g.body.ToggleDebug()
	}
	g.reloadTuning()

	const dt = 1.0 / 60.0

	// Move the platform before the body updates so a standing body rides this
	// frame's motion instead of trailing a frame behind.
	offset, _, seqDone := g.platformSeq.Update(dt)
	if seqDone {
		g.platformSeq.Reset()
	}
	pos := cp.Vector{X: g.platformBase.X + float64(offset), Y: g.platformBase.Y}
	g.wld.SetPlatformPosition(g.platformID, pos)
	if id, ok := g.body.Attachment(); ok && id == g.platformID {
		g.body.SetPosition(g.body.Position().Add(pos.Sub(g.platformPrev)))
	}
	g.platformPrev = pos

	switch {
	case g.input.MoveX < 0:
		g.body.Left(moveSpeed)
	case g.input.MoveX > 0:
		g.body.Right(moveSpeed)
	default:
		if g.body.IsWallSliding() {
			g.body.AbortWallSlide()
		}
	}
	if g.input.JumpPressed {
		g.body.Jump(jumpPower)
	}
	if g.input.JumpReleased {
		g.body.AbortJump(platypus.AbortJumpReduction)
	}

	g.body.Update(dt)
	return nil
}

func (g *Game) state() string {
	switch {
	case g.body.IsWallSliding():
		return "wall slide"
	case g.body.IsWallJumping():
		return "wall jump"
	case g.body.IsJumping():
		return "jumping"
	case g.body.IsFalling():
		return "falling"
	case g.body.HasGroundContact():
		return "grounded"
	}
	return "idle"
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawLevel(screen)

	if pos, ok := g.wld.PlatformPosition(g.platformID); ok {
		vector.DrawFilledRect(screen,
			float32(pos.X-1.5*tileSize), float32(pos.Y-6),
			3*tileSize, 12, platformColor, false)
	}

	pos := g.body.Position()
	vector.DrawFilledRect(screen,
		float32(pos.X-g.bodyL), float32(pos.Y-g.bodyT),
		float32(g.bodyL+g.bodyR), float32(g.bodyT+g.bodyB), bodyColor, false)

	g.drawer.Draw(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.0f    state: %s    pos: %.0f,%.0f    wall: %d",
		ebiten.ActualFPS(), g.state(), pos.X, pos.Y, g.body.WallContact()))
	for i, line := range g.events {
		ebitenutil.DebugPrintAt(screen, line, 8, 24+i*14)
	}

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
