package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/britzl/platypus"
)

type debugLine struct {
	from, to cp.Vector
	clr      color.Color
}

// lineDrawer buffers the probe lines reported during Update and strokes them
// on top of the frame.
type lineDrawer struct {
	lines []debugLine
}

var _ platypus.DebugDrawer = (*lineDrawer)(nil)

func (d *lineDrawer) DrawLine(from, to cp.Vector, clr color.Color) {
	d.lines = append(d.lines, debugLine{from: from, to: to, clr: clr})
}

func (d *lineDrawer) Draw(screen *ebiten.Image) {
	for _, l := range d.lines {
		vector.StrokeLine(screen,
			float32(l.from.X), float32(l.from.Y),
			float32(l.to.X), float32(l.to.Y),
			1, l.clr, false)
	}
	d.lines = d.lines[:0]
}
