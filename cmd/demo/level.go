package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/britzl/platypus/world"
)

const tileSize = 32

const (
	groundGroup   = "ground"
	platformGroup = "platform"
)

// levelRows is the demo map, one character per tile. '#' is solid ground,
// '=' is a one-way platform that only blocks from above.
var levelRows = []string{
	"##############################",
	"#............................#",
	"#............................#",
	"#.......................######",
	"#............................#",
	"#..####......................#",
	"#............................#",
	"#...........====.............#",
	"#............................#",
	"#....##......................#",
	"#............................#",
	"#..........####....=====.....#",
	"#............................#",
	"#............................#",
	"#......................###...#",
	"#............................#",
	"##############################",
}

func buildLevel(w *world.World) error {
	if _, err := w.AddTiles(groundGroup, levelRows, '#', tileSize); err != nil {
		return err
	}
	_, err := w.AddTiles(platformGroup, levelRows, '=', tileSize)
	return err
}

var (
	groundColor   = color.RGBA{R: 0x3c, G: 0x50, B: 0x78, A: 0xff}
	platformColor = color.RGBA{R: 0x50, G: 0x96, B: 0x50, A: 0xff}
	bodyColor     = color.RGBA{R: 0xe6, G: 0xb4, B: 0x3c, A: 0xff}
)

func drawLevel(screen *ebiten.Image) {
	for y, row := range levelRows {
		for x := 0; x < len(row); x++ {
			var clr color.Color
			switch row[x] {
			case '#':
				clr = groundColor
			case '=':
				clr = platformColor
			default:
				continue
			}
			h := float32(tileSize)
			if row[x] == '=' {
				// One-way platforms are drawn as thin slabs at the top edge of
				// their tile so it is obvious which face blocks.
				h = 8
			}
			vector.DrawFilledRect(screen,
				float32(x*tileSize), float32(y*tileSize),
				tileSize, h, clr, false)
		}
	}
}
