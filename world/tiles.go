package world

import "github.com/jakecoffman/cp"

// AddTiles registers box surfaces for every cell of the grid holding marker.
// Contiguous cells are merged greedily into larger rectangles (width first,
// then height) so probes cross fewer, larger surfaces instead of one box per
// tile. rows[0] is the top row; cell (x, y) covers the world rectangle
// [x*tileSize, (x+1)*tileSize) x [y*tileSize, (y+1)*tileSize).
func (w *World) AddTiles(group string, rows []string, marker byte, tileSize float64) ([]uint64, error) {
	height := len(rows)
	if height == 0 {
		return nil, nil
	}
	width := len(rows[0])

	at := func(x, y int) bool {
		return y >= 0 && y < height && x >= 0 && x < len(rows[y]) && rows[y][x] == marker
	}

	var ids []uint64
	processed := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] || !at(x, y) {
				continue
			}

			cw := 1
			for x+cw < width && at(x+cw, y) && !processed[y*width+x+cw] {
				cw++
			}

			ch := 1
		heightLoop:
			for y+ch < height {
				for xi := x; xi < x+cw; xi++ {
					if !at(xi, y+ch) || processed[(y+ch)*width+xi] {
						break heightLoop
					}
				}
				ch++
			}

			bb := cp.BB{
				L: float64(x) * tileSize,
				B: float64(y) * tileSize,
				R: float64(x+cw) * tileSize,
				T: float64(y+ch) * tileSize,
			}
			id, err := w.AddBox(group, bb)
			if err != nil {
				return ids, err
			}
			ids = append(ids, id)

			for yy := y; yy < y+ch; yy++ {
				for xx := x; xx < x+cw; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}
	return ids, nil
}
