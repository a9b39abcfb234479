package core

// HalfBlock packs two pixel rows into one terminal cell: the foreground
// paints the upper half, the background the lower half.
const HalfBlock = '▀'

// Raster maps frame pixels onto screen cells. Each cell covers SX pixels
// horizontally and 2*SY pixels vertically.
type Raster struct {
	OX, OY int // Top-left cell of the drawing
	SX, SY int // Pixels per cell column and per half cell
}

// FitRaster picks the smallest integer scale that fits a w×h frame into a
// cols×rows area.
func FitRaster(w, h, cols, rows int) Raster {
	r := Raster{SX: 1, SY: 1}
	if cols > 0 {
		r.SX = max(1, CeilDiv(w, cols))
	}
	if rows > 0 {
		r.SY = max(1, CeilDiv(h, 2*rows))
	}
	return r
}

// Size returns the number of cells a w×h frame occupies.
func (r Raster) Size(w, h int) (cols, rows int) {
	return CeilDiv(w, r.SX), CeilDiv(h, 2*r.SY)
}

// Draw paints a w×h frame. at returns the role of pixel (x, y); within a
// block the highest role wins so small objects survive downscaling.
func (r Raster) Draw(s *Screen, w, h int, at func(x, y int) Color) {
	cols, rows := r.Size(w, h)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := r.block(w, h, cx*r.SX, 2*cy*r.SY, at)
			bottom := r.block(w, h, cx*r.SX, (2*cy+1)*r.SY, at)
			s.SetCell(r.OX+cx, r.OY+cy, halfCell(top, bottom))
		}
	}
}

// Plot overrides the half cell holding pixel (x, y).
func (r Raster) Plot(s *Screen, x, y int, c Color) {
	if x < 0 || y < 0 {
		return
	}
	cx := r.OX + x/r.SX
	cy := r.OY + y/(2*r.SY)
	cell := s.GetCell(cx, cy)
	if cell.Rune != HalfBlock {
		cell = Cell{Rune: HalfBlock}
	}
	if (y/r.SY)%2 == 0 {
		cell.Fg = c
	} else {
		cell.Bg = c
	}
	s.SetCell(cx, cy, cell)
}

func (r Raster) block(w, h, x0, y0 int, at func(x, y int) Color) Color {
	best := ColorDefault
	for y := y0; y < y0+r.SY && y < h; y++ {
		for x := x0; x < x0+r.SX && x < w; x++ {
			if c := at(x, y); c > best {
				best = c
			}
		}
	}
	return best
}

func halfCell(top, bottom Color) Cell {
	if top == ColorDefault && bottom == ColorDefault {
		return blank
	}
	return Cell{Rune: HalfBlock, Fg: top, Bg: bottom}
}
