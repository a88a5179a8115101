// Package layout maps screen coordinates to board cells for tile-based
// renderers.
package layout

// Grid places a Rows x Cols board on a screen. Origin is the top-left corner
// of cell (0, 0); every tile is TileWidth x TileHeight units (pixels or
// terminal cells).
type Grid struct {
	OriginX, OriginY      int
	TileWidth, TileHeight int
	Rows, Cols            int
}

// CellAt returns the board cell under the screen point. ok is false when the
// point is outside the grid.
func (g Grid) CellAt(x, y int) (row, col int, ok bool) {
	if g.TileWidth <= 0 || g.TileHeight <= 0 {
		return 0, 0, false
	}
	dx, dy := x-g.OriginX, y-g.OriginY
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	row, col = dy/g.TileHeight, dx/g.TileWidth
	if row >= g.Rows || col >= g.Cols {
		return 0, 0, false
	}
	return row, col, true
}

// Origin returns the top-left screen point of a cell.
func (g Grid) Origin(row, col int) (x, y int) {
	return g.OriginX + col*g.TileWidth, g.OriginY + row*g.TileHeight
}

// Size returns the total width and height covered by the grid.
func (g Grid) Size() (width, height int) {
	return g.Cols * g.TileWidth, g.Rows * g.TileHeight
}

// Rect is an axis-aligned screen area such as a menu button.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Row lays out rectangles of the given widths left to right, gap apart,
// starting at (x, y).
func Row(x, y, height, gap int, widths ...int) []Rect {
	rects := make([]Rect, len(widths))
	for i, w := range widths {
		rects[i] = Rect{X: x, Y: y, Width: w, Height: height}
		x += w + gap
	}
	return rects
}
