package ui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/gamedata"
	"github.com/samdwyer/minesweeper/internal/layout"
	"github.com/samdwyer/minesweeper/internal/session"
)

// TileWidth is how many terminal columns one board cell takes.
const TileWidth = 3

// View is everything drawn in one frame.
type View struct {
	Board   board.Snapshot
	State   session.State
	Cursor  board.Point
	Message string
}

// GridFor lays out a board below a header row and to the right of the row
// labels.
func GridFor(rows, cols int) layout.Grid {
	return layout.Grid{
		OriginX:    labelWidth(rows) + 1,
		OriginY:    1,
		TileWidth:  TileWidth,
		TileHeight: 1,
		Rows:       rows,
		Cols:       cols,
	}
}

func labelWidth(rows int) int {
	return len(strconv.Itoa(max(rows-1, 0)))
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	canvas Canvas
	theme  *gamedata.Theme
}

// NewRenderer creates a new renderer for the given canvas and theme.
func NewRenderer(canvas Canvas, theme *gamedata.Theme) *Renderer {
	return &Renderer{canvas: canvas, theme: theme}
}

// Render draws the board, its headers and the status lines.
func (r *Renderer) Render(v View) {
	r.canvas.Clear()

	grid := GridFor(v.Board.Height, v.Board.Width)
	header := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for col := 0; col < v.Board.Width; col++ {
		x, _ := grid.Origin(0, col)
		r.drawText(x+1, 0, strconv.Itoa(col), header)
	}

	exposeMines := v.State == session.Lost
	for row := 0; row < v.Board.Height; row++ {
		label := fmt.Sprintf("%*d", labelWidth(v.Board.Height), row)
		_, y := grid.Origin(row, 0)
		r.drawText(0, y, label, header)

		for col := 0; col < v.Board.Width; col++ {
			cursor := v.State == session.Playing && v.Cursor == board.Point{Row: row, Col: col}
			r.drawTile(grid, row, col, v.Board.Cells[row][col], exposeMines, cursor)
		}
	}

	_, gridHeight := grid.Size()
	statusY := grid.OriginY + gridHeight + 1
	r.RenderMessage(StatusLine(v), statusY)
	r.RenderMessage(v.Message, statusY+1)

	r.canvas.Show()
}

func (r *Renderer) drawTile(grid layout.Grid, row, col int, cell board.CellView, exposeMines, cursor bool) {
	g := r.theme.ForCell(cell, exposeMines)
	if g == nil {
		return
	}

	style := tcell.StyleDefault.Foreground(g.TCellColor()).Background(g.TCellTile())
	if cursor {
		style = style.Reverse(true)
	}

	x, y := grid.Origin(row, col)
	r.canvas.SetContent(x, y, ' ', style)
	r.canvas.SetContent(x+1, y, g.GlyphRune(), style.Bold(true))
	r.canvas.SetContent(x+2, y, ' ', style)
}

// StatusLine summarizes the game for the line under the board.
func StatusLine(v View) string {
	counts := fmt.Sprintf("Flags: %d/%d  Revealed: %d", v.Board.Flagged, v.Board.Mines, v.Board.Revealed)
	switch v.State {
	case session.Won:
		return counts + "  You won! Press r to play again."
	case session.Lost:
		return counts + "  GAME OVER! Press r to play again."
	default:
		return counts + "  [click/space] reveal  [right click/f] flag  [r] restart  [q] quit"
	}
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.drawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.canvas.SetContent(x+i, y, ch, style)
	}
}
