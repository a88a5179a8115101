// Package board provides the Minesweeper board model: mine placement,
// adjacency counts, reveal and flag operations, and victory evaluation.
package board

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	// Classic board used when nothing else is configured.
	DefaultHeight = 8
	DefaultWidth  = 8
	DefaultMines  = 15

	// MaxDimension caps rows and columns so a board always fits in memory.
	MaxDimension = 1000
)

// Params describes the board to generate.
type Params struct {
	Height int
	Width  int
	Mines  int
}

// DefaultParams returns the classic 8x8 board with 15 mines.
func DefaultParams() Params {
	return Params{Height: DefaultHeight, Width: DefaultWidth, Mines: DefaultMines}
}

// Cells returns the total number of cells.
func (p Params) Cells() int {
	return p.Height * p.Width
}

// Validate checks that the parameters describe a playable board.
func (p Params) Validate() error {
	switch {
	case p.Height <= 0:
		return &ConfigError{p.Height, p.Width, p.Mines, "height must be positive"}
	case p.Width <= 0:
		return &ConfigError{p.Height, p.Width, p.Mines, "width must be positive"}
	case p.Height > MaxDimension || p.Width > MaxDimension:
		return &ConfigError{p.Height, p.Width, p.Mines,
			fmt.Sprintf("at most %d rows and columns", MaxDimension)}
	case p.Height > math.MaxInt/p.Width:
		return &ConfigError{p.Height, p.Width, p.Mines, "too many cells"}
	case p.Mines < 0:
		return &ConfigError{p.Height, p.Width, p.Mines, "mine count cannot be negative"}
	case p.Mines >= p.Cells():
		return &ConfigError{p.Height, p.Width, p.Mines,
			fmt.Sprintf("too many mines, at most %d fit", p.Cells()-1)}
	}
	return nil
}

// Point is a (row, col) coordinate on the board.
type Point struct {
	Row, Col int
}

// Board is the full game grid. It is not safe for concurrent use.
type Board struct {
	height int
	width  int
	mines  int
	cells  [][]Cell

	revealed     int
	safeRevealed int
	flagged      int
}

// New generates a board with mines placed uniformly at random. A nil rng
// uses a time-seeded source.
func New(p Params, rng *rand.Rand) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := newEmpty(p)
	b.placeMines(rng.Perm(p.Cells())[:p.Mines])
	b.computeAdjacency()
	return b, nil
}

// NewWithMines builds a board with mines at exactly the given points.
func NewWithMines(height, width int, mines []Point) (*Board, error) {
	p := Params{Height: height, Width: width, Mines: len(mines)}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[Point]bool, len(mines))
	indexes := make([]int, 0, len(mines))
	for _, m := range mines {
		if !p.contains(m.Row, m.Col) {
			return nil, &ConfigError{height, width, len(mines),
				fmt.Sprintf("mine (%d, %d) is outside the grid", m.Row, m.Col)}
		}
		if seen[m] {
			return nil, &ConfigError{height, width, len(mines),
				fmt.Sprintf("duplicate mine at (%d, %d)", m.Row, m.Col)}
		}
		seen[m] = true
		indexes = append(indexes, m.Row*width+m.Col)
	}

	b := newEmpty(p)
	b.placeMines(indexes)
	b.computeAdjacency()
	return b, nil
}

func newEmpty(p Params) *Board {
	cells := make([][]Cell, p.Height)
	for row := range cells {
		cells[row] = make([]Cell, p.Width)
		for col := range cells[row] {
			cells[row][col] = numberedCell(0)
		}
	}
	return &Board{
		height: p.Height,
		width:  p.Width,
		mines:  p.Mines,
		cells:  cells,
	}
}

// placeMines turns the cells at the given row-major indexes into mines.
func (b *Board) placeMines(indexes []int) {
	for _, i := range indexes {
		b.set(i/b.width, i%b.width, mineCell())
	}
}

// computeAdjacency fills in the neighborhood count of every safe cell.
func (b *Board) computeAdjacency() {
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			if b.at(row, col).IsMine() {
				continue
			}
			count := 0
			b.forEachNeighbor(row, col, func(r, c int) {
				if b.at(r, c).IsMine() {
					count++
				}
			})
			b.set(row, col, numberedCell(count))
		}
	}
}

// forEachNeighbor calls fn for each in-bounds cell of the Moore neighborhood.
func (b *Board) forEachNeighbor(row, col int, fn func(r, c int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if b.inBounds(r, c) {
				fn(r, c)
			}
		}
	}
}

func (p Params) contains(row, col int) bool {
	return row >= 0 && row < p.Height && col >= 0 && col < p.Width
}

func (b *Board) inBounds(row, col int) bool {
	return b.Params().contains(row, col)
}

// at returns a pointer to the stored cell. Callers must pass valid
// coordinates.
func (b *Board) at(row, col int) *Cell {
	if !b.inBounds(row, col) {
		panic(fmt.Sprintf("board: at(%d, %d) outside %dx%d grid", row, col, b.height, b.width))
	}
	c := &b.cells[row][col]
	if !c.valid() {
		panic(fmt.Sprintf("board: malformed cell at (%d, %d)", row, col))
	}
	return c
}

// set replaces a cell during generation.
func (b *Board) set(row, col int, c Cell) {
	if !b.inBounds(row, col) {
		panic(fmt.Sprintf("board: set(%d, %d) outside %dx%d grid", row, col, b.height, b.width))
	}
	if !c.valid() {
		panic(fmt.Sprintf("board: set(%d, %d) with malformed cell", row, col))
	}
	b.cells[row][col] = c
}

// Reveal uncovers exactly one cell. Revealing a mine is allowed; the caller
// decides that the game is lost by checking CellAt afterwards.
func (b *Board) Reveal(row, col int) error {
	if err := b.checkReveal(row, col); err != nil {
		return err
	}
	b.revealCell(row, col)
	return nil
}

// RevealArea uncovers the cell and, when it has no adjacent mines, the whole
// connected zero region plus its numbered border. Flagged cells are skipped.
// The revealed points are returned in reveal order.
func (b *Board) RevealArea(row, col int) ([]Point, error) {
	if err := b.checkReveal(row, col); err != nil {
		return nil, err
	}

	b.revealCell(row, col)
	revealed := []Point{{row, col}}

	queue := []Point{{row, col}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if n, ok := b.at(p.Row, p.Col).AdjacentMines(); !ok || n != 0 {
			continue
		}
		b.forEachNeighbor(p.Row, p.Col, func(r, c int) {
			cell := b.at(r, c)
			if cell.Revealed() || cell.Flagged() || cell.IsMine() {
				return
			}
			b.revealCell(r, c)
			revealed = append(revealed, Point{r, c})
			queue = append(queue, Point{r, c})
		})
	}

	return revealed, nil
}

func (b *Board) checkReveal(row, col int) error {
	if !b.inBounds(row, col) {
		return &MoveError{Op: "reveal", Row: row, Col: col, Err: ErrOutOfRange}
	}
	cell := b.at(row, col)
	if cell.Revealed() {
		return &MoveError{Op: "reveal", Row: row, Col: col, Err: ErrAlreadyRevealed}
	}
	if cell.Flagged() {
		return &MoveError{Op: "reveal", Row: row, Col: col, Err: ErrFlagged}
	}
	return nil
}

func (b *Board) revealCell(row, col int) {
	cell := b.at(row, col)
	cell.reveal()
	b.revealed++
	if !cell.IsMine() {
		b.safeRevealed++
	}
}

// ToggleFlag places or removes a flag on an unrevealed cell.
func (b *Board) ToggleFlag(row, col int) error {
	if !b.inBounds(row, col) {
		return &MoveError{Op: "flag", Row: row, Col: col, Err: ErrOutOfRange}
	}
	cell := b.at(row, col)
	if cell.Revealed() {
		return &MoveError{Op: "flag", Row: row, Col: col, Err: ErrAlreadyRevealed}
	}

	cell.toggleFlag()
	if cell.Flagged() {
		b.flagged++
	} else {
		b.flagged--
	}
	return nil
}

// CheckVictory reports whether every safe cell has been revealed. Flags do
// not matter.
func (b *Board) CheckVictory() bool {
	return b.safeRevealed == b.height*b.width-b.mines
}

// CellAt returns a copy of the cell at the given position.
func (b *Board) CellAt(row, col int) (Cell, error) {
	if !b.inBounds(row, col) {
		return Cell{}, &MoveError{Op: "cell", Row: row, Col: col, Err: ErrOutOfRange}
	}
	return *b.at(row, col), nil
}

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// MineCount returns the number of mines on the board.
func (b *Board) MineCount() int { return b.mines }

// RevealedCount returns how many cells are revealed, mines included.
func (b *Board) RevealedCount() int { return b.revealed }

// FlaggedCount returns how many cells are currently flagged.
func (b *Board) FlaggedCount() int { return b.flagged }

// Params returns the parameters the board was built with.
func (b *Board) Params() Params {
	return Params{Height: b.height, Width: b.width, Mines: b.mines}
}
