package board

// Content is what a cell hides. It is either a Mine or a Numbered cell and
// cannot be anything else outside this package.
type Content interface {
	content()
}

// Mine is the content of a cell that loses the game when revealed.
type Mine struct{}

// Numbered is the content of a safe cell. Adjacent is the number of mines in
// its Moore neighborhood (0-8).
type Numbered struct {
	Adjacent int
}

func (Mine) content()     {}
func (Numbered) content() {}

// Cell is a single square of the board.
type Cell struct {
	content  Content
	revealed bool
	flagged  bool
}

func numberedCell(adjacent int) Cell {
	return Cell{content: Numbered{Adjacent: adjacent}}
}

func mineCell() Cell {
	return Cell{content: Mine{}}
}

// Content returns the cell's hidden content.
func (c Cell) Content() Content {
	return c.content
}

// IsMine reports whether the cell hides a mine.
func (c Cell) IsMine() bool {
	_, ok := c.content.(Mine)
	return ok
}

// AdjacentMines returns the neighborhood mine count. ok is false for mines.
func (c Cell) AdjacentMines() (count int, ok bool) {
	n, ok := c.content.(Numbered)
	if !ok {
		return 0, false
	}
	return n.Adjacent, true
}

// Revealed reports whether the cell has been uncovered.
func (c Cell) Revealed() bool {
	return c.revealed
}

// Flagged reports whether the cell carries a flag.
func (c Cell) Flagged() bool {
	return c.flagged
}

// valid reports whether the cell holds one of the two known contents with a
// count in range.
func (c Cell) valid() bool {
	switch v := c.content.(type) {
	case Mine:
		return true
	case Numbered:
		return v.Adjacent >= 0 && v.Adjacent <= 8
	default:
		return false
	}
}

func (c *Cell) reveal() {
	c.revealed = true
}

func (c *Cell) toggleFlag() {
	c.flagged = !c.flagged
}
