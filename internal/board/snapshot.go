package board

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what a player can see of a cell.
type CellState int

const (
	// Hidden is an unrevealed, unflagged cell.
	Hidden CellState = iota
	// Flagged is an unrevealed cell carrying a flag.
	Flagged
	// Revealed is an uncovered cell.
	Revealed
)

// String returns a human-readable state name.
func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Display markers used by the text rendering.
const (
	HiddenMarker = "?"
	FlagMarker   = "F"
	MineMarker   = "*"
)

// CellView is the read-only state of one cell. Mine and Adjacent are always
// filled in; presentation layers decide whether to show them.
type CellView struct {
	State    CellState
	Mine     bool
	Adjacent int
}

// Symbol returns the text marker for the cell as a player sees it.
func (v CellView) Symbol() string {
	switch {
	case v.State == Flagged:
		return FlagMarker
	case v.State == Hidden:
		return HiddenMarker
	case v.Mine:
		return MineMarker
	default:
		return strconv.Itoa(v.Adjacent)
	}
}

// Snapshot is a copy of the visible board state.
type Snapshot struct {
	Height   int
	Width    int
	Mines    int
	Revealed int
	Flagged  int
	Cells    [][]CellView
}

// Snapshot copies the current board state.
func (b *Board) Snapshot() Snapshot {
	cells := make([][]CellView, b.height)
	for row := range cells {
		cells[row] = make([]CellView, b.width)
		for col := range cells[row] {
			cells[row][col] = viewOf(*b.at(row, col))
		}
	}
	return Snapshot{
		Height:   b.height,
		Width:    b.width,
		Mines:    b.mines,
		Revealed: b.revealed,
		Flagged:  b.flagged,
		Cells:    cells,
	}
}

func viewOf(c Cell) CellView {
	v := CellView{State: Hidden}
	switch content := c.Content().(type) {
	case Mine:
		v.Mine = true
	case Numbered:
		v.Adjacent = content.Adjacent
	}

	switch {
	case c.Revealed():
		v.State = Revealed
	case c.Flagged():
		v.State = Flagged
	}
	return v
}

// String renders the snapshot as a text grid with headers and counters.
func (s Snapshot) String() string {
	var sb strings.Builder

	labelWidth := len(strconv.Itoa(s.Height - 1))
	colWidth := len(strconv.Itoa(s.Width-1)) + 2
	if colWidth < 3 {
		colWidth = 3
	}

	pad := strings.Repeat(" ", labelWidth+1)
	hline := pad + "+" + strings.Repeat(strings.Repeat("-", colWidth)+"+", s.Width) + "\n"

	header := pad + " "
	for col := 0; col < s.Width; col++ {
		header += center(strconv.Itoa(col), colWidth) + " "
	}
	sb.WriteString(strings.TrimRight(header, " ") + "\n")

	for row := 0; row < s.Height; row++ {
		sb.WriteString(hline)
		fmt.Fprintf(&sb, "%*d |", labelWidth, row)
		for col := 0; col < s.Width; col++ {
			fmt.Fprintf(&sb, "%s|", center(s.Cells[row][col].Symbol(), colWidth))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(hline)

	fmt.Fprintf(&sb, "\nFlags placed: %d\n", s.Flagged)
	fmt.Fprintf(&sb, "Cells revealed: %d\n", s.Revealed)
	return sb.String()
}

func center(s string, width int) string {
	gap := width - len(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// String renders the board the way a player sees it.
func (b *Board) String() string {
	return b.Snapshot().String()
}
