package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStates(t *testing.T) {
	b, err := NewWithMines(2, 2, []Point{{0, 0}})
	require.NoError(t, err)
	require.NoError(t, b.ToggleFlag(0, 0))
	require.NoError(t, b.Reveal(1, 1))

	s := b.Snapshot()
	assert.Equal(t, CellView{State: Flagged, Mine: true}, s.Cells[0][0])
	assert.Equal(t, CellView{State: Hidden, Adjacent: 1}, s.Cells[0][1])
	assert.Equal(t, CellView{State: Revealed, Adjacent: 1}, s.Cells[1][1])
	assert.Equal(t, 1, s.Flagged)
	assert.Equal(t, 1, s.Revealed)

	// The snapshot is a copy.
	require.NoError(t, b.Reveal(1, 0))
	assert.Equal(t, Hidden, s.Cells[1][0].State)
}

func TestCellViewSymbol(t *testing.T) {
	assert.Equal(t, "?", CellView{State: Hidden, Mine: true}.Symbol())
	assert.Equal(t, "F", CellView{State: Flagged}.Symbol())
	assert.Equal(t, "*", CellView{State: Revealed, Mine: true}.Symbol())
	assert.Equal(t, "3", CellView{State: Revealed, Adjacent: 3}.Symbol())
	assert.Equal(t, "0", CellView{State: Revealed}.Symbol())
}

func TestBoardString(t *testing.T) {
	b, err := NewWithMines(2, 3, []Point{{0, 0}})
	require.NoError(t, err)
	require.NoError(t, b.ToggleFlag(0, 0))
	require.NoError(t, b.Reveal(1, 2))

	want := "" +
		"    0   1   2\n" +
		"  +---+---+---+\n" +
		"0 | F | ? | ? |\n" +
		"  +---+---+---+\n" +
		"1 | ? | ? | 0 |\n" +
		"  +---+---+---+\n" +
		"\n" +
		"Flags placed: 1\n" +
		"Cells revealed: 1\n"
	assert.Equal(t, want, b.String())
}

func TestBoardStringRevealedMine(t *testing.T) {
	b, err := NewWithMines(1, 2, []Point{{0, 1}})
	require.NoError(t, err)
	require.NoError(t, b.Reveal(0, 1))
	assert.Contains(t, b.String(), "0 | ? | * |")
}

func TestBoardStringWideGrid(t *testing.T) {
	b, err := New(Params{Height: 12, Width: 11, Mines: 0}, nil)
	require.NoError(t, err)

	out := b.String()
	assert.Contains(t, out, "   +----+")
	assert.Contains(t, out, " 9 | ?  |")
	assert.Contains(t, out, "11 | ?  |")
}

func TestCellStateString(t *testing.T) {
	assert.Equal(t, "hidden", Hidden.String())
	assert.Equal(t, "flagged", Flagged.String())
	assert.Equal(t, "revealed", Revealed.String())
	assert.Equal(t, "unknown", CellState(9).String())
}
