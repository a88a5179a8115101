package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/minesweeper/internal/config"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

const testSeed = 99

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	cfg := config.Default()
	cfg.Seed = testSeed

	log := logrus.New()
	log.SetOutput(io.Discard)

	var out bytes.Buffer
	return New(strings.NewReader(input), &out, cfg, log, telemetry.NoopTracer()), &out
}

// firstBoardIndexes replays the mine shuffle a fresh session does for the
// given board size.
func firstBoardIndexes(cells int) []int {
	return rand.New(rand.NewSource(testSeed)).Perm(cells)
}

func TestRunWinThenLose(t *testing.T) {
	// 2x2 with 3 mines: the last index of the shuffle is the only safe cell.
	safe := firstBoardIndexes(4)[3]
	safeRow, safeCol := safe/2, safe%2

	// Default 8x8 board: the first index of the shuffle is a mine.
	mine := firstBoardIndexes(64)[0]
	mineRow, mineCol := mine/8, mine%8

	script := strings.Join([]string{
		"2", "2", "3",
		"x y",
		"5 5",
		fmt.Sprintf("%d %d F", safeRow, safeCol),
		fmt.Sprintf("%d %d", safeRow, safeCol),
		fmt.Sprintf("%d %d f", safeRow, safeCol),
		fmt.Sprintf("%d %d", safeRow, safeCol),
		"y",
		"",
		fmt.Sprintf("%d %d", mineRow, mineCol),
		"n",
	}, "\n") + "\n"

	c, out := newTestConsole(script)
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Invalid input:")
	assert.Contains(t, text, "That cell is outside the board.")
	assert.Contains(t, text, "That cell is flagged, remove the flag first.")
	assert.Contains(t, text, "You won!")
	assert.Contains(t, text, "Classic game: 8x8 with 15 mines.")
	assert.Contains(t, text, "GAME OVER!")
	assert.True(t, strings.HasSuffix(text, "Goodbye!\n"))

	assert.Less(t, strings.Index(text, "You won!"), strings.Index(text, "GAME OVER!"))
}

func TestRunRejectsImpossibleBoard(t *testing.T) {
	c, out := newTestConsole("2\n2\n4\n\n")
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Cannot create that board:")
	assert.Contains(t, text, "Classic game: 8x8 with 15 mines.")
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	c, out := newTestConsole("\n0 0 F\n")
	require.NoError(t, c.Run(context.Background()))

	require.NotNil(t, c.sess)
	assert.Equal(t, 1, c.sess.Board().FlaggedCount())
	assert.Contains(t, out.String(), "Flags placed: 1")
}

func TestRestartKeepsSessionForSameSettings(t *testing.T) {
	mine := firstBoardIndexes(64)[0]
	script := fmt.Sprintf("\n%d %d\ny\n\n", mine/8, mine%8)

	c, _ := newTestConsole(script)
	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, 2, c.sess.Games())
}

func TestRunSkipsOverlongLine(t *testing.T) {
	long := strings.Repeat("1", 100*1024)
	c, out := newTestConsole("\n" + long + "\n0 0 F\n")
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Invalid input: malformed input: line longer than")
	assert.Equal(t, 1, c.sess.Board().FlaggedCount())
}

func TestRunRejectsOversizedBoard(t *testing.T) {
	c, out := newTestConsole("100000\n100000\n1\n\n")
	require.NoError(t, c.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Cannot create that board:")
	assert.Contains(t, text, "Classic game: 8x8 with 15 mines.")
}
