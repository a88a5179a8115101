package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/minesweeper/internal/board"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		line string
		want Move
	}{
		{"2 3", Move{Row: 2, Col: 3, Action: ActionReveal}},
		{"  0   7 ", Move{Row: 0, Col: 7, Action: ActionReveal}},
		{"2 3 F", Move{Row: 2, Col: 3, Action: ActionFlag}},
		{"2 3 f", Move{Row: 2, Col: 3, Action: ActionFlag}},
		{"-1 3", Move{Row: -1, Col: 3, Action: ActionReveal}},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			move, err := ParseMove(test.line)
			require.NoError(t, err)
			assert.Equal(t, test.want, move)
		})
	}
}

func TestParseMoveMalformed(t *testing.T) {
	for _, line := range []string{"", "2", "a 3", "2 b", "2 3 X", "1 2 3 4", "2.5 3"} {
		t.Run(line, func(t *testing.T) {
			_, err := ParseMove(line)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestParseSetup(t *testing.T) {
	defaults := board.DefaultParams()

	choice := ParseSetup([]string{"10", " 12", "20 "}, defaults)
	assert.True(t, choice.Custom)
	assert.Equal(t, board.Params{Height: 10, Width: 12, Mines: 20}, choice.Params)

	choice = ParseSetup([]string{""}, defaults)
	assert.False(t, choice.Custom)
	assert.Equal(t, defaults, choice.Params)

	choice = ParseSetup([]string{"10", "x", "20"}, defaults)
	assert.False(t, choice.Custom)
	assert.Equal(t, defaults, choice.Params)

	// Out of range values are passed through for the board to reject.
	choice = ParseSetup([]string{"2", "2", "9"}, defaults)
	assert.True(t, choice.Custom)
	assert.Error(t, choice.Params.Validate())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "reveal", ActionReveal.String())
	assert.Equal(t, "flag", ActionFlag.String())
	assert.Equal(t, "unknown", Action(5).String())
}
