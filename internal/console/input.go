package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samdwyer/minesweeper/internal/board"
)

// ErrMalformedInput is returned for lines that are not a valid move.
var ErrMalformedInput = errors.New("malformed input")

// Action is what a move does to the target cell.
type Action int

const (
	// ActionReveal uncovers the cell.
	ActionReveal Action = iota
	// ActionFlag toggles the flag on the cell.
	ActionFlag
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionReveal:
		return "reveal"
	case ActionFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Move is a parsed line of player input.
type Move struct {
	Row, Col int
	Action   Action
}

// ParseMove reads "row col" (reveal) or "row col F" (toggle flag).
func ParseMove(line string) (Move, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 && len(fields) != 3 {
		return Move{}, fmt.Errorf("%w: expected \"row col\" or \"row col F\", got %d values", ErrMalformedInput, len(fields))
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return Move{}, fmt.Errorf("%w: row %q is not a number", ErrMalformedInput, fields[0])
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: column %q is not a number", ErrMalformedInput, fields[1])
	}

	move := Move{Row: row, Col: col, Action: ActionReveal}
	if len(fields) == 3 {
		if !strings.EqualFold(fields[2], "f") {
			return Move{}, fmt.Errorf("%w: unknown marker %q, use F to flag", ErrMalformedInput, fields[2])
		}
		move.Action = ActionFlag
	}
	return move, nil
}

// SetupChoice is the outcome of the board setup prompt.
type SetupChoice struct {
	Params board.Params
	// Custom is false when the defaults were chosen, either on purpose or
	// because an answer was not a number.
	Custom bool
}

// ParseSetup turns the rows/columns/mines answers into board parameters.
// An empty or non-numeric answer selects the defaults. The returned params
// are not validated.
func ParseSetup(answers []string, defaults board.Params) SetupChoice {
	if len(answers) != 3 {
		return SetupChoice{Params: defaults}
	}

	values := make([]int, len(answers))
	for i, a := range answers {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return SetupChoice{Params: defaults}
		}
		values[i] = n
	}

	return SetupChoice{
		Params: board.Params{Height: values[0], Width: values[1], Mines: values[2]},
		Custom: true,
	}
}
