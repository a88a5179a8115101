package board

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for coordinates outside the grid.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrInvalidTransition is the parent of every rejected cell state change.
	ErrInvalidTransition = errors.New("invalid cell state transition")

	// ErrAlreadyRevealed is returned when revealing or flagging a revealed cell.
	ErrAlreadyRevealed = fmt.Errorf("%w: cell already revealed", ErrInvalidTransition)

	// ErrFlagged is returned when revealing a flagged cell. The flag has to be
	// removed first.
	ErrFlagged = fmt.Errorf("%w: cell is flagged", ErrInvalidTransition)
)

// ConfigError reports board parameters that cannot produce a board.
type ConfigError struct {
	Height int
	Width  int
	Mines  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid board %dx%d with %d mines: %s", e.Height, e.Width, e.Mines, e.Reason)
}

// MoveError is a rejected Reveal or ToggleFlag. It unwraps to one of the
// sentinel errors above.
type MoveError struct {
	Op  string
	Row int
	Col int
	Err error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s (%d, %d): %v", e.Op, e.Row, e.Col, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
