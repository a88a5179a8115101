package session

// State represents where a game stands.
type State int

const (
	// Playing is the state of a game that accepts moves.
	Playing State = iota
	// Won means every safe cell was revealed.
	Won
	// Lost means a mine was revealed.
	Lost
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Over reports whether the game has ended.
func (s State) Over() bool {
	return s == Won || s == Lost
}
