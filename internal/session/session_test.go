package session

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/minesweeper/internal/board"
)

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Params == (board.Params{}) {
		opts.Params = board.DefaultParams()
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	if opts.Logger == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		opts.Logger = log
	}
	s, err := New(context.Background(), opts)
	require.NoError(t, err)
	return s
}

// useMines swaps in a board with a known layout.
func useMines(t *testing.T, s *Session, height, width int, mines ...board.Point) {
	t.Helper()
	b, err := board.NewWithMines(height, width, mines)
	require.NoError(t, err)
	s.board = b
	s.params = b.Params()
	s.state = Playing
}

func TestNew(t *testing.T) {
	s := newTestSession(t, Options{})
	assert.Equal(t, Playing, s.State())
	assert.Equal(t, board.DefaultParams(), s.Params())
	assert.Equal(t, 1, s.Games())
	assert.Equal(t, 64, s.Board().Height()*s.Board().Width())
}

func TestNewRejectsBadParams(t *testing.T) {
	_, err := New(context.Background(), Options{Params: board.Params{Height: 2, Width: 2, Mines: 4}})
	var cfgErr *board.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSameSeedSameBoard(t *testing.T) {
	s1 := newTestSession(t, Options{Seed: 77})
	s2 := newTestSession(t, Options{Seed: 77})
	assert.Equal(t, s1.Board().Snapshot(), s2.Board().Snapshot())

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			c1, _ := s1.Board().CellAt(row, col)
			c2, _ := s2.Board().CellAt(row, col)
			assert.Equal(t, c1.IsMine(), c2.IsMine())
		}
	}
}

func TestRevealMineLoses(t *testing.T) {
	s := newTestSession(t, Options{})
	useMines(t, s, 3, 3, board.Point{Row: 1, Col: 1})

	out, err := s.Reveal(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Playing, out.State)
	assert.Equal(t, []board.Point{{Row: 0, Col: 0}}, out.Revealed)

	out, err = s.Reveal(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Lost, out.State)
	assert.Equal(t, Lost, s.State())

	_, err = s.Reveal(context.Background(), 2, 2)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.ErrorIs(t, s.ToggleFlag(context.Background(), 2, 2), ErrGameOver)
	assert.Equal(t, 2, s.Board().RevealedCount())
}

func TestRevealAllSafeCellsWins(t *testing.T) {
	s := newTestSession(t, Options{})
	useMines(t, s, 2, 2, board.Point{Row: 0, Col: 0})
	ctx := context.Background()

	require.NoError(t, s.ToggleFlag(ctx, 0, 0))
	for _, p := range []board.Point{{Row: 0, Col: 1}, {Row: 1, Col: 0}} {
		out, err := s.Reveal(ctx, p.Row, p.Col)
		require.NoError(t, err)
		assert.Equal(t, Playing, out.State)
	}

	out, err := s.Reveal(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Won, out.State)
	assert.True(t, s.State().Over())
}

func TestRejectedMovesKeepPlaying(t *testing.T) {
	s := newTestSession(t, Options{})
	useMines(t, s, 3, 3, board.Point{Row: 0, Col: 0})
	ctx := context.Background()

	_, err := s.Reveal(ctx, 9, 9)
	assert.ErrorIs(t, err, board.ErrOutOfRange)

	require.NoError(t, s.ToggleFlag(ctx, 2, 2))
	_, err = s.Reveal(ctx, 2, 2)
	assert.ErrorIs(t, err, board.ErrFlagged)

	_, err = s.Reveal(ctx, 1, 1)
	require.NoError(t, err)
	_, err = s.Reveal(ctx, 1, 1)
	assert.ErrorIs(t, err, board.ErrAlreadyRevealed)
	assert.ErrorIs(t, s.ToggleFlag(ctx, 1, 1), board.ErrInvalidTransition)

	assert.Equal(t, Playing, s.State())
	assert.Equal(t, 1, s.Board().RevealedCount())
}

func TestCascadeRevealsRegion(t *testing.T) {
	s := newTestSession(t, Options{Cascade: true})
	useMines(t, s, 4, 4, board.Point{Row: 0, Col: 0})

	out, err := s.Reveal(context.Background(), 3, 3)
	require.NoError(t, err)
	assert.Len(t, out.Revealed, 15)
	assert.Equal(t, Won, out.State)
}

func TestRestart(t *testing.T) {
	s := newTestSession(t, Options{})
	useMines(t, s, 8, 8, board.Point{Row: 0, Col: 0})
	ctx := context.Background()

	_, err := s.Reveal(ctx, 0, 0)
	require.NoError(t, err)
	require.Equal(t, Lost, s.State())
	old := s.Board()

	require.NoError(t, s.Restart(ctx))
	assert.Equal(t, Playing, s.State())
	assert.NotSame(t, old, s.Board())
	assert.Zero(t, s.Board().RevealedCount())
	assert.Zero(t, s.Board().FlaggedCount())
	assert.Equal(t, 2, s.Games())
}

func TestRejectionsAreLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	s := newTestSession(t, Options{Logger: log})
	useMines(t, s, 3, 3, board.Point{Row: 0, Col: 0})
	hook.Reset()

	_, err := s.Reveal(context.Background(), -1, 0)
	require.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "reveal rejected", entry.Message)
	assert.Equal(t, -1, entry.Data["row"])
}

func TestSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	s := newTestSession(t, Options{Tracer: tp.Tracer("test")})
	useMines(t, s, 3, 3, board.Point{Row: 0, Col: 0})
	ctx := context.Background()

	_, err := s.Reveal(ctx, 2, 2)
	require.NoError(t, err)
	require.NoError(t, s.ToggleFlag(ctx, 0, 0))
	require.NoError(t, s.Restart(ctx))

	var names []string
	for _, span := range sr.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{
		"board.generate",
		"session.reveal",
		"session.flag",
		"board.generate",
		"session.restart",
	}, names)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "lost", Lost.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.False(t, Playing.Over())
}

func TestDescribe(t *testing.T) {
	err := &board.MoveError{Op: "reveal", Err: board.ErrAlreadyRevealed}
	assert.Equal(t, "That cell is already open.", Describe(err))
	assert.Equal(t, "The game is over.", Describe(ErrGameOver))
	assert.Equal(t, "boom", Describe(errors.New("boom")))
}
