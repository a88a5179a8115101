// Package session owns a single player's game: the current board, the
// playing/won/lost state, and restarts.
package session

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

// ErrGameOver is returned for moves made after the game ended.
var ErrGameOver = errors.New("game is over, restart to play again")

// Options configure a Session.
type Options struct {
	Params board.Params
	// Seed for mine placement. 0 seeds from the clock.
	Seed int64
	// Cascade reveals whole zero regions instead of single cells.
	Cascade bool

	Logger logrus.FieldLogger
	Tracer trace.Tracer
}

// Outcome describes the effect of a successful reveal.
type Outcome struct {
	State    State
	Revealed []board.Point
}

// Session is one player's game. It is owned by a single presentation loop
// and is not safe for concurrent use.
type Session struct {
	params  board.Params
	cascade bool
	rng     *rand.Rand
	log     logrus.FieldLogger
	tracer  trace.Tracer

	board *board.Board
	state State
	games int
}

// New validates the options and generates the first board.
func New(ctx context.Context, opts Options) (*Session, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		params:  opts.Params,
		cascade: opts.Cascade,
		rng:     rand.New(rand.NewSource(seed)),
		log:     opts.Logger,
		tracer:  opts.Tracer,
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.tracer == nil {
		s.tracer = telemetry.NoopTracer()
	}
	s.log = s.log.WithField("seed", seed)

	if err := s.generate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// generate replaces the board with a freshly shuffled one.
func (s *Session) generate(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "board.generate")
	defer span.End()

	startTime := time.Now()

	b, err := board.New(s.params, s.rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	s.board = b
	s.state = Playing
	s.games++

	span.SetAttributes(
		attribute.Int("board.height", s.params.Height),
		attribute.Int("board.width", s.params.Width),
		attribute.Int("board.mines", s.params.Mines),
		attribute.Int("session.game", s.games),
		attribute.Int64("board.generation_us", time.Since(startTime).Microseconds()),
	)
	s.log.WithFields(logrus.Fields{
		"height": s.params.Height,
		"width":  s.params.Width,
		"mines":  s.params.Mines,
		"game":   s.games,
	}).Info("board generated")
	return nil
}

// Reveal uncovers a cell and evaluates the end of the game.
func (s *Session) Reveal(ctx context.Context, row, col int) (Outcome, error) {
	_, span := s.tracer.Start(ctx, "session.reveal", trace.WithAttributes(
		attribute.Int("cell.row", row),
		attribute.Int("cell.col", col),
		attribute.Bool("session.cascade", s.cascade),
	))
	defer span.End()

	fields := logrus.Fields{"row": row, "col": col}

	if s.state.Over() {
		s.reject(span, fields, "reveal", ErrGameOver)
		return Outcome{State: s.state}, ErrGameOver
	}

	var revealed []board.Point
	if s.cascade {
		points, err := s.board.RevealArea(row, col)
		if err != nil {
			s.reject(span, fields, "reveal", err)
			return Outcome{State: s.state}, err
		}
		revealed = points
	} else {
		if err := s.board.Reveal(row, col); err != nil {
			s.reject(span, fields, "reveal", err)
			return Outcome{State: s.state}, err
		}
		revealed = []board.Point{{Row: row, Col: col}}
	}

	cell, err := s.board.CellAt(row, col)
	if err != nil {
		return Outcome{State: s.state}, err
	}
	switch {
	case cell.IsMine():
		s.state = Lost
		s.log.WithFields(fields).Info("mine revealed, game lost")
	case s.board.CheckVictory():
		s.state = Won
		s.log.WithFields(fields).Info("all safe cells revealed, game won")
	default:
		s.log.WithFields(fields).WithField("cells", len(revealed)).Debug("cell revealed")
	}

	span.SetAttributes(
		attribute.Int("reveal.cells", len(revealed)),
		attribute.String("session.state", s.state.String()),
	)
	return Outcome{State: s.state, Revealed: revealed}, nil
}

// ToggleFlag places or removes a flag.
func (s *Session) ToggleFlag(ctx context.Context, row, col int) error {
	_, span := s.tracer.Start(ctx, "session.flag", trace.WithAttributes(
		attribute.Int("cell.row", row),
		attribute.Int("cell.col", col),
	))
	defer span.End()

	fields := logrus.Fields{"row": row, "col": col}

	if s.state.Over() {
		s.reject(span, fields, "flag", ErrGameOver)
		return ErrGameOver
	}
	if err := s.board.ToggleFlag(row, col); err != nil {
		s.reject(span, fields, "flag", err)
		return err
	}

	cell, _ := s.board.CellAt(row, col)
	span.SetAttributes(attribute.Bool("cell.flagged", cell.Flagged()))
	if cell.Flagged() {
		s.log.WithFields(fields).Info("flag placed")
	} else {
		s.log.WithFields(fields).Info("flag removed")
	}
	return nil
}

// Restart throws the board away and deals a new one with the same settings.
func (s *Session) Restart(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.restart", trace.WithAttributes(
		attribute.String("session.previous_state", s.state.String()),
	))
	defer span.End()

	return s.generate(ctx)
}

// reject records a refused move on the span and in the log.
func (s *Session) reject(span trace.Span, fields logrus.Fields, op string, err error) {
	span.RecordError(err)
	span.SetAttributes(attribute.Bool("move.rejected", true))
	s.log.WithFields(fields).WithError(err).Warnf("%s rejected", op)
}

// Board returns the current board. Callers must treat it as read-only and go
// through the Session for moves.
func (s *Session) Board() *board.Board {
	return s.board
}

// State returns the game state.
func (s *Session) State() State {
	return s.state
}

// Params returns the board settings used for every game.
func (s *Session) Params() board.Params {
	return s.params
}

// Games returns how many boards this session has dealt.
func (s *Session) Games() int {
	return s.games
}

// Describe turns a rejected move into a message for the player.
func Describe(err error) string {
	switch {
	case errors.Is(err, board.ErrOutOfRange):
		return "That cell is outside the board."
	case errors.Is(err, board.ErrFlagged):
		return "That cell is flagged, remove the flag first."
	case errors.Is(err, board.ErrAlreadyRevealed):
		return "That cell is already open."
	case errors.Is(err, ErrGameOver):
		return "The game is over."
	default:
		return err.Error()
	}
}
