// Package console is the line based frontend: the board is printed as text
// and moves are typed as "row col" or "row col F".
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/config"
	"github.com/samdwyer/minesweeper/internal/session"
)

const instructions = `======================================================
Instructions:
1. Enter the row and the column, e.g. '2 3'
2. To place or remove a flag add an 'F', e.g. '2 3 F'
`

// maxLineLength is the longest input line read as is. Longer lines are
// skipped and reported as malformed.
const maxLineLength = 4096

var errLineTooLong = fmt.Errorf("%w: line longer than %d bytes", ErrMalformedInput, maxLineLength)

// Console runs games over a text stream.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	cfg    config.Config
	log    logrus.FieldLogger
	tracer trace.Tracer

	sess *session.Session
	// err is the read error that ended the input, nil for a clean EOF.
	err error
	// lineErr is set when the last answer was too long to read.
	lineErr error
}

// New creates a console reading moves from in and printing to out.
func New(in io.Reader, out io.Writer, cfg config.Config, log logrus.FieldLogger, tracer trace.Tracer) *Console {
	return &Console{
		in:     bufio.NewReaderSize(in, maxLineLength),
		out:    out,
		cfg:    cfg,
		log:    log,
		tracer: tracer,
	}
}

// Run plays games until the player declines another one or input ends.
func (c *Console) Run(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "console.run")
	defer span.End()

	for {
		params, ok := c.setup()
		if !ok {
			return c.err
		}

		if err := c.deal(ctx, params); err != nil {
			return err
		}

		state, ok := c.play(ctx)
		if !ok {
			return c.err
		}
		c.log.WithField("result", state.String()).Info("game finished")

		answer, ok := c.prompt("Play again? [y/n] ")
		if !ok || strings.EqualFold(answer, "n") {
			c.printf("Goodbye!\n")
			return c.err
		}
	}
}

// setup asks for custom dimensions until it gets a valid board, or falls
// back to the configured defaults. ok is false when input ended.
func (c *Console) setup() (board.Params, bool) {
	for {
		c.printf("Enter the dimensions or press Enter for a classic game.\n")

		answers := make([]string, 0, 3)
		for _, question := range []string{"Rows: ", "Columns: ", "Mines: "} {
			answer, ok := c.prompt(question)
			if !ok {
				return board.Params{}, false
			}
			if answer == "" {
				break
			}
			answers = append(answers, answer)
		}

		choice := ParseSetup(answers, c.cfg.Board)
		if !choice.Custom {
			c.log.Info("classic settings")
			c.printf("Classic game: %dx%d with %d mines.\n",
				choice.Params.Height, choice.Params.Width, choice.Params.Mines)
			return choice.Params, true
		}

		if err := choice.Params.Validate(); err != nil {
			c.log.WithError(err).Warn("custom settings rejected")
			c.printf("Cannot create that board: %v\n", err)
			continue
		}
		c.log.WithFields(logrus.Fields{
			"height": choice.Params.Height,
			"width":  choice.Params.Width,
			"mines":  choice.Params.Mines,
		}).Info("custom settings")
		return choice.Params, true
	}
}

// deal starts a game: a restart when the settings did not change, a new
// session otherwise.
func (c *Console) deal(ctx context.Context, params board.Params) error {
	if c.sess != nil && c.sess.Params() == params {
		return c.sess.Restart(ctx)
	}

	sess, err := session.New(ctx, session.Options{
		Params:  params,
		Seed:    c.cfg.Seed,
		Cascade: c.cfg.Cascade,
		Logger:  c.log,
		Tracer:  c.tracer,
	})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	c.sess = sess
	return nil
}

// play runs one game to its end. ok is false when input ended first.
func (c *Console) play(ctx context.Context) (session.State, bool) {
	c.printf("%s", instructions)

	for {
		c.printf("%s\n", c.sess.Board())

		line, ok := c.prompt("Row and column: ")
		if !ok {
			return c.sess.State(), false
		}

		move, err := ParseMove(line)
		if c.lineErr != nil {
			err = c.lineErr
		}
		if err != nil {
			c.log.WithError(err).Warn("invalid input")
			c.printf("Invalid input: %v\n%s", err, instructions)
			continue
		}

		switch move.Action {
		case ActionFlag:
			err = c.sess.ToggleFlag(ctx, move.Row, move.Col)
		default:
			_, err = c.sess.Reveal(ctx, move.Row, move.Col)
		}
		if err != nil {
			c.printf("%s\n", session.Describe(err))
			continue
		}

		switch c.sess.State() {
		case session.Lost:
			c.printf("GAME OVER!\n%s\n", c.sess.Board())
			return session.Lost, true
		case session.Won:
			c.printf("You won!\n%s\n", c.sess.Board())
			return session.Won, true
		}
	}
}

// prompt asks a question and returns the trimmed answer. ok is false when
// input ended. An overlong answer is dropped and comes back empty with
// c.lineErr set.
func (c *Console) prompt(question string) (string, bool) {
	c.printf("%s", question)
	c.lineErr = nil

	line, err := c.readLine()
	switch {
	case errors.Is(err, errLineTooLong):
		c.lineErr = err
		return "", true
	case errors.Is(err, io.EOF):
		return "", false
	case err != nil:
		c.err = err
		return "", false
	}
	return strings.TrimSpace(line), true
}

// readLine returns the next line without its line ending. The rest of a line
// that does not fit the buffer is discarded.
func (c *Console) readLine() (string, error) {
	buf, isPrefix, err := c.in.ReadLine()
	if err != nil {
		return "", err
	}
	if !isPrefix {
		return string(buf), nil
	}
	for isPrefix {
		if _, isPrefix, err = c.in.ReadLine(); err != nil {
			return "", err
		}
	}
	return "", errLineTooLong
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
