// Package game provides the terminal event loop: mouse and keyboard input
// driving a session, drawn through the ui package.
package game

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/gamedata"
	"github.com/samdwyer/minesweeper/internal/session"
	"github.com/samdwyer/minesweeper/internal/telemetry"
	"github.com/samdwyer/minesweeper/internal/ui"
)

// Game holds the terminal frontend state around a session.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	sess     *session.Session
	log      logrus.FieldLogger
	tracer   trace.Tracer

	cursor  board.Point
	message string
	buttons tcell.ButtonMask
	running bool
}

// New opens the terminal and creates a game instance.
func New(cfg Config) (*Game, error) {
	theme := cfg.Theme
	if theme == nil {
		var err error
		if theme, err = gamedata.LoadTheme(); err != nil {
			return nil, err
		}
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g := newGame(cfg)
	g.screen = screen
	g.renderer = ui.NewRenderer(screen, theme)
	return g, nil
}

func newGame(cfg Config) *Game {
	g := &Game{
		sess:    cfg.Session,
		log:     cfg.Logger,
		tracer:  cfg.Tracer,
		running: true,
	}
	if g.log == nil {
		g.log = logrus.StandardLogger()
	}
	if g.tracer == nil {
		g.tracer = telemetry.NoopTracer()
	}
	return g
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	ctx, span := g.tracer.Start(ctx, "game.run")
	defer span.End()

	for g.running {
		g.renderer.Render(g.view())
		g.handleEvent(ctx, g.screen.PollEvent())
	}

	span.SetAttributes(attribute.Int("games", g.sess.Games()))
	g.screen.Close()
	return nil
}

func (g *Game) view() ui.View {
	return ui.View{
		Board:   g.sess.Board().Snapshot(),
		State:   g.sess.State(),
		Cursor:  g.cursor,
		Message: g.message,
	}
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		if g.screen != nil {
			g.screen.Sync()
		}
	case nil:
		// Screen finalized.
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.moveCursor(-1, 0)
	case tcell.KeyDown:
		g.moveCursor(1, 0)
	case tcell.KeyLeft:
		g.moveCursor(0, -1)
	case tcell.KeyRight:
		g.moveCursor(0, 1)

	case tcell.KeyEnter:
		g.reveal(ctx, g.cursor)

	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			g.reveal(ctx, g.cursor)
		case 'f', 'F':
			g.flag(ctx, g.cursor)
		case 'r', 'R':
			g.restart(ctx)
		case 'q', 'Q':
			g.running = false
		}
	}
}

// handleMouseEvent acts on button presses over the board. Drags and releases
// are ignored.
func (g *Game) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ g.buttons
	g.buttons = buttons
	if pressed == 0 {
		return
	}

	b := g.sess.Board()
	x, y := ev.Position()
	row, col, ok := ui.GridFor(b.Height(), b.Width()).CellAt(x, y)
	if !ok {
		return
	}
	p := board.Point{Row: row, Col: col}
	g.cursor = p

	switch {
	case pressed&tcell.ButtonPrimary != 0:
		g.reveal(ctx, p)
	case pressed&tcell.ButtonSecondary != 0:
		g.flag(ctx, p)
	}
}

// moveCursor moves the cursor by the given delta, staying on the board.
func (g *Game) moveCursor(dRow, dCol int) {
	b := g.sess.Board()
	g.cursor.Row = clamp(g.cursor.Row+dRow, 0, b.Height()-1)
	g.cursor.Col = clamp(g.cursor.Col+dCol, 0, b.Width()-1)
}

func (g *Game) reveal(ctx context.Context, p board.Point) {
	out, err := g.sess.Reveal(ctx, p.Row, p.Col)
	if err != nil {
		g.message = session.Describe(err)
		return
	}
	g.message = ""
	if out.State.Over() {
		g.log.WithField("result", out.State.String()).Info("game finished")
	}
}

func (g *Game) flag(ctx context.Context, p board.Point) {
	if err := g.sess.ToggleFlag(ctx, p.Row, p.Col); err != nil {
		g.message = session.Describe(err)
		return
	}
	g.message = ""
}

func (g *Game) restart(ctx context.Context) {
	if err := g.sess.Restart(ctx); err != nil {
		g.message = err.Error()
		return
	}
	g.cursor = board.Point{}
	g.message = ""
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
