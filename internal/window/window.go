// Package window is the pixel frontend: an ebiten window with a menu bar and
// a grid of fixed-size tiles, redrawn every frame.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/image/font/basicfont"

	"github.com/samdwyer/minesweeper/internal/gamedata"
	"github.com/samdwyer/minesweeper/internal/layout"
	"github.com/samdwyer/minesweeper/internal/session"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

const (
	menuHeight   = 24
	statusHeight = 20
	buttonHeight = 18
	tileGap      = 1

	// basicfont.Face7x13 metrics.
	glyphWidth  = 7
	glyphAscent = 10
)

var (
	colorBackground = color.RGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xFF}
	colorMenu       = color.RGBA{R: 0x2A, G: 0x2A, B: 0x2A, A: 0xFF}
	colorButton     = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xFF}
	colorText       = color.RGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF}
)

// Config holds what the window needs to run.
type Config struct {
	Session *session.Session
	// Theme decides glyphs and colors. nil loads the embedded theme.
	Theme *gamedata.Theme
	// TileSize is the edge of one cell in pixels.
	TileSize int

	Logger logrus.FieldLogger
	Tracer trace.Tracer
}

type menuItem struct {
	label  string
	bounds layout.Rect
	action func(ctx context.Context) error
}

// Window implements ebiten.Game for one session.
type Window struct {
	ctx    context.Context
	sess   *session.Session
	theme  *gamedata.Theme
	log    logrus.FieldLogger
	tracer trace.Tracer

	grid    layout.Grid
	menu    []menuItem
	width   int
	height  int
	message string
	quit    bool
}

// New lays out the window for the session's board.
func New(ctx context.Context, cfg Config) (*Window, error) {
	if cfg.TileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size %d", cfg.TileSize)
	}

	theme := cfg.Theme
	if theme == nil {
		var err error
		if theme, err = gamedata.LoadTheme(); err != nil {
			return nil, err
		}
	}

	w := &Window{
		ctx:    ctx,
		sess:   cfg.Session,
		theme:  theme,
		log:    cfg.Logger,
		tracer: cfg.Tracer,
	}
	if w.log == nil {
		w.log = logrus.StandardLogger()
	}
	if w.tracer == nil {
		w.tracer = telemetry.NoopTracer()
	}

	b := w.sess.Board()
	w.grid = layout.Grid{
		OriginX:    0,
		OriginY:    menuHeight,
		TileWidth:  cfg.TileSize,
		TileHeight: cfg.TileSize,
		Rows:       b.Height(),
		Cols:       b.Width(),
	}

	buttons := layout.Row(4, (menuHeight-buttonHeight)/2, buttonHeight, 6, 64, 40)
	w.menu = []menuItem{
		{label: "Restart", bounds: buttons[0], action: w.restart},
		{label: "Quit", bounds: buttons[1], action: w.exit},
	}

	gridWidth, gridHeight := w.grid.Size()
	last := buttons[len(buttons)-1]
	w.width = max(gridWidth, last.X+last.Width+4)
	w.height = menuHeight + gridHeight + statusHeight
	return w, nil
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, cfg Config) error {
	w, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	ctx, span := w.tracer.Start(ctx, "window.run")
	defer span.End()
	w.ctx = ctx

	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle("Minesweeper")

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update handles input once per tick.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := w.restart(w.ctx); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.quit = true
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if err := w.click(x, y, false); err != nil {
			return err
		}
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		if err := w.click(x, y, true); err != nil {
			return err
		}
	}

	if w.quit {
		return ebiten.Termination
	}
	return nil
}

// click dispatches a press to the menu or the board.
func (w *Window) click(x, y int, secondary bool) error {
	if !secondary {
		for _, item := range w.menu {
			if item.bounds.Contains(x, y) {
				return item.action(w.ctx)
			}
		}
	}

	row, col, ok := w.grid.CellAt(x, y)
	if !ok {
		return nil
	}

	var err error
	if secondary {
		err = w.sess.ToggleFlag(w.ctx, row, col)
	} else {
		var out session.Outcome
		out, err = w.sess.Reveal(w.ctx, row, col)
		if err == nil && out.State.Over() {
			w.log.WithField("result", out.State.String()).Info("game finished")
		}
	}
	if err != nil {
		w.message = session.Describe(err)
		return nil
	}
	w.message = ""
	return nil
}

func (w *Window) restart(ctx context.Context) error {
	w.message = ""
	return w.sess.Restart(ctx)
}

func (w *Window) exit(context.Context) error {
	w.quit = true
	return nil
}

// Draw redraws the whole window.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	w.drawMenu(screen)
	w.drawBoard(screen)

	status := w.status()
	if w.message != "" {
		status = w.message
	}
	text.Draw(screen, status, basicfont.Face7x13, 4, w.height-statusHeight/2+glyphAscent/2, colorText)
}

func (w *Window) drawMenu(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(w.width), menuHeight, colorMenu, false)
	for _, item := range w.menu {
		r := item.bounds
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), colorButton, false)
		tx := r.X + (r.Width-len(item.label)*glyphWidth)/2
		ty := r.Y + (r.Height+glyphAscent)/2
		text.Draw(screen, item.label, basicfont.Face7x13, tx, ty, colorText)
	}
}

func (w *Window) drawBoard(screen *ebiten.Image) {
	snap := w.sess.Board().Snapshot()
	exposeMines := w.sess.State() == session.Lost
	size := w.grid.TileWidth

	for row := 0; row < snap.Height; row++ {
		for col := 0; col < snap.Width; col++ {
			g := w.theme.ForCell(snap.Cells[row][col], exposeMines)
			if g == nil {
				continue
			}

			x, y := w.grid.Origin(row, col)
			vector.DrawFilledRect(screen, float32(x), float32(y),
				float32(size-tileGap), float32(size-tileGap), g.TileRGBA(), false)

			if glyph := string(g.GlyphRune()); glyph != " " {
				tx := x + (size-glyphWidth)/2
				ty := y + (size+glyphAscent)/2
				text.Draw(screen, glyph, basicfont.Face7x13, tx, ty, g.RGBA())
			}
		}
	}
}

func (w *Window) status() string {
	b := w.sess.Board()
	counts := fmt.Sprintf("Flags %d/%d  Revealed %d", b.FlaggedCount(), b.MineCount(), b.RevealedCount())
	switch w.sess.State() {
	case session.Won:
		return counts + "  You won!"
	case session.Lost:
		return counts + "  GAME OVER!"
	default:
		return counts
	}
}

// Layout keeps the logical screen at the board's pixel size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}
