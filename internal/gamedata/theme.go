package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/minesweeper/internal/board"
)

// Glyph IDs for the non-numeric cell looks. Numbered cells use "0" to "8".
const (
	GlyphHidden = "hidden"
	GlyphFlag   = "flag"
	GlyphMine   = "mine"
)

// GlyphDef is how one kind of cell is drawn, loaded from JSON.
type GlyphDef struct {
	ID    string `json:"id"`    // Cell look (e.g., "flag" or "3")
	Glyph string `json:"glyph"` // Single character for rendering (e.g., "F")
	Color string `json:"color"` // Hex foreground color (e.g., "#FF4040")
	Tile  string `json:"tile"`  // Hex background color of the tile
}

// GlyphRune returns the glyph as a rune for rendering.
func (g *GlyphDef) GlyphRune() rune {
	if len(g.Glyph) == 0 {
		return '?'
	}
	return rune(g.Glyph[0])
}

// TCellColor returns the foreground as a tcell.Color.
func (g *GlyphDef) TCellColor() tcell.Color {
	c, err := ParseHexColor(g.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return c
}

// TCellTile returns the background as a tcell.Color.
func (g *GlyphDef) TCellTile() tcell.Color {
	c, err := ParseHexColor(g.Tile)
	if err != nil {
		return tcell.ColorBlack
	}
	return c
}

// RGBA returns the foreground as an image color.
func (g *GlyphDef) RGBA() color.RGBA {
	c, err := ParseHexRGBA(g.Color)
	if err != nil {
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	return c
}

// TileRGBA returns the background as an image color.
func (g *GlyphDef) TileRGBA() color.RGBA {
	c, err := ParseHexRGBA(g.Tile)
	if err != nil {
		return color.RGBA{A: 0xFF}
	}
	return c
}

// ThemeFile represents the structure of theme.json.
type ThemeFile struct {
	Glyphs []GlyphDef `json:"glyphs"`
}

// Theme holds the loaded glyphs by ID.
type Theme struct {
	glyphs map[string]*GlyphDef
}

// NewTheme creates a theme from loaded glyph definitions.
func NewTheme(glyphs []GlyphDef) *Theme {
	t := &Theme{
		glyphs: make(map[string]*GlyphDef, len(glyphs)),
	}
	for i := range glyphs {
		t.glyphs[glyphs[i].ID] = &glyphs[i]
	}
	return t
}

// LoadTheme loads the embedded theme.json and checks that every cell look
// is defined.
func LoadTheme() (*Theme, error) {
	content, err := dataFS.ReadFile("theme.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded file theme.json: %w", err)
	}

	var file ThemeFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from theme.json: %w", err)
	}
	if len(file.Glyphs) == 0 {
		return nil, errors.New("no glyphs loaded from theme.json")
	}

	theme := NewTheme(file.Glyphs)
	if missing := theme.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("theme.json is missing glyphs %v", missing)
	}
	return theme, nil
}

// RequiredIDs lists every glyph a renderer may ask for.
func RequiredIDs() []string {
	ids := []string{GlyphHidden, GlyphFlag, GlyphMine}
	for n := 0; n <= 8; n++ {
		ids = append(ids, strconv.Itoa(n))
	}
	return ids
}

// Missing returns the required IDs the theme does not define.
func (t *Theme) Missing() []string {
	var missing []string
	for _, id := range RequiredIDs() {
		if t.byID(id) == nil {
			missing = append(missing, id)
		}
	}
	return missing
}

// byID returns the glyph with the given ID, or nil if not found.
func (t *Theme) byID(id string) *GlyphDef {
	return t.glyphs[id]
}

// ForCell picks the glyph for a cell. With exposeMines set, hidden mines are
// drawn as mines, which is how a lost board is shown.
func (t *Theme) ForCell(v board.CellView, exposeMines bool) *GlyphDef {
	return t.byID(glyphID(v, exposeMines))
}

func glyphID(v board.CellView, exposeMines bool) string {
	switch {
	case v.State == board.Revealed && v.Mine:
		return GlyphMine
	case v.State == board.Revealed:
		return strconv.Itoa(v.Adjacent)
	case exposeMines && v.Mine && v.State == board.Hidden:
		return GlyphMine
	case v.State == board.Flagged:
		return GlyphFlag
	default:
		return GlyphHidden
	}
}
