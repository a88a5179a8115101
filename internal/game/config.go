package game

import (
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/minesweeper/internal/gamedata"
	"github.com/samdwyer/minesweeper/internal/session"
)

// Config holds what the terminal game needs to run.
type Config struct {
	// Session is the game being played. Restart reuses it.
	Session *session.Session
	// Theme decides glyphs and colors. nil loads the embedded theme.
	Theme *gamedata.Theme

	Logger logrus.FieldLogger
	Tracer trace.Tracer
}
