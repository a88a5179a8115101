// Package config loads game settings from the environment and a local .env
// file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/minesweeper/internal/board"
)

// Environment variable names.
const (
	EnvHeight   = "MINESWEEPER_HEIGHT"
	EnvWidth    = "MINESWEEPER_WIDTH"
	EnvMines    = "MINESWEEPER_MINES"
	EnvSeed     = "MINESWEEPER_SEED"
	EnvCascade  = "MINESWEEPER_CASCADE"
	EnvLogLevel = "MINESWEEPER_LOG_LEVEL"
	EnvLogFile  = "MINESWEEPER_LOG_FILE"
	EnvTileSize = "MINESWEEPER_TILE_SIZE"

	EnvHoneycombAPIKey  = "HONEYCOMB_MINESWEEPER_API_KEY"
	EnvHoneycombDataset = "HONEYCOMB_MINESWEEPER_DATASET"
)

const (
	defaultLogLevel = "info"
	defaultTileSize = 32
	defaultDataset  = "minesweeper"
)

// Config holds game configuration options.
type Config struct {
	Board board.Params

	// Seed for mine placement. A seed of 0 means a random seed will be
	// generated for every session.
	Seed int64

	// Cascade makes a reveal of a zero cell open its whole zero region.
	Cascade bool

	LogLevel string
	// LogFile receives the log when set. Terminal and window frontends need
	// it because they own the screen.
	LogFile string

	// TileSize is the edge of a board tile in the window, in pixels.
	TileSize int

	Telemetry Telemetry
}

// Telemetry holds the Honeycomb export settings.
type Telemetry struct {
	APIKey  string
	Dataset string
}

// Enabled reports whether traces should be exported.
func (t Telemetry) Enabled() bool {
	return t.APIKey != ""
}

// Default returns the classic game settings.
func Default() Config {
	return Config{
		Board:    board.DefaultParams(),
		LogLevel: defaultLogLevel,
		TileSize: defaultTileSize,
		Telemetry: Telemetry{
			Dataset: defaultDataset,
		},
	}
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from defaults overridden by the given lookup.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvHeight, &cfg.Board.Height},
		{EnvWidth, &cfg.Board.Width},
		{EnvMines, &cfg.Board.Mines},
		{EnvTileSize, &cfg.TileSize},
	}
	for _, v := range ints {
		raw, ok := lookupTrimmed(lookup, v.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", v.name, raw, err)
		}
		*v.dst = n
	}

	if raw, ok := lookupTrimmed(lookup, EnvSeed); ok {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvSeed, raw, err)
		}
		cfg.Seed = seed
	}

	if raw, ok := lookupTrimmed(lookup, EnvCascade); ok {
		cascade, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvCascade, raw, err)
		}
		cfg.Cascade = cascade
	}

	if raw, ok := lookupTrimmed(lookup, EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(raw)
	}
	if raw, ok := lookupTrimmed(lookup, EnvLogFile); ok {
		cfg.LogFile = raw
	}
	if raw, ok := lookupTrimmed(lookup, EnvHoneycombAPIKey); ok {
		cfg.Telemetry.APIKey = raw
	}
	if raw, ok := lookupTrimmed(lookup, EnvHoneycombDataset); ok {
		cfg.Telemetry.Dataset = raw
	}

	return cfg, nil
}

func lookupTrimmed(lookup func(string) (string, bool), name string) (string, bool) {
	raw, ok := lookup(name)
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// RegisterFlags binds command-line overrides for the board settings. The
// current values act as flag defaults, so call it after Load.
func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.Board.Height, "height", c.Board.Height, "number of rows")
	flags.IntVar(&c.Board.Width, "width", c.Board.Width, "number of columns")
	flags.IntVar(&c.Board.Mines, "mines", c.Board.Mines, "number of mines")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "mine placement seed (0 = random)")
	flags.BoolVar(&c.Cascade, "cascade", c.Cascade, "reveal connected empty cells automatically")
	flags.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file")
}

// Validate checks the settings that can be wrong after parsing.
func (c Config) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return err
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// Fields returns the settings as log fields. The API key is left out.
func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"height":    c.Board.Height,
		"width":     c.Board.Width,
		"mines":     c.Board.Mines,
		"seed":      c.Seed,
		"cascade":   c.Cascade,
		"log_level": c.LogLevel,
		"log_file":  c.LogFile,
		"tile_size": c.TileSize,
		"telemetry": c.Telemetry.Enabled(),
	}
}
