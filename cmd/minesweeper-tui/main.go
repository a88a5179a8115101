// Package main is the entry point for the terminal game with mouse support.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/samdwyer/minesweeper/internal/app"
	"github.com/samdwyer/minesweeper/internal/game"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// The screen belongs to the game, so logs only go to MINESWEEPER_LOG_FILE.
	a, err := app.Setup(ctx, app.Options{Name: "tui", Args: os.Args[1:]})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close(ctx)

	sess, err := a.NewSession(ctx)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	g, err := game.New(game.Config{
		Session: sess,
		Logger:  a.Log,
		Tracer:  telemetry.Tracer("game"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		g.Close()
		log.Fatalf("Game error: %v", err)
	}
}
