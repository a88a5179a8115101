// Package main is the entry point for the windowed game.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/samdwyer/minesweeper/internal/app"
	"github.com/samdwyer/minesweeper/internal/telemetry"
	"github.com/samdwyer/minesweeper/internal/window"
)

func main() {
	ctx := context.Background()

	a, err := app.Setup(ctx, app.Options{Name: "gui", Args: os.Args[1:]})
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

	err = window.Run(ctx, window.Config{
		Session:  sess,
		TileSize: a.Config.TileSize,
		Logger:   a.Log,
		Tracer:   telemetry.Tracer("window"),
	})
	if err != nil {
		log.Fatalf("Window error: %v", err)
	}
}
