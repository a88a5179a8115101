// Package main is the entry point for the console game.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/samdwyer/minesweeper/internal/app"
	"github.com/samdwyer/minesweeper/internal/console"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

func main() {
	ctx := context.Background()

	a, err := app.Setup(ctx, app.Options{
		Name:      "console",
		Args:      os.Args[1:],
		LogOutput: os.Stderr,
	})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close(ctx)

	c := console.New(os.Stdin, os.Stdout, a.Config, a.Log, telemetry.Tracer("console"))
	if err := c.Run(ctx); err != nil {
		a.Log.WithError(err).Error("console stopped")
		a.Close(ctx)
		os.Exit(1)
	}
}
