// Package app holds the start-up shared by the minesweeper binaries: config
// from .env, environment and flags, then the logger, telemetry and session.
package app

import (
	"context"
	"flag"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/minesweeper/internal/config"
	"github.com/samdwyer/minesweeper/internal/logging"
	"github.com/samdwyer/minesweeper/internal/session"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

// Options describe the binary being started.
type Options struct {
	// Name is used for the flag set and the tracer.
	Name string
	Args []string
	// LogOutput receives text logs. Frontends that own the terminal leave
	// it nil and log to a file only.
	LogOutput io.Writer
}

// App is a configured process ready to start sessions.
type App struct {
	Config config.Config
	Log    *logrus.Logger

	name     string
	shutdown func(context.Context) error
}

// Setup parses configuration and builds the ambient services. Flag errors,
// including -h, are returned as is.
func Setup(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return setup(ctx, cfg, opts)
}

func setup(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	flags := flag.NewFlagSet(opts.Name, flag.ContinueOnError)
	cfg.RegisterFlags(flags)
	if err := flags.Parse(opts.Args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Output: opts.LogOutput})
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		name:     opts.Name,
		shutdown: telemetry.Init(ctx, cfg.Telemetry, log),
	}
	log.WithFields(cfg.Fields()).Info("configuration loaded")
	return a, nil
}

// NewSession starts a session with the configured board settings.
func (a *App) NewSession(ctx context.Context) (*session.Session, error) {
	return session.New(ctx, session.Options{
		Params:  a.Config.Board,
		Seed:    a.Config.Seed,
		Cascade: a.Config.Cascade,
		Logger:  a.Log,
		Tracer:  telemetry.Tracer(a.name),
	})
}

// Close flushes telemetry. Errors are logged.
func (a *App) Close(ctx context.Context) {
	if err := a.shutdown(ctx); err != nil {
		a.Log.WithError(err).Warn("telemetry shutdown failed")
	}
}
