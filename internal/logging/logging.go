// Package logging builds the logrus logger shared by the game frontends.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// Log file rotation limits.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Options selects where log lines go.
type Options struct {
	Level string
	// File, when set, receives every entry through a rotating file hook.
	File string
	// Output receives text logs. Nil discards them, which is what screen
	// based frontends want.
	Output io.Writer
}

// New creates a logger for the given options.
func New(opts Options) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if opts.Output != nil {
		log.SetOutput(opts.Output)
	} else {
		log.SetOutput(io.Discard)
	}

	if opts.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   opts.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to open log file %s: %w", opts.File, err)
		}
		log.AddHook(hook)
	}

	return log, nil
}
