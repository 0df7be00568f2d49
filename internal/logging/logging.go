// Package logging builds the logrus logger used across hnstories.
//
// The terminal belongs to the TUI, so logs go to a file by default. A path
// of "-" sends them to stderr instead. Tail reads the file back for the
// logs subcommand.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configure New.
type Options struct {
	File  string // "-" for stderr, empty discards output
	Level string // logrus level name; empty or unknown means info
}

// New returns a configured logger and a function that closes its sink.
func New(opts Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	noop := func() error { return nil }
	switch path := strings.TrimSpace(opts.File); path {
	case "":
		logger.SetOutput(io.Discard)
		return logger, noop, nil
	case "-":
		logger.SetOutput(os.Stderr)
		return logger, noop, nil
	default:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		return logger, f.Close, nil
	}
}

// Component returns an entry tagged with the component name.
func Component(log logrus.FieldLogger, name string) *logrus.Entry {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return log.WithField("component", name)
}
