package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/hnstories/internal/config"
	"github.com/five82/hnstories/internal/hn"
	"github.com/five82/hnstories/internal/logging"
	"github.com/five82/hnstories/internal/prefs"
	"github.com/five82/hnstories/internal/state"
	"github.com/five82/hnstories/internal/ui"
)

// Options configure the hnstories application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses the configured prefs_path
	RefreshEvery int    // seconds; zero uses the configured refresh_interval
}

// Run boots the hnstories TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PrefsPath != "" {
		cfg.PrefsPath = opts.PrefsPath
	}

	log, closeLog, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	var slot prefs.Slot
	if fileSlot, err := prefs.NewFileSlot(cfg.PrefsPath); err != nil {
		log.WithError(err).Warn("preferences will not be saved")
	} else {
		slot = fileSlot
	}
	prefsLog := logging.Component(log, "prefs")
	searchTerm := prefs.New(slot, prefs.SearchKey, cfg.DefaultQuery, prefsLog)
	theme := prefs.New(slot, prefs.ThemeKey, prefs.DefaultTheme, prefsLog)

	client, err := hn.NewClient(cfg.Endpoint,
		hn.WithTimeout(cfg.RequestTimeoutDuration()),
		hn.WithRateLimit(cfg.RequestsPerSecond),
	)
	if err != nil {
		return fmt.Errorf("init hn client: %w", err)
	}

	store := state.NewStore(client, logging.Component(log, "store"))
	core := NewCore(store, searchTerm)

	interval := cfg.RefreshEvery()
	if opts.RefreshEvery > 0 {
		interval = time.Duration(opts.RefreshEvery) * time.Second
	}
	StartPoller(ctx, core, interval, logging.Component(log, "poller"))

	log.WithFields(logrus.Fields{
		"endpoint": cfg.Endpoint,
		"query":    searchTerm.Get(),
		"refresh":  interval.String(),
	}).Info("hnstories starting")

	return ui.Run(ui.Options{
		Context:  ctx,
		Core:     core,
		Theme:    theme,
		PollTick: time.Second,
		Log:      logging.Component(log, "ui"),
	})
}
