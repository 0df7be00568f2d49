package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/five82/hnstories/internal/app"
	"github.com/five82/hnstories/internal/config"
	"github.com/five82/hnstories/internal/logging"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "hnstories: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "hnstories",
		Short:         "Browse Hacker News stories in the terminal",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default ~/.config/hnstories/config.toml)")

	flags := cmd.Flags()
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (overrides prefs_path)")
	flags.IntVar(&opts.RefreshEvery, "refresh", 0, "auto refresh interval in seconds (overrides refresh_interval)")

	cmd.AddCommand(newLogsCommand(&opts.ConfigPath))
	return cmd
}

func newLogsCommand(configPath *string) *cobra.Command {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the most recent hnstories log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.LogFile == "-" {
				return fmt.Errorf("log_file is stderr; nothing to read")
			}
			threshold, err := logrus.ParseLevel(level)
			if err != nil {
				return err
			}
			entries, err := logging.Tail(cfg.LogFile, lines, threshold)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, entry := range entries {
				fmt.Fprintln(out, entry)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of entries to show")
	cmd.Flags().StringVar(&level, "level", "info", "minimum level to show")
	return cmd
}
