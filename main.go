// ABOUTME: Entry point for the Melody Observer player
// ABOUTME: Parses the command line and starts the player application
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/melody-observer/melody/internal/app"
	"github.com/melody-observer/melody/internal/config"
	"github.com/melody-observer/melody/internal/logging"
	"github.com/melody-observer/melody/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "melody [FILE]",
		Short:        "Wave file player with a playback-synchronized waveform view",
		Args:         cobra.MaximumNArgs(1),
		Version:      version.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.File = args[0]
			}
			return run(cmd.Context(), cfg)
		},
	}
	cfg.BindFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	notes := cfg.Validate()

	// TUI mode: log only to file. Streaming logs mode: file and stderr.
	undo, err := logging.Init(logging.Config{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: cfg.NoTUI,
	})
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	defer undo()

	for _, note := range notes {
		zap.S().Warnf("Config: %s", note)
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			zap.S().Errorf("Error closing player: %v", err)
		}
		zap.S().Infof("Player stopped")
	}()

	return a.Run(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(config.Load()).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
