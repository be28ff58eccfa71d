package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/oukeidos/playback/internal/cleanup"
	"github.com/oukeidos/playback/internal/config"
	"github.com/oukeidos/playback/internal/logger"
	"github.com/oukeidos/playback/internal/media"
	"github.com/oukeidos/playback/internal/term"
)

// newScreen is replaced in tests.
var newScreen = tcell.NewScreen

func newTermCmd(flags *config.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term [media]",
		Short: "Play in the terminal (mouse motion reveals the overlays)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerm(cmd, flags, mediaArg(args))
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runTerm(cmd *cobra.Command, flags *config.Flags, source string) error {
	cfg, err := flags.Resolve(source)
	if err != nil {
		return err
	}

	var src *media.Source
	if cfg.Source != "" {
		if src, err = media.Resolve(cfg.Source); err != nil {
			return err
		}
	}

	closeLog, err := logger.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	cleanup.Register("log file", closeLog)
	logger.MuteConsole()
	logger.Attach("session", logger.SessionID())

	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return term.New(screen, cfg, src, logger.With("command", "term")).Run(ctx)
}
