package main

import (
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/pflag"

	"github.com/oukeidos/playback/internal/apperrors"
	"github.com/oukeidos/playback/internal/cleanup"
	"github.com/oukeidos/playback/internal/config"
	"github.com/oukeidos/playback/internal/logger"
	"github.com/oukeidos/playback/internal/version"
)

const appID = "com.oukeidos.playback"

func main() {
	fs := pflag.NewFlagSet("playback-gui", pflag.ContinueOnError)
	flags := config.AddFlags(fs)
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  playback-gui [media] [flags]\n\nFlags:\n%s", fs.FlagUsages())
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	cfg, err := flags.Resolve(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, apperrors.PublicMessage(err))
		os.Exit(2)
	}

	closeLog, err := logger.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cleanup.Register("log file", closeLog)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			_ = cleanup.RunAll()
			os.Exit(1)
		}
	}()

	myApp := app.NewWithID(appID)
	myApp.SetIcon(theme.MediaVideoIcon())
	cfg = applyPreferences(myApp.Preferences(), cfg, flags.Explicit("hide-delay") || flags.ConfigPath() != "")
	logger.Attach("session", logger.SessionID())
	logger.Info("Starting", "version", version.Version, "delay", cfg.HideDelay)

	w := myApp.NewWindow(cfg.Title)
	w.SetMaster()
	w.Resize(fyne.NewSize(960, 540))
	w.CenterOnScreen()

	pw, err := newPlaybackWindow(w, cfg)
	if err != nil {
		logger.Error("Could not start playback window", "error", err)
		_ = cleanup.RunAll()
		os.Exit(1)
	}
	w.SetCloseIntercept(func() {
		pw.close()
		w.SetCloseIntercept(nil)
		w.Close()
	})

	w.ShowAndRun()
	if err := cleanup.RunAll(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
