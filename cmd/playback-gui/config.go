package main

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/oukeidos/playback/internal/config"
	"github.com/oukeidos/playback/internal/logger"
	"github.com/oukeidos/playback/internal/media"
)

const (
	prefHideDelayMillis = "HideDelayMillis"
	prefLastSource      = "LastSource"

	minHideDelayGUI = 500 * time.Millisecond
)

// applyPreferences fills settings the user did not pass on the command line
// from the stored app preferences.
func applyPreferences(prefs fyne.Preferences, cfg config.Config, explicitDelay bool) config.Config {
	if !explicitDelay {
		ms := prefs.IntWithFallback(prefHideDelayMillis, int(cfg.HideDelay/time.Millisecond))
		requested := time.Duration(ms) * time.Millisecond
		delay := clampHideDelay(requested)
		if delay != requested {
			logger.Warn("Hide delay clamped", "requested", requested, "effective", delay)
			prefs.SetInt(prefHideDelayMillis, int(delay/time.Millisecond))
		}
		cfg.HideDelay = delay
	}

	if strings.TrimSpace(cfg.Source) == "" {
		if last := prefs.String(prefLastSource); last != "" {
			if _, err := media.Resolve(last); err == nil {
				cfg.Source = last
			} else {
				logger.Debug("Last media source no longer available", "path", last)
				prefs.RemoveValue(prefLastSource)
			}
		}
	}
	return cfg
}

// clampHideDelay bounds a stored delay to what the desktop window accepts.
func clampHideDelay(d time.Duration) time.Duration {
	return min(max(d, minHideDelayGUI), config.MaxHideDelay)
}

// savePreferences stores the delay within the bounds applyPreferences
// enforces.
func (pw *playbackWindow) savePreferences() {
	app := fyne.CurrentApp()
	if app == nil {
		return
	}
	prefs := app.Preferences()
	prefs.SetInt(prefHideDelayMillis, int(clampHideDelay(pw.config.HideDelay)/time.Millisecond))
	if pw.source != nil {
		prefs.SetString(prefLastSource, pw.source.Path)
	}
}
