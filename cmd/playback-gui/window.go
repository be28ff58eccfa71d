package main

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/playback/internal/apperrors"
	"github.com/oukeidos/playback/internal/config"
	"github.com/oukeidos/playback/internal/logger"
	"github.com/oukeidos/playback/internal/media"
	"github.com/oukeidos/playback/internal/overlay"
)

var panelColor = color.NRGBA{R: 0, G: 0, B: 0, A: 160}

type playbackWindow struct {
	window fyne.Window
	config config.Config
	source *media.Source
	poster *media.Poster

	sched *overlay.TimerScheduler
	ctrl  *overlay.Controller

	// UI Components
	video         fyne.CanvasObject
	metadataPanel fyne.CanvasObject
	controlsPanel fyne.CanvasObject
	motion        *motionSurface
	titleLabel    *widget.Label
	detailsLabel  *widget.Label
	playButton    *widget.Button
	fullButton    *widget.Button
	infoButton    *widget.Button
	seek          *widget.Slider

	playing   bool
	closed    bool
	sourceErr error
}

func newPlaybackWindow(w fyne.Window, cfg config.Config) (*playbackWindow, error) {
	pw := &playbackWindow{window: w, config: cfg}
	pw.openSource()
	pw.setupUI()

	pw.sched = overlay.NewTimerScheduler(func(fn func()) {
		safeDo("overlay.hide_timer", fn)
	})
	pw.ctrl = overlay.New(panelRegions{metadata: pw.metadataPanel, controls: pw.controlsPanel}, pw.sched,
		overlay.WithDelay(cfg.HideDelay),
		overlay.WithLogger(logger.With("frontend", "gui")),
	)
	if err := pw.ctrl.Initialize(); err != nil {
		_ = pw.sched.Close()
		return nil, fmt.Errorf("initialize overlays: %w", err)
	}
	pw.motion.onMotion = pw.ctrl.OnPointerMotion

	w.Canvas().SetOnTypedKey(pw.handleKey)
	if cfg.Fullscreen {
		pw.setFullScreen(true)
	}
	return pw, nil
}

func (pw *playbackWindow) openSource() {
	if strings.TrimSpace(pw.config.Source) == "" {
		return
	}
	src, err := media.Resolve(pw.config.Source)
	if err != nil {
		pw.sourceErr = err
		logger.Warn("Media source unavailable", "source", pw.config.Source, "error", err)
		return
	}
	pw.source = src
	if poster, err := src.Probe(); err == nil {
		pw.poster = &poster
	} else {
		logger.Debug("Media has no decodable poster", "path", src.Path, "error", err)
	}
	logger.Info("Media opened", "path", src.Path, "size", src.Size)
}

func (pw *playbackWindow) setupUI() {
	background := canvas.NewRectangle(color.Black)
	if pw.poster != nil {
		img := canvas.NewImageFromFile(pw.source.Path)
		img.FillMode = canvas.ImageFillContain
		pw.video = container.NewStack(background, img)
	} else {
		placeholder := canvas.NewText(pw.placeholderText(), color.NRGBA{R: 160, G: 160, B: 170, A: 255})
		placeholder.Alignment = fyne.TextAlignCenter
		pw.video = container.NewStack(background, container.NewCenter(placeholder))
	}

	pw.titleLabel = widget.NewLabelWithStyle(pw.config.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	pw.detailsLabel = widget.NewLabel(pw.details())
	pw.metadataPanel = container.NewStack(
		canvas.NewRectangle(panelColor),
		container.NewPadded(container.NewVBox(pw.titleLabel, pw.detailsLabel)),
	)

	pw.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), pw.togglePlay)
	pw.fullButton = widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), func() {
		pw.setFullScreen(!pw.window.FullScreen())
	})
	pw.infoButton = widget.NewButtonWithIcon("", theme.InfoIcon(), pw.showAbout)
	pw.seek = widget.NewSlider(0, 100)
	elapsed := widget.NewLabel("00:00")
	total := widget.NewLabel("--:--")
	pw.controlsPanel = container.NewStack(
		canvas.NewRectangle(panelColor),
		container.NewPadded(container.NewBorder(nil, nil,
			container.NewHBox(pw.playButton, elapsed),
			container.NewHBox(total, pw.infoButton, pw.fullButton),
			pw.seek,
		)),
	)

	pw.motion = newMotionSurface()
	overlays := container.NewBorder(pw.metadataPanel, pw.controlsPanel, nil, nil)

	// The motion surface sits on top: it only consumes hover events, taps
	// still reach the controls underneath.
	pw.window.SetContent(container.NewStack(pw.video, overlays, pw.motion))
}

func (pw *playbackWindow) placeholderText() string {
	if pw.sourceErr != nil {
		return apperrors.PublicMessage(pw.sourceErr)
	}
	return "No media"
}

func (pw *playbackWindow) details() string {
	if pw.source == nil {
		return "Open a media file to preview it"
	}
	parts := []string{pw.source.Name, media.HumanSize(pw.source.Size)}
	if pw.poster != nil {
		parts = append(parts, fmt.Sprintf("%dx%d %s", pw.poster.Width, pw.poster.Height, pw.poster.Format))
	}
	return strings.Join(parts, " · ")
}

func (pw *playbackWindow) togglePlay() {
	pw.playing = !pw.playing
	if pw.playing {
		pw.playButton.SetIcon(theme.MediaPauseIcon())
	} else {
		pw.playButton.SetIcon(theme.MediaPlayIcon())
	}
	logger.Debug("Playback toggled", "playing", pw.playing)
}

func (pw *playbackWindow) setFullScreen(on bool) {
	pw.window.SetFullScreen(on)
	if on {
		pw.fullButton.SetIcon(theme.ViewRestoreIcon())
	} else {
		pw.fullButton.SetIcon(theme.ViewFullScreenIcon())
	}
	logger.Debug("Fullscreen toggled", "fullscreen", on)
}

func (pw *playbackWindow) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeySpace:
		pw.togglePlay()
	case fyne.KeyF, fyne.KeyF11:
		pw.setFullScreen(!pw.window.FullScreen())
	case fyne.KeyI:
		pw.showAbout()
	case fyne.KeyEscape:
		if pw.window.FullScreen() {
			pw.setFullScreen(false)
		}
	}
}

// close stops the hide timer before the window goes away so no callback
// touches a destroyed canvas.
func (pw *playbackWindow) close() {
	if pw.closed {
		return
	}
	pw.closed = true
	pw.ctrl.Close()
	if err := pw.sched.Close(); err != nil {
		logger.Warn("Hide timer scheduler did not close cleanly", "error", err)
	}
	pw.savePreferences()
}

// panelRegions shows and hides the fyne overlay panels.
type panelRegions struct {
	metadata fyne.CanvasObject
	controls fyne.CanvasObject
}

func (r panelRegions) SetMetadataOverlayVisible(v bool) { setShown(r.metadata, v) }
func (r panelRegions) SetControlsOverlayVisible(v bool) { setShown(r.controls, v) }

func setShown(o fyne.CanvasObject, v bool) {
	if v {
		o.Show()
	} else {
		o.Hide()
	}
}
