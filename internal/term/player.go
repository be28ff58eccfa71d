// Package term renders the playback mockup in a terminal. The metadata panel
// occupies the top rows, the controls panel the bottom row, and terminal
// mouse-motion reports drive the overlay controller.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/oukeidos/playback/internal/config"
	"github.com/oukeidos/playback/internal/media"
	"github.com/oukeidos/playback/internal/overlay"
)

var (
	styleVideo    = tcell.StyleDefault.Background(tcell.NewRGBColor(16, 16, 20)).Foreground(tcell.NewRGBColor(120, 120, 130))
	styleTitle    = tcell.StyleDefault.Background(tcell.NewRGBColor(30, 30, 36)).Foreground(tcell.ColorWhite).Bold(true)
	styleSubtitle = tcell.StyleDefault.Background(tcell.NewRGBColor(30, 30, 36)).Foreground(tcell.NewRGBColor(180, 180, 190))
	styleControls = tcell.StyleDefault.Background(tcell.NewRGBColor(30, 30, 36)).Foreground(tcell.ColorWhite)
)

// Player is the terminal frontend. It implements overlay.Regions and owns
// the screen for the duration of Run.
type Player struct {
	screen tcell.Screen
	cfg    config.Config
	src    *media.Source
	poster *media.Poster
	log    *slog.Logger

	sched *overlay.TimerScheduler
	ctrl  *overlay.Controller
	calls chan func()
	done  chan struct{}

	metadataVisible bool
	controlsVisible bool
	playing         bool

	// drawn runs on the loop goroutine after every frame.
	drawn func()
}

// New builds a player on an uninitialized screen. src may be nil.
func New(screen tcell.Screen, cfg config.Config, src *media.Source, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	p := &Player{
		screen: screen,
		cfg:    cfg,
		src:    src,
		log:    log.With("frontend", "term"),
		calls:  make(chan func(), 16),
		done:   make(chan struct{}),
	}
	if src != nil {
		if poster, err := src.Probe(); err == nil {
			p.poster = &poster
		} else {
			p.log.Debug("No poster for media", "path", src.Path, "error", err)
		}
	}
	return p
}

// SetMetadataOverlayVisible and SetControlsOverlayVisible implement
// overlay.Regions; the next frame picks the change up.
func (p *Player) SetMetadataOverlayVisible(v bool) { p.metadataVisible = v }
func (p *Player) SetControlsOverlayVisible(v bool) { p.controlsVisible = v }

// Controller exposes the overlay controller once the player has started.
func (p *Player) Controller() *overlay.Controller { return p.ctrl }

// Run initializes the screen and processes events until ctx is done or the
// user quits.
func (p *Player) Run(ctx context.Context) error {
	if err := p.screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	return p.run(ctx)
}

// run drives an initialized screen. The screen is finalized on return.
func (p *Player) run(ctx context.Context) error {
	p.screen.EnableMouse(tcell.MouseMotionEvents)
	p.screen.HideCursor()

	if err := p.start(); err != nil {
		p.screen.Fini()
		return err
	}
	defer p.stop()

	events := make(chan tcell.Event, 64)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-p.done:
				return nil
			}
		}
	})
	g.Go(func() error {
		defer p.screen.Fini()
		defer close(p.done)
		return p.loop(gctx, events)
	})
	return g.Wait()
}

func (p *Player) start() error {
	p.sched = overlay.NewTimerScheduler(p.dispatch)
	p.ctrl = overlay.New(p, p.sched,
		overlay.WithDelay(p.cfg.HideDelay),
		overlay.WithLogger(p.log),
	)
	if err := p.ctrl.Initialize(); err != nil {
		_ = p.sched.Close()
		return fmt.Errorf("initialize overlays: %w", err)
	}
	p.log.Info("Terminal player started", "delay", p.cfg.HideDelay)
	return nil
}

func (p *Player) stop() {
	p.ctrl.Close()
	_ = p.sched.Close()
	p.log.Info("Terminal player stopped")
}

// dispatch hands timer callbacks to the event loop.
func (p *Player) dispatch(fn func()) {
	select {
	case p.calls <- fn:
	case <-p.done:
	}
}

func (p *Player) loop(ctx context.Context, events <-chan tcell.Event) error {
	p.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-p.calls:
			fn()
		case ev := <-events:
			if !p.handle(ev) {
				return nil
			}
		}
		p.draw()
	}
}

// handle applies one terminal event. It returns false when the user quits.
func (p *Player) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		p.ctrl.OnPointerMotion()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			p.playing = !p.playing
			p.log.Debug("Playback toggled", "playing", p.playing)
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

func (p *Player) draw() {
	p.screen.Clear()
	w, h := p.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.screen.SetContent(x, y, ' ', nil, styleVideo)
		}
	}
	label := "No media"
	if p.src != nil {
		label = p.src.Name
	}
	label = truncate(label, w-2)
	drawText(p.screen, (w-width(label))/2, h/2, label, styleVideo)

	if p.metadataVisible {
		fillRow(p.screen, 0, w, styleTitle)
		drawText(p.screen, 1, 0, truncate(p.cfg.Title, w-2), styleTitle)
		if h > 1 {
			fillRow(p.screen, 1, w, styleSubtitle)
			drawText(p.screen, 1, 1, truncate(p.details(), w-2), styleSubtitle)
		}
	}
	if p.controlsVisible && h > 2 {
		fillRow(p.screen, h-1, w, styleControls)
		drawText(p.screen, 1, h-1, truncate(p.controlsLine(), w-2), styleControls)
	}
	p.screen.Show()
	if p.drawn != nil {
		p.drawn()
	}
}

func (p *Player) details() string {
	if p.src == nil {
		return "Pass a media file to preview it"
	}
	parts := []string{p.src.Name, media.HumanSize(p.src.Size)}
	if p.poster != nil {
		parts = append(parts, fmt.Sprintf("%dx%d %s", p.poster.Width, p.poster.Height, p.poster.Format))
	}
	return strings.Join(parts, " · ")
}

func (p *Player) controlsLine() string {
	icon := "▶"
	if p.playing {
		icon = "⏸"
	}
	return fmt.Sprintf("%s  00:00 / --:--   space play/pause   q quit", icon)
}

func fillRow(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
