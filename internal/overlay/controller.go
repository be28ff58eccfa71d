// Package overlay decides when the metadata and controls overlays of a
// playback window are shown, based on how recently the pointer moved.
package overlay

import (
	"errors"
	"log/slog"
	"time"

	"github.com/oukeidos/playback/internal/apperrors"
)

// DefaultHideDelay is how long the overlays stay up after the last motion.
const DefaultHideDelay = 3 * time.Second

// Handle identifies a scheduled timer. The zero Handle means no timer.
type Handle uint64

// Callback runs when a timer fires. Returning true asks the scheduler to
// re-arm the same handle with the same delay.
type Callback func(h Handle) (again bool)

// Scheduler arms and cancels one-shot timers on the host event loop.
type Scheduler interface {
	Schedule(delay time.Duration, fn Callback) (Handle, error)
	// Cancel may be best-effort: a firing already on its way can still arrive.
	Cancel(h Handle)
}

// Regions receives visibility changes for the two overlay panels.
type Regions interface {
	SetMetadataOverlayVisible(visible bool)
	SetControlsOverlayVisible(visible bool)
}

// State is a snapshot of the controller.
type State struct {
	MetadataVisible bool
	ControlsVisible bool
	Pending         Handle
}

// Revealed reports whether the overlays are currently shown.
func (s State) Revealed() bool {
	return s.MetadataVisible && s.ControlsVisible
}

// Controller is a trailing-edge debounce over pointer motion. All methods
// must be called from the event loop that also runs the scheduler callbacks.
type Controller struct {
	regions Regions
	sched   Scheduler
	delay   time.Duration
	log     *slog.Logger

	state   State
	closed  bool
	lastErr error
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay overrides DefaultHideDelay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger. A nil logger keeps slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New builds a controller. Nothing is shown or scheduled until Initialize.
func New(regions Regions, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		regions: regions,
		sched:   sched,
		delay:   DefaultHideDelay,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "overlay")
	return c
}

// Initialize reveals the overlays and arms the first hide timer, so a fresh
// window auto-hides without needing a synthetic motion event.
func (c *Controller) Initialize() error {
	if c.regions == nil || c.sched == nil {
		return apperrors.Scheduler(errors.New("overlay controller needs regions and a scheduler"))
	}
	if err := c.reveal(); err != nil {
		return err
	}
	c.log.Debug("Overlays initialized", "delay", c.delay)
	return nil
}

// OnPointerMotion reveals the overlays and restarts the hide countdown.
// A scheduler failure keeps the overlays visible and is reported through Err.
func (c *Controller) OnPointerMotion() {
	if c.closed {
		return
	}
	if err := c.reveal(); err != nil {
		c.log.Error("Hide timer could not be armed", "error", err)
	}
}

// OnHideTimeout hides the overlays if h is still the pending timer. Firings
// of cancelled timers are ignored. It always returns false (one-shot).
func (c *Controller) OnHideTimeout(h Handle) bool {
	if c.closed || h == 0 || h != c.state.Pending {
		if h != 0 {
			c.log.Debug("Ignoring stale hide timer", "handle", uint64(h))
		}
		return false
	}
	c.state.Pending = 0
	c.setVisible(false)
	c.log.Debug("Overlays hidden", "handle", uint64(h))
	return false
}

// Close cancels any pending hide timer. Later events are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.state.Pending != 0 && c.sched != nil {
		c.sched.Cancel(c.state.Pending)
	}
	c.state.Pending = 0
}

// State, Delay and Closed are read-only accessors.
func (c *Controller) State() State         { return c.state }
func (c *Controller) Delay() time.Duration { return c.delay }
func (c *Controller) Closed() bool         { return c.closed }

// Err returns the last scheduler failure, if any.
func (c *Controller) Err() error { return c.lastErr }

func (c *Controller) reveal() error {
	if c.closed {
		return apperrors.Scheduler(errors.New("overlay controller is closed"))
	}
	c.setVisible(true)

	if c.state.Pending != 0 {
		c.sched.Cancel(c.state.Pending)
		c.state.Pending = 0
	}

	h, err := c.sched.Schedule(c.delay, c.OnHideTimeout)
	if err != nil {
		if _, ok := apperrors.KindOf(err); !ok {
			err = apperrors.Scheduler(err)
		}
		c.lastErr = err
		return err
	}
	c.state.Pending = h
	c.lastErr = nil
	return nil
}

// setVisible notifies the regions only when the value changes.
func (c *Controller) setVisible(visible bool) {
	if c.state.MetadataVisible == visible && c.state.ControlsVisible == visible {
		return
	}
	c.state.MetadataVisible = visible
	c.state.ControlsVisible = visible
	c.regions.SetMetadataOverlayVisible(visible)
	c.regions.SetControlsOverlayVisible(visible)
}
