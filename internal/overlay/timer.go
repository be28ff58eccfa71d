package overlay

import (
	"errors"
	"sync"
	"time"

	"github.com/oukeidos/playback/internal/apperrors"
)

// ErrSchedulerClosed is returned by Schedule after Close.
var ErrSchedulerClosed = apperrors.New(apperrors.KindScheduler, "Hide timer scheduler is closed.", nil)

// TimerScheduler implements Scheduler with time.AfterFunc. Expired timers are
// handed to dispatch, which must run the function on the host event loop
// (fyne.Do for the desktop window). A nil dispatch runs callbacks on the
// timer goroutine.
type TimerScheduler struct {
	dispatch func(func())

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
	closed bool
}

// NewTimerScheduler returns a scheduler that hands expired timers to dispatch.
func NewTimerScheduler(dispatch func(func())) *TimerScheduler {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &TimerScheduler{
		dispatch: dispatch,
		timers:   make(map[Handle]*time.Timer),
	}
}

// Schedule arms a one-shot timer. Bad input and a closed scheduler are
// KindScheduler errors.
func (s *TimerScheduler) Schedule(delay time.Duration, fn Callback) (Handle, error) {
	if fn == nil {
		return 0, apperrors.Scheduler(errors.New("nil timer callback"))
	}
	if delay <= 0 {
		return 0, apperrors.New(apperrors.KindScheduler, "Hide delay must be positive.", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrSchedulerClosed
	}
	s.next++
	h := s.next
	s.arm(h, delay, fn)
	return h, nil
}

// arm must be called with s.mu held.
func (s *TimerScheduler) arm(h Handle, delay time.Duration, fn Callback) {
	s.timers[h] = time.AfterFunc(delay, func() {
		s.fire(h, delay, fn)
	})
}

func (s *TimerScheduler) fire(h Handle, delay time.Duration, fn Callback) {
	s.mu.Lock()
	if _, ok := s.timers[h]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.timers, h)
	s.mu.Unlock()

	s.dispatch(func() {
		if !fn(h) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.closed {
			s.arm(h, delay, fn)
		}
	})
}

// Cancel stops h if it has not fired yet. A firing that was already
// dispatched still reaches its callback.
func (s *TimerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

// Pending returns the number of armed timers.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close stops every armed timer and rejects further scheduling.
func (s *TimerScheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for h, t := range s.timers {
		t.Stop()
		delete(s.timers, h)
	}
	return nil
}
