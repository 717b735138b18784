// Package notify holds the popup notification state machine: one controller
// per dashboard session, at most one popup visible at a time.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sentinel-security/sentinel-console/internal/domain"
)

// PopupDuration is the fixed auto-dismiss window. The client renders a
// linear shrink bar from the shown_at/duration pair it receives, so the
// visual countdown and the server timer always agree.
const PopupDuration = 5 * time.Second

// Events receives popup lifecycle transitions for one session.
type Events interface {
	ShowPopup(alert domain.Alert, shownAt time.Time, duration time.Duration)
	HidePopup()
	PlaySound(url string)
}

// SoundPlayer verifies the alert sound asset before the play event is sent.
type SoundPlayer interface {
	Play() (url string, err error)
}

// Controller is a two-state machine: Idle (no popup) and Showing(alert).
// A new alert while Showing replaces the payload and restarts the timer
// rather than queuing. Every exit path stops the timer; the generation
// counter makes a superseded timer callback a guaranteed no-op even if it
// has already fired and is waiting on the lock.
type Controller struct {
	events Events
	sound  SoundPlayer
	logger *slog.Logger

	mu       sync.Mutex
	active   *domain.Alert
	timer    *time.Timer
	gen      uint64
	duration time.Duration
	closed   bool
}

func NewController(events Events, sound SoundPlayer, logger *slog.Logger) *Controller {
	return &Controller{
		events:   events,
		sound:    sound,
		logger:   logger,
		duration: PopupDuration,
	}
}

// HandleNewAlert transitions Idle -> Showing, or replaces the current popup
// when already Showing. Implements stream.Listener.
func (c *Controller) HandleNewAlert(a domain.Alert) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.stopTimerLocked()
	alert := a
	c.active = &alert
	c.gen++
	gen := c.gen
	shownAt := time.Now()
	c.timer = time.AfterFunc(c.duration, func() { c.autoDismiss(gen) })
	c.mu.Unlock()

	c.events.ShowPopup(alert, shownAt, c.duration)
	c.playSound()
}

func (c *Controller) autoDismiss(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || c.active == nil {
		c.mu.Unlock()
		return
	}
	c.dismissLocked()
	c.mu.Unlock()

	c.events.HidePopup()
}

// Dismiss handles explicit user dismissal. Safe to call in any state.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	if c.closed || c.active == nil {
		c.mu.Unlock()
		return
	}
	c.dismissLocked()
	c.mu.Unlock()

	c.events.HidePopup()
}

// Activate handles the user clicking through to the alert view. It returns
// the alert being navigated to, then dismisses the popup; nil when no popup
// is showing.
func (c *Controller) Activate() *domain.Alert {
	c.mu.Lock()
	if c.closed || c.active == nil {
		c.mu.Unlock()
		return nil
	}
	alert := c.active
	c.dismissLocked()
	c.mu.Unlock()

	c.events.HidePopup()
	return alert
}

// Active returns the currently shown alert, or nil when Idle.
func (c *Controller) Active() *domain.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return nil
	}
	alert := *c.active
	return &alert
}

// Close tears the controller down: timer stopped, popup dropped, further
// events ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dismissLocked()
	c.closed = true
}

func (c *Controller) dismissLocked() {
	c.stopTimerLocked()
	c.active = nil
	c.gen++
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// playSound is best-effort: a blocked or missing sound asset is logged at
// debug and otherwise swallowed, never surfaced to the operator.
func (c *Controller) playSound() {
	if c.sound == nil {
		return
	}

	url, err := c.sound.Play()
	if err != nil {
		c.logger.Debug("alert sound unavailable", slog.Any("error", err))
		return
	}
	c.events.PlaySound(url)
}
