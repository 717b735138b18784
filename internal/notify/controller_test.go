package notify

import (
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-security/sentinel-console/internal/domain"
)

type recordedShow struct {
	alert    domain.Alert
	shownAt  time.Time
	duration time.Duration
}

type recordingEvents struct {
	mu     sync.Mutex
	shows  []recordedShow
	hides  int
	sounds []string
}

func (r *recordingEvents) ShowPopup(alert domain.Alert, shownAt time.Time, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shows = append(r.shows, recordedShow{alert, shownAt, duration})
}

func (r *recordingEvents) HidePopup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hides++
}

func (r *recordingEvents) PlaySound(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sounds = append(r.sounds, url)
}

func (r *recordingEvents) snapshot() (shows []recordedShow, hides int, sounds []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedShow(nil), r.shows...), r.hides, append([]string(nil), r.sounds...)
}

type fakeSound struct {
	url string
	err error
}

func (f *fakeSound) Play() (string, error) {
	return f.url, f.err
}

func newTestController(events Events, sound SoundPlayer, d time.Duration) *Controller {
	c := NewController(events, sound, slog.New(slog.DiscardHandler))
	c.duration = d
	return c
}

func TestController_ShowPlaysSoundAndCarriesTimerDuration(t *testing.T) {
	events := &recordingEvents{}
	c := newTestController(events, &fakeSound{url: "https://cdn/alert.mp3"}, time.Hour)
	defer c.Close()

	c.HandleNewAlert(domain.Alert{ID: "a1"})

	shows, hides, sounds := events.snapshot()
	require.Len(t, shows, 1)
	assert.Equal(t, "a1", shows[0].alert.ID)
	assert.Equal(t, time.Hour, shows[0].duration)
	assert.Equal(t, 0, hides)
	assert.Equal(t, []string{"https://cdn/alert.mp3"}, sounds)

	active := c.Active()
	require.NotNil(t, active)
	assert.Equal(t, "a1", active.ID)
}

func TestController_AutoDismiss(t *testing.T) {
	events := &recordingEvents{}
	c := newTestController(events, nil, 20*time.Millisecond)
	defer c.Close()

	c.HandleNewAlert(domain.Alert{ID: "a1"})

	require.Eventually(t, func() bool {
		_, hides, _ := events.snapshot()
		return hides == 1
	}, time.Second, 5*time.Millisecond)

	assert.Nil(t, c.Active())
}

func TestController_ManualDismissCancelsTimer(t *testing.T) {
	events := &recordingEvents{}
	c := newTestController(events, nil, 30*time.Millisecond)
	defer c.Close()

	c.HandleNewAlert(domain.Alert{ID: "a1"})
	c.Dismiss()
	assert.Nil(t, c.Active())

	// The cancelled timer must not produce a second hide.
	time.Sleep(80 * time.Millisecond)
	_, hides, _ := events.snapshot()
	assert.Equal(t, 1, hides)
}

func TestController_ActivateNavigatesThenDismisses(t *testing.T) {
	events := &recordingEvents{}
	c := newTestController(events, nil, time.Hour)
	defer c.Close()

	c.HandleNewAlert(domain.Alert{ID: "a1"})

	target := c.Activate()
	require.NotNil(t, target)
	assert.Equal(t, "a1", target.ID)
	assert.Nil(t, c.Active())

	_, hides, _ := events.snapshot()
	assert.Equal(t, 1, hides)

	assert.Nil(t, c.Activate(), "activate while idle returns nil")
}

func TestController_NewAlertReplacesPopupAndTimer(t *testing.T) {
	events := &recordingEvents{}
	c := newTestController(events, nil, 50*time.Millisecond)
	defer c.Close()

	c.HandleNewAlert(domain.Alert{ID: "a1"})
	time.Sleep(30 * time.Millisecond)
	c.HandleNewAlert(domain.Alert{ID: "a2"})

	// a1's timer was replaced; at most one popup exists, payload a2.
	active := c.Active()
	require.NotNil(t, active)
	assert.Equal(t, "a2", active.ID)

	// Past a1's original deadline, a2 is still showing.
	time.Sleep(30 * time.Millisecond)
	active = c.Active()
	require.NotNil(t, active)
	assert.Equal(t, "a2", active.ID)

	require.Eventually(t, func() bool {
		_, hides, _ := events.snapshot()
		return hides == 1
	}, time.Second, 5*time.Millisecond)
}

func TestController_DismissWhileIdleIsNoOp(t *testing.T) {
	events := &recordingEvents{}
	c := newTestController(events, nil, time.Hour)
	defer c.Close()

	c.Dismiss()

	_, hides, _ := events.snapshot()
	assert.Equal(t, 0, hides)
}

func TestController_SoundFailureIsSwallowed(t *testing.T) {
	events := &recordingEvents{}
	c := newTestController(events, &fakeSound{err: errors.New("blocked by policy")}, time.Hour)
	defer c.Close()

	c.HandleNewAlert(domain.Alert{ID: "a1"})

	shows, _, sounds := events.snapshot()
	require.Len(t, shows, 1, "popup still shows when sound fails")
	assert.Empty(t, sounds)
}

func TestController_CloseStopsEverything(t *testing.T) {
	events := &recordingEvents{}
	c := newTestController(events, nil, 20*time.Millisecond)

	c.HandleNewAlert(domain.Alert{ID: "a1"})
	c.Close()

	assert.Nil(t, c.Active())

	c.HandleNewAlert(domain.Alert{ID: "a2"})
	assert.Nil(t, c.Active(), "events after close are ignored")

	// No auto-dismiss fires against the torn-down controller.
	time.Sleep(60 * time.Millisecond)
	_, hides, _ := events.snapshot()
	assert.Equal(t, 0, hides)
}
