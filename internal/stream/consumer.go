// Package stream maintains the console's ordered in-memory view of the alert
// collection: snapshot ingestion, unread accounting, and new-alert detection
// for connected dashboard sessions.
package stream

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sentinel-security/sentinel-console/internal/domain"
	"github.com/sentinel-security/sentinel-console/internal/storage"
	"github.com/sentinel-security/sentinel-console/internal/store"
)

// Listener receives new-alert events for one dashboard session.
type Listener interface {
	HandleNewAlert(domain.Alert)
}

// Session is the per-dashboard-session observation state. It records the
// identity of the head alert that session last saw, which is the sole
// deduplication mechanism: the store may redeliver an identical snapshot
// after reconnects, and a plain "list changed" check would re-fire
// notifications and replay the alert sound.
type Session struct {
	LastSeenAlertID string
}

// Consumer owns the ordered alert list and the unread count. The store is
// the only source of truth for membership and order: every snapshot replaces
// the list wholesale, never merged field by field.
type Consumer struct {
	store    store.AlertStore // nil in demo mode
	resolver *storage.Resolver
	bucket   string
	logger   *slog.Logger

	mu       sync.Mutex
	alerts   []domain.Alert
	unread   int
	sessions map[*Session]Listener

	onUpdate func(alerts []domain.Alert, unread int)
}

func NewConsumer(st store.AlertStore, resolver *storage.Resolver, bucket string, logger *slog.Logger) *Consumer {
	return &Consumer{
		store:    st,
		resolver: resolver,
		bucket:   bucket,
		logger:   logger,
		sessions: make(map[*Session]Listener),
	}
}

// OnUpdate registers a callback invoked after every list change with the new
// snapshot and unread count. Set before Run.
func (c *Consumer) OnUpdate(fn func(alerts []domain.Alert, unread int)) {
	c.onUpdate = fn
}

// Run drives the consumer until ctx is cancelled. In live mode it holds the
// store subscription and applies every delivered snapshot; in demo mode it
// seeds the fixed demo list and idles. The subscription is released on every
// exit path.
func (c *Consumer) Run(ctx context.Context) error {
	if c.store == nil {
		c.logger.Info("alert store not configured, running in demo mode")
		c.Apply(demoAlerts())
		<-ctx.Done()
		return nil
	}

	sub, err := c.store.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	c.logger.Info("alert stream subscription established")

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-sub.C:
			if !ok {
				// Subscription lost. The last applied snapshot stays in
				// place; the operator sees stale data instead of a blank
				// console.
				c.logger.Warn("alert stream subscription closed")
				return nil
			}
			c.Apply(snap)
		}
	}
}

// Apply replaces the local list with snap, recomputes the unread count and
// evaluates new-alert detection for every attached session. Resolution,
// replacement and evaluation happen inside one critical section so detection
// never runs against a partially updated list.
func (c *Consumer) Apply(snap []domain.Alert) {
	alerts := make([]domain.Alert, len(snap))
	for i, a := range snap {
		a.ImageURL = c.resolver.Resolve(c.bucket, a.ImageURL)
		a.CroppedFaceURL = c.resolver.Resolve(c.bucket, a.CroppedFaceURL)
		alerts[i] = a
	}

	c.mu.Lock()
	c.alerts = alerts
	c.recomputeUnreadLocked()
	c.evaluateLocked()
	c.mu.Unlock()

	c.notifyUpdate()
}

func (c *Consumer) recomputeUnreadLocked() {
	unread := 0
	for _, a := range c.alerts {
		if !a.Reviewed {
			unread++
		}
	}
	c.unread = unread
}

// evaluateLocked inspects only the head record. A session is notified at
// most once per distinct head identity; a reviewed head never notifies.
// Alerts that arrive and are displaced from the head between two snapshots
// are never evaluated at all: they count toward unread but raise no popup.
func (c *Consumer) evaluateLocked() {
	if len(c.alerts) == 0 {
		return
	}

	head := c.alerts[0]
	if head.Reviewed {
		return
	}

	for sess, l := range c.sessions {
		if sess.LastSeenAlertID == head.ID {
			continue
		}
		sess.LastSeenAlertID = head.ID
		l.HandleNewAlert(head)
	}
}

// Attach registers a dashboard session. The current head is evaluated for
// the new session immediately, mirroring a freshly opened dashboard. The
// returned detach func is idempotent and must be called on session end.
func (c *Consumer) Attach(sess *Session, l Listener) func() {
	c.mu.Lock()
	c.sessions[sess] = l
	if len(c.alerts) > 0 {
		head := c.alerts[0]
		if !head.Reviewed && sess.LastSeenAlertID != head.ID {
			sess.LastSeenAlertID = head.ID
			l.HandleNewAlert(head)
		}
	}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.sessions, sess)
			c.mu.Unlock()
		})
	}
}

// Alerts returns a copy of the current ordered list.
func (c *Consumer) Alerts() []domain.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Alert, len(c.alerts))
	copy(out, c.alerts)
	return out
}

// Get looks up one alert in the current list.
func (c *Consumer) Get(id string) (domain.Alert, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, a := range c.alerts {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Alert{}, false
}

func (c *Consumer) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// MarkReviewed flips the reviewed flag of one listed alert. In live mode the
// store takes the write and the next snapshot reflects it; the local list is
// not mutated optimistically to avoid diverging from the store's
// authoritative state. A store write failure is logged and reported as a
// no-op: the caller observes the record staying unreviewed. In demo mode the
// local record is flipped directly.
func (c *Consumer) MarkReviewed(ctx context.Context, id string) error {
	if _, ok := c.Get(id); !ok {
		return domain.ErrAlertNotFound
	}

	if c.store != nil {
		if err := c.store.MarkReviewed(ctx, id); err != nil {
			c.logger.Error("mark reviewed failed",
				slog.String("alert_id", id),
				slog.Any("error", err),
			)
		}
		return nil
	}

	c.mu.Lock()
	for i := range c.alerts {
		if c.alerts[i].ID == id {
			c.alerts[i].Reviewed = true
			break
		}
	}
	c.recomputeUnreadLocked()
	c.evaluateLocked()
	c.mu.Unlock()

	c.notifyUpdate()
	return nil
}

// Simulate prepends a synthetic alert to the local list without contacting
// the store. It exists so the notification and review paths stay testable
// and demoable without live infrastructure.
func (c *Consumer) Simulate() domain.Alert {
	id := "sim-" + randomID(9)

	alert := domain.Alert{
		ID:             id,
		Status:         domain.StatusMatch,
		Distance:       0.08,
		ImageURL:       "https://images.unsplash.com/photo-1533738363-b7f9aef128ce?auto=format&fit=crop&q=80&w=800",
		CroppedFaceURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=" + id,
		CreatedAt:      time.Now(),
		Reviewed:       false,
	}

	if rand.Float64() > 0.4 {
		alert.Status = domain.StatusUnknown
		alert.Distance = 0.92
	} else {
		matched := "Test Employee"
		alert.MatchedWith = &matched
	}

	c.mu.Lock()
	c.alerts = append([]domain.Alert{alert}, c.alerts...)
	c.recomputeUnreadLocked()
	c.evaluateLocked()
	c.mu.Unlock()

	c.notifyUpdate()
	return alert
}

func (c *Consumer) notifyUpdate() {
	if c.onUpdate == nil {
		return
	}
	c.onUpdate(c.Alerts(), c.UnreadCount())
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}

// demoAlerts is the fixed seed shown when no store is configured. The single
// record is pre-marked reviewed so opening the demo console does not fire a
// notification.
func demoAlerts() []domain.Alert {
	return []domain.Alert{
		{
			ID:             "demo-1",
			Status:         domain.StatusUnknown,
			Distance:       0.85,
			ImageURL:       "https://images.unsplash.com/photo-1543269865-cbf427effbad?auto=format&fit=crop&q=80&w=800",
			CroppedFaceURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Stranger1",
			CreatedAt:      time.Now().Add(-2 * time.Hour),
			Reviewed:       true,
		},
	}
}
