// Package store adapts the alert record store (Postgres) into ordered
// realtime snapshot subscriptions. Records are written by the external
// classification pipeline; the console only subscribes and patches the
// reviewed flag.
package store

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sentinel-security/sentinel-console/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool used for data access. pgxmock
// satisfies it in tests.
type PgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AlertStore exposes the alert record collection: an ordered realtime
// subscription, the single legal field update, and record insertion for
// ingest tooling.
type AlertStore interface {
	Subscribe(ctx context.Context) (*Subscription[domain.Alert], error)
	MarkReviewed(ctx context.Context, id string) error
	Insert(ctx context.Context, a *domain.Alert) error
}

// EmployeeStore exposes the staff directory as an ordered subscription.
type EmployeeStore interface {
	Subscribe(ctx context.Context) (*Subscription[domain.Employee], error)
}

// Subscription delivers full ordered snapshots on C. Every delivery replaces
// the previous one; pending snapshots are coalesced so a slow consumer only
// ever sees the latest state. C is closed when the subscription ends.
type Subscription[T any] struct {
	C <-chan []T

	stop context.CancelFunc
	once sync.Once
}

// Close releases the subscription. Idempotent; safe on every exit path.
func (s *Subscription[T]) Close() {
	s.once.Do(s.stop)
}

// push delivers snap into a 1-buffered channel, replacing any snapshot the
// receiver has not picked up yet.
func push[T any](ch chan []T, snap []T) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
