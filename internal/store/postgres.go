package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sentinel-security/sentinel-console/internal/domain"
)

const (
	alertsChannel    = "alerts_changed"
	employeesChannel = "employees_changed"

	// The console only ever shows the most recent alerts; the store caps
	// every snapshot at this many records.
	snapshotLimit = 50
)

type PostgresAlertStore struct {
	pool     PgxPool
	listener *pgxpool.Pool
	logger   *slog.Logger
}

func NewPostgresAlertStore(pool *pgxpool.Pool, logger *slog.Logger) *PostgresAlertStore {
	return &PostgresAlertStore{pool: pool, listener: pool, logger: logger}
}

func (s *PostgresAlertStore) Subscribe(ctx context.Context) (*Subscription[domain.Alert], error) {
	return subscribe(ctx, s.listener, s.logger, alertsChannel, s.snapshot)
}

func (s *PostgresAlertStore) snapshot(ctx context.Context) ([]domain.Alert, error) {
	query := `
		SELECT id, status, matched_with, distance, image_url, cropped_face_url, created_at, reviewed
		FROM alerts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, snapshotLimit)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var a domain.Alert
		err := rows.Scan(
			&a.ID, &a.Status, &a.MatchedWith, &a.Distance,
			&a.ImageURL, &a.CroppedFaceURL, &a.CreatedAt, &a.Reviewed,
		)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// MarkReviewed applies the single legal mutation. Re-marking an already
// reviewed record matches the same row and stays a no-op.
func (s *PostgresAlertStore) MarkReviewed(ctx context.Context, id string) error {
	query := `UPDATE alerts SET reviewed = true WHERE id = $1`

	result, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark reviewed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrAlertNotFound
	}

	return nil
}

func (s *PostgresAlertStore) Insert(ctx context.Context, a *domain.Alert) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query := `
		INSERT INTO alerts (id, status, matched_with, distance, image_url, cropped_face_url, reviewed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := s.pool.QueryRow(ctx, query,
		a.ID, a.Status, a.MatchedWith, a.Distance,
		a.ImageURL, a.CroppedFaceURL, a.Reviewed,
	).Scan(&a.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}

	return nil
}

type PostgresEmployeeStore struct {
	pool     PgxPool
	listener *pgxpool.Pool
	logger   *slog.Logger
}

func NewPostgresEmployeeStore(pool *pgxpool.Pool, logger *slog.Logger) *PostgresEmployeeStore {
	return &PostgresEmployeeStore{pool: pool, listener: pool, logger: logger}
}

func (s *PostgresEmployeeStore) Subscribe(ctx context.Context) (*Subscription[domain.Employee], error) {
	return subscribe(ctx, s.listener, s.logger, employeesChannel, s.snapshot)
}

func (s *PostgresEmployeeStore) snapshot(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT id, name, email, phone, role, photo_url, active
		FROM employees
		ORDER BY name ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Role, &e.PhotoURL, &e.Active)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// subscribe pins a pool connection to LISTEN on channel, delivers one initial
// snapshot, then refetches and delivers on every notification. A failed
// refetch is logged and skipped so the subscriber keeps its last good
// snapshot.
func subscribe[T any](
	ctx context.Context,
	pool *pgxpool.Pool,
	logger *slog.Logger,
	channel string,
	fetch func(context.Context) ([]T, error),
) (*Subscription[T], error) {
	ctx, cancel := context.WithCancel(ctx)

	conn, err := pool.Acquire(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("acquire listener connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		conn.Release()
		cancel()
		return nil, fmt.Errorf("listen on %s: %w", channel, err)
	}

	initial, err := fetch(ctx)
	if err != nil {
		conn.Release()
		cancel()
		return nil, fmt.Errorf("initial snapshot: %w", err)
	}

	ch := make(chan []T, 1)
	ch <- initial

	go func() {
		defer close(ch)
		defer conn.Release()

		for {
			if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				// Listener connection is gone. The subscriber keeps the
				// last snapshot it saw rather than clearing its view.
				logger.Error("store subscription lost",
					slog.String("channel", channel),
					slog.Any("error", err),
				)
				return
			}

			snap, err := fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error("snapshot refresh failed",
					slog.String("channel", channel),
					slog.Any("error", err),
				)
				continue
			}

			push(ch, snap)
		}
	}()

	return &Subscription[T]{C: ch, stop: cancel}, nil
}
