// Package roster projects the staff directory into a flat read model using
// the same subscribe-and-replace pattern as the alert stream. No dedup or
// notification semantics apply here.
package roster

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sentinel-security/sentinel-console/internal/domain"
	"github.com/sentinel-security/sentinel-console/internal/storage"
	"github.com/sentinel-security/sentinel-console/internal/store"
)

type Sync struct {
	store    store.EmployeeStore // nil in demo mode
	resolver *storage.Resolver
	bucket   string
	logger   *slog.Logger

	mu        sync.Mutex
	employees []domain.Employee

	onUpdate func([]domain.Employee)
}

func NewSync(st store.EmployeeStore, resolver *storage.Resolver, bucket string, logger *slog.Logger) *Sync {
	return &Sync{
		store:    st,
		resolver: resolver,
		bucket:   bucket,
		logger:   logger,
	}
}

// OnUpdate registers a callback invoked after every roster change. Set
// before Run.
func (s *Sync) OnUpdate(fn func([]domain.Employee)) {
	s.onUpdate = fn
}

// Run applies directory snapshots until ctx is cancelled; in demo mode it
// seeds the fixed roster and idles.
func (s *Sync) Run(ctx context.Context) error {
	if s.store == nil {
		s.logger.Info("employee directory not configured, running in demo mode")
		s.Apply(demoEmployees())
		<-ctx.Done()
		return nil
	}

	sub, err := s.store.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	s.logger.Info("employee directory subscription established")

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-sub.C:
			if !ok {
				s.logger.Warn("employee directory subscription closed")
				return nil
			}
			s.Apply(snap)
		}
	}
}

// Apply replaces the roster with snap, resolving each photo reference
// against the known-faces bucket. Per-record and stateless.
func (s *Sync) Apply(snap []domain.Employee) {
	employees := make([]domain.Employee, len(snap))
	for i, e := range snap {
		e.PhotoURL = s.resolver.Resolve(s.bucket, e.PhotoURL)
		employees[i] = e
	}

	s.mu.Lock()
	s.employees = employees
	s.mu.Unlock()

	if s.onUpdate != nil {
		s.onUpdate(s.Employees())
	}
}

// Employees returns a copy of the current roster, name-ascending as
// delivered by the directory.
func (s *Sync) Employees() []domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func demoEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: "1", Name: "Jane Smith", Email: "jane@example.com", Phone: "+1 234 567 891", Role: "Technical Support", Active: true, PhotoURL: "https://picsum.photos/seed/p2/150/150"},
		{ID: "2", Name: "John Doe", Email: "john@example.com", Phone: "+1 234 567 890", Role: "Security Manager", Active: true, PhotoURL: "https://picsum.photos/seed/p1/150/150"},
		{ID: "3", Name: "Mike Johnson", Email: "mike@example.com", Phone: "+1 234 567 892", Role: "Night Watch", Active: false, PhotoURL: "https://picsum.photos/seed/p3/150/150"},
	}
}
