package roster

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-security/sentinel-console/internal/domain"
	"github.com/sentinel-security/sentinel-console/internal/storage"
)

func newDemoSync() *Sync {
	return NewSync(nil, storage.NewResolver("https://storage.example.com"), "faces-bucket", slog.New(slog.DiscardHandler))
}

func TestSync_ApplyResolvesPhotos(t *testing.T) {
	s := newDemoSync()

	s.Apply([]domain.Employee{
		{ID: "1", Name: "Ana", PhotoURL: "ana.png"},
		{ID: "2", Name: "Bob", PhotoURL: "https://cdn/bob.png"},
		{ID: "3", Name: "Cal", PhotoURL: ""},
	})

	got := s.Employees()
	require.Len(t, got, 3)
	assert.Equal(t, "https://storage.example.com/faces-bucket/ana.png", got[0].PhotoURL)
	assert.Equal(t, "https://cdn/bob.png", got[1].PhotoURL)
	assert.Equal(t, "", got[2].PhotoURL)
}

func TestSync_ApplyReplacesRoster(t *testing.T) {
	s := newDemoSync()

	s.Apply([]domain.Employee{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Bob"}})
	s.Apply([]domain.Employee{{ID: "3", Name: "Cal"}})

	got := s.Employees()
	require.Len(t, got, 1)
	assert.Equal(t, "Cal", got[0].Name)
}

func TestSync_DemoSeed(t *testing.T) {
	s := newDemoSync()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(s.Employees()) == 3
	}, time.Second, 10*time.Millisecond)

	got := s.Employees()
	assert.Equal(t, "Jane Smith", got[0].Name)
	assert.Equal(t, "John Doe", got[1].Name)
	assert.Equal(t, "Mike Johnson", got[2].Name)
	assert.False(t, got[2].Active)

	cancel()
	require.NoError(t, <-done)
}

func TestSync_OnUpdate(t *testing.T) {
	s := newDemoSync()

	var calls int
	s.OnUpdate(func(employees []domain.Employee) { calls++ })

	s.Apply([]domain.Employee{{ID: "1", Name: "Ana"}})
	assert.Equal(t, 1, calls)
}
