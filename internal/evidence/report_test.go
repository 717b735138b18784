package evidence

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-security/sentinel-console/internal/domain"
)

type fakeFetcher struct {
	data []byte
	err  error
}

func (f *fakeFetcher) Fetch(url string) ([]byte, error) {
	return f.data, f.err
}

func testAlert() domain.Alert {
	matched := "Jane Smith"
	return domain.Alert{
		ID:          "a1b2c3d4e5f6",
		Status:      domain.StatusMatch,
		MatchedWith: &matched,
		Distance:    0.08,
		ImageURL:    "https://storage.example.com/bucket/frame.jpg",
		CreatedAt:   time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
		Reviewed:    false,
	}
}

func TestReport_RenderProducesPDF(t *testing.T) {
	r := NewReport("Sentinel Security Systems", "CAM-04 (Main Entrance)", nil)

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	got, err := r.Render(testAlert(), now)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "%PDF-", string(got[:5]))
}

func TestReport_RenderIsDeterministic(t *testing.T) {
	r := NewReport("Sentinel Security Systems", "CAM-04 (Main Entrance)", nil)
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	first, err := r.Render(testAlert(), now)
	require.NoError(t, err)
	second, err := r.Render(testAlert(), now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReport_RenderDoesNotMutateAlert(t *testing.T) {
	r := NewReport("Sentinel Security Systems", "CAM-04 (Main Entrance)", nil)

	a := testAlert()
	before := a
	_, err := r.Render(a, time.Now())
	require.NoError(t, err)
	assert.Equal(t, before, a)
}

func TestReport_FetchFailureDegradesToTextReference(t *testing.T) {
	r := NewReport("Sentinel Security Systems", "CAM-04 (Main Entrance)", &fakeFetcher{err: errors.New("storage unreachable")})

	got, err := r.Render(testAlert(), time.Now())
	require.NoError(t, err, "a failed image fetch must not abort the export")
	assert.NotEmpty(t, got)
}

func TestReport_BogusImageDegradesToTextReference(t *testing.T) {
	r := NewReport("Sentinel Security Systems", "CAM-04 (Main Entrance)", &fakeFetcher{data: []byte("not an image")})

	got, err := r.Render(testAlert(), time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		alertID string
		want    string
	}{
		{"long id truncated", "a1b2c3d4e5f6", "Sentinel_Alert_a1b2c3d4.pdf"},
		{"short id kept", "sim-1", "Sentinel_Alert_sim-1.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.alertID))
		})
	}
}
