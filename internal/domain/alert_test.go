package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlert_Identification(t *testing.T) {
	name := "Jane Smith"

	tests := []struct {
		name  string
		alert Alert
		want  string
	}{
		{
			name:  "match with staff name",
			alert: Alert{Status: StatusMatch, MatchedWith: &name},
			want:  "Jane Smith",
		},
		{
			name:  "unknown person",
			alert: Alert{Status: StatusUnknown},
			want:  "Unknown Person",
		},
		{
			name:  "match without name falls back",
			alert: Alert{Status: StatusMatch},
			want:  "Unknown Person",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.alert.Identification())
		})
	}
}

func TestSimilarityPercent(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"high distance", 0.85, 15.0},
		{"low distance", 0.08, 92.0},
		{"zero distance", 0, 100.0},
		{"rounds to one decimal", 0.1234, 87.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SimilarityPercent(tt.distance), 1e-9)
		})
	}
}
