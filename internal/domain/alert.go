package domain

import (
	"math"
	"time"
)

type AlertStatus string

const (
	// StatusUnknown means the detected face matched no enrolled staff member.
	StatusUnknown AlertStatus = "UNKNOWN"
	// StatusMatch means the face was identified as a known staff member.
	StatusMatch AlertStatus = "MATCH"
)

// Alert is one classification result produced by the face-recognition
// pipeline. After creation the only legal mutation is Reviewed false -> true;
// every other field is immutable.
type Alert struct {
	ID             string      `json:"id"`
	Status         AlertStatus `json:"status"`
	MatchedWith    *string     `json:"matched_with,omitempty"`
	Distance       float64     `json:"distance"`
	ImageURL       string      `json:"image_url"`
	CroppedFaceURL string      `json:"cropped_face_url"`
	CreatedAt      time.Time   `json:"created_at"`
	Reviewed       bool        `json:"reviewed"`
}

// Identification returns the display name for the alert subject, or
// "Unknown Person" when the pipeline found no staff match.
func (a *Alert) Identification() string {
	if a.Status == StatusMatch && a.MatchedWith != nil {
		return *a.MatchedWith
	}
	return "Unknown Person"
}

// SimilarityPercent converts a dissimilarity distance into the similarity
// percentage shown to operators, rounded to one decimal place.
func SimilarityPercent(distance float64) float64 {
	return math.Round((100-distance*100)*10) / 10
}
