package ws

import (
	"time"

	"github.com/sentinel-security/sentinel-console/internal/domain"
)

type EventType string

const (
	EventAlertsUpdated EventType = "alerts.updated"
	EventRosterUpdated EventType = "roster.updated"
	EventPopupShow     EventType = "popup.show"
	EventPopupHide     EventType = "popup.hide"
	EventPopupSound    EventType = "popup.sound"

	// Inbound, client to server.
	EventPopupActivate EventType = "popup.activate"
)

type Event struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type AlertsPayload struct {
	Alerts      []domain.Alert `json:"alerts"`
	UnreadCount int            `json:"unread_count"`
}

type RosterPayload struct {
	Employees []domain.Employee `json:"employees"`
}

// PopupPayload carries the popup and its dismiss deadline. The client derives
// the shrinking countdown bar from shown_at and duration_ms so the visual
// timer matches the server's auto-dismiss exactly.
type PopupPayload struct {
	Alert      domain.Alert `json:"alert"`
	ShownAt    time.Time    `json:"shown_at"`
	DurationMS int64        `json:"duration_ms"`
}

type SoundPayload struct {
	URL string `json:"url"`
}
