package domain

import (
	"time"

	"github.com/google/uuid"
)

// WebhookPayload is the queued form of a lifecycle event.
type WebhookPayload struct {
	EventType  EventType `json:"event_type"`
	IncidentID uuid.UUID `json:"incident_id"`
	Event      Event     `json:"event"`
	QueuedAt   time.Time `json:"queued_at"`
}
