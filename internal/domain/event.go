package domain

import "time"

type EventType string

const (
	EventIncidentCreated   EventType = "INCIDENT_CREATED"
	EventIncidentConfirmed EventType = "INCIDENT_CONFIRMED"
	EventIncidentResolved  EventType = "INCIDENT_RESOLVED"
	EventImageAdded        EventType = "IMAGE_ADDED"
)

// Event is the frame pushed to feed subscribers. Timestamp is epoch millis.
type Event struct {
	Type      EventType `json:"type"`
	Data      *Incident `json:"data"`
	Timestamp int64     `json:"timestamp"`
}

func NewEvent(t EventType, inc *Incident, at time.Time) Event {
	return Event{
		Type:      t,
		Data:      inc.Clone(),
		Timestamp: at.UnixMilli(),
	}
}
