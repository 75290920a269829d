package domain

import "time"

// EventType distinguishes educational events from direct actions.
type EventType string

const (
	EventTypeLearn  EventType = "learn"
	EventTypeAction EventType = "action"
)

type Event struct {
	ID          string
	Name        string
	Slug        string
	Tagline     string
	Description string
	Type        EventType
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
