package domain

import "time"

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	return s == EventStatusDraft || s == EventStatusPublished
}

// Hours is an event's operating window as "HH:MM" labels. End may be earlier
// than Start, in which case the window crosses midnight.
type Hours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Event represents a night (or day) of performances spread over one or more stages.
// swagger:model Event
type Event struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Date      string      `json:"date"`
	Stages    []string    `json:"stages"`
	Hours     Hours       `json:"hours"`
	CreatedAt time.Time   `json:"createdAt"`
	Status    EventStatus `json:"status"`
	Locked    bool        `json:"locked"`
}

// NewEvent returns a new Event with the given fields. ID is set by the lineup service on create.
func NewEvent(title, date string, stages []string, hours Hours, status EventStatus, createdAt time.Time) *Event {
	return &Event{
		Title:     title,
		Date:      date,
		Stages:    append([]string(nil), stages...),
		Hours:     hours,
		CreatedAt: createdAt,
		Status:    status,
	}
}

// Clone returns a copy of e that shares no memory with it.
func (e Event) Clone() Event {
	e.Stages = append([]string(nil), e.Stages...)
	return e
}

// HasStage reports whether stage is one of the event's stages.
func (e Event) HasStage(stage string) bool {
	for _, s := range e.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// EventUpdate carries a partial update for an event. Nil fields are left unchanged.
type EventUpdate struct {
	Title  *string      `json:"title,omitempty"`
	Date   *string      `json:"date,omitempty"`
	Stages []string     `json:"stages,omitempty"`
	Hours  *Hours       `json:"hours,omitempty"`
	Status *EventStatus `json:"status,omitempty"`
	Locked *bool        `json:"locked,omitempty"`
}

// Apply merges the non-nil fields of u into e.
func (u EventUpdate) Apply(e *Event) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Stages != nil {
		e.Stages = append([]string(nil), u.Stages...)
	}
	if u.Hours != nil {
		e.Hours = *u.Hours
	}
	if u.Status != nil {
		e.Status = *u.Status
	}
	if u.Locked != nil {
		e.Locked = *u.Locked
	}
}
