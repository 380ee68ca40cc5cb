package models

import (
	"fmt"
	"time"
)

// EventStatus is the persisted lifecycle state of an event.
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// EventType classifies events.
type EventType string

const (
	EventTypeWorkshop  EventType = "Workshop"
	EventTypeFest      EventType = "Fest"
	EventTypeSeminar   EventType = "Seminar"
	EventTypeHackathon EventType = "Hackathon"
	EventTypeTechTalk  EventType = "Tech Talk"
)

// EventTypes lists every accepted event type.
var EventTypes = []EventType{EventTypeWorkshop, EventTypeFest, EventTypeSeminar, EventTypeHackathon, EventTypeTechTalk}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// EventDateLayout is the wire format for event dates.
const EventDateLayout = "2006-01-02"

// Event is a scheduled occurrence with a bounded capacity.
type Event struct {
	ID            string      `db:"event_id" json:"event_id"`
	CollegeID     string      `db:"college_id" json:"college_id"`
	Name          string      `db:"event_name" json:"event_name"`
	Description   *string     `db:"event_description" json:"event_description,omitempty"`
	Type          EventType   `db:"event_type" json:"event_type"`
	Date          time.Time   `db:"event_date" json:"event_date"`
	Time          string      `db:"event_time" json:"event_time"`
	DurationHours *float64    `db:"duration_hours" json:"duration_hours,omitempty"`
	Venue         string      `db:"venue" json:"venue"`
	MaxCapacity   int         `db:"max_capacity" json:"max_capacity"`
	CreatedBy     *string     `db:"created_by" json:"created_by,omitempty"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	Status        EventStatus `db:"status" json:"status"`
}

// StartsAfterDay reports whether the event date falls on a calendar day after now's.
func (e *Event) StartsAfterDay(now time.Time) bool {
	return calendarDay(e.Date).After(calendarDay(now))
}

// EffectiveStatus reports completed for active events whose date has passed.
// The stored status is never rewritten.
func (e *Event) EffectiveStatus(now time.Time) EventStatus {
	if e.Status == EventStatusActive && calendarDay(e.Date).Before(calendarDay(now)) {
		return EventStatusCompleted
	}
	return e.Status
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EventStats holds the counters shown on event detail.
type EventStats struct {
	Registrations int     `db:"registrations" json:"registrations"`
	Attendance    int     `db:"attendance" json:"attendance"`
	AverageRating float64 `db:"average_rating" json:"average_rating"`
	FeedbackCount int     `db:"feedback_count" json:"feedback_count"`
}

// EventDetail is an event with its stats and derived status.
type EventDetail struct {
	Event
	EffectiveStatus EventStatus `json:"effective_status"`
	Stats           EventStats  `json:"stats"`
}

// EventFilter narrows event listings. Only active events are listed.
type EventFilter struct {
	CollegeID string
	Type      EventType
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
}

// EventID formats the per-college sequential event identifier.
func EventID(collegeID string, seq int) string {
	return fmt.Sprintf("%s-EVT%03d", collegeID, seq)
}
