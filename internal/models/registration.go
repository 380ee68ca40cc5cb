package models

import "time"

// RegistrationStatus is the state of a student's claim on an event seat.
type RegistrationStatus string

const (
	RegistrationStatusConfirmed  RegistrationStatus = "confirmed"
	RegistrationStatusWaitlisted RegistrationStatus = "waitlisted"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
)

// Valid reports whether s is a known registration status.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationStatusConfirmed, RegistrationStatusWaitlisted, RegistrationStatusCancelled:
		return true
	}
	return false
}

// Registration links a student to an event.
type Registration struct {
	ID        string             `db:"registration_id" json:"registration_id"`
	StudentID string             `db:"student_id" json:"student_id"`
	EventID   string             `db:"event_id" json:"event_id"`
	CreatedAt time.Time          `db:"registration_date" json:"registration_date"`
	Status    RegistrationStatus `db:"status" json:"status"`
}

// RegistrationDetail enriches a registration with student and event names.
type RegistrationDetail struct {
	Registration
	StudentName string    `db:"student_name" json:"student_name"`
	Email       string    `db:"email" json:"email"`
	EventName   string    `db:"event_name" json:"event_name"`
	EventDate   time.Time `db:"event_date" json:"event_date"`
}

// EventRegistration is a registration row listed under an event.
type EventRegistration struct {
	Registration
	StudentName string  `db:"student_name" json:"student_name"`
	Email       string  `db:"email" json:"email"`
	Phone       *string `db:"phone" json:"phone,omitempty"`
	Department  *string `db:"department" json:"department,omitempty"`
}

// StudentRegistration is a registration row listed under a student.
type StudentRegistration struct {
	Registration
	EventName string    `db:"event_name" json:"event_name"`
	EventDate time.Time `db:"event_date" json:"event_date"`
	EventTime string    `db:"event_time" json:"event_time"`
	Venue     string    `db:"venue" json:"venue"`
	EventType EventType `db:"event_type" json:"event_type"`
}

// RegistrationStats counts registrations per status for one event.
type RegistrationStats struct {
	Confirmed  int `json:"confirmed"`
	Waitlisted int `json:"waitlisted"`
	Cancelled  int `json:"cancelled"`
}

// CancelResult reports the cancelled registration and the promoted one, if any.
type CancelResult struct {
	CancelledID string  `json:"cancelled"`
	PromotedID  *string `json:"promoted,omitempty"`
}
