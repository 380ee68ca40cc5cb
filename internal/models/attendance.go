package models

import "time"

// AttendanceStatus records whether a student was present.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	return s == AttendanceStatusPresent || s == AttendanceStatusAbsent
}

// Attendance is a check-in record for a (student, event) pair.
type Attendance struct {
	ID          string           `db:"attendance_id" json:"attendance_id"`
	StudentID   string           `db:"student_id" json:"student_id"`
	EventID     string           `db:"event_id" json:"event_id"`
	CheckInTime time.Time        `db:"check_in_time" json:"check_in_time"`
	Status      AttendanceStatus `db:"status" json:"status"`
}

// EventAttendance is an attendance row listed under an event.
type EventAttendance struct {
	Attendance
	StudentName string  `db:"student_name" json:"student_name"`
	Email       string  `db:"email" json:"email"`
	Department  *string `db:"department" json:"department,omitempty"`
}

// StudentAttendance is an attendance row listed under a student.
type StudentAttendance struct {
	Attendance
	EventName string    `db:"event_name" json:"event_name"`
	EventDate time.Time `db:"event_date" json:"event_date"`
	EventTime string    `db:"event_time" json:"event_time"`
	Venue     string    `db:"venue" json:"venue"`
	EventType EventType `db:"event_type" json:"event_type"`
}

// AttendanceStats compares present check-ins with confirmed registrations.
type AttendanceStats struct {
	TotalRegistered      int     `db:"total_registered" json:"total_registered"`
	TotalAttended        int     `db:"total_attended" json:"total_attended"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// Absentee is a confirmed registrant without a present check-in.
type Absentee struct {
	StudentID   string `db:"student_id" json:"student_id"`
	StudentName string `db:"student_name" json:"student_name"`
	Email       string `db:"email" json:"email"`
}
