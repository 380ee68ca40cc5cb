package models

import "time"

// ReportFilter carries the optional filters shared by the aggregate reports.
type ReportFilter struct {
	CollegeID string
	EventType EventType
	Limit     int
}

// EventPopularityRow ranks an active event by confirmed registrations.
type EventPopularityRow struct {
	EventID            string    `db:"event_id" json:"event_id"`
	EventName          string    `db:"event_name" json:"event_name"`
	EventType          EventType `db:"event_type" json:"event_type"`
	EventDate          time.Time `db:"event_date" json:"event_date"`
	Venue              string    `db:"venue" json:"venue"`
	TotalRegistrations int       `db:"total_registrations" json:"total_registrations"`
	TotalAttendance    int       `db:"total_attendance" json:"total_attendance"`
	AverageRating      *float64  `db:"average_rating" json:"average_rating"`
	FeedbackCount      int       `db:"feedback_count" json:"feedback_count"`
}

// StudentParticipationRow summarises one student's participation.
type StudentParticipationRow struct {
	StudentID            string   `db:"student_id" json:"student_id"`
	StudentName          string   `db:"student_name" json:"student_name"`
	Department           *string  `db:"department" json:"department,omitempty"`
	YearOfStudy          *int     `db:"year_of_study" json:"year_of_study,omitempty"`
	EventsRegistered     int      `db:"events_registered" json:"events_registered"`
	EventsAttended       int      `db:"events_attended" json:"events_attended"`
	FeedbackGiven        int      `db:"feedback_given" json:"feedback_given"`
	AverageRatingGiven   *float64 `db:"average_rating_given" json:"average_rating_given"`
	AttendancePercentage *float64 `db:"attendance_percentage" json:"attendance_percentage,omitempty"`
}

// ParticipationEvent is one confirmed registration in a student's breakdown.
type ParticipationEvent struct {
	EventName        string    `db:"event_name" json:"event_name"`
	EventDate        time.Time `db:"event_date" json:"event_date"`
	EventType        EventType `db:"event_type" json:"event_type"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
	Attended         bool      `db:"attended" json:"attended"`
	FeedbackRating   *int      `db:"feedback_rating" json:"feedback_rating"`
}

// StudentParticipationReport is the individual participation report.
type StudentParticipationReport struct {
	Summary StudentParticipationRow `json:"summary"`
	Events  []ParticipationEvent    `json:"events"`
}

// TopStudentRow ranks a student by activity score.
type TopStudentRow struct {
	StudentParticipationRow
	ActivityScore int `db:"activity_score" json:"activity_score"`
}

// EventAttendanceRow is the single-event attendance report.
type EventAttendanceRow struct {
	EventID              string    `db:"event_id" json:"event_id"`
	EventName            string    `db:"event_name" json:"event_name"`
	EventDate            time.Time `db:"event_date" json:"event_date"`
	EventType            EventType `db:"event_type" json:"event_type"`
	MaxCapacity          int       `db:"max_capacity" json:"max_capacity"`
	TotalRegistered      int       `db:"total_registered" json:"total_registered"`
	TotalAttended        int       `db:"total_attended" json:"total_attended"`
	RemainingCapacity    int       `db:"remaining_capacity" json:"remaining_capacity"`
	AttendancePercentage *float64  `db:"attendance_percentage" json:"attendance_percentage"`
}

// EventTypeAttendanceRow aggregates attendance per event type.
type EventTypeAttendanceRow struct {
	EventType                   EventType `db:"event_type" json:"event_type"`
	TotalEvents                 int       `db:"total_events" json:"total_events"`
	TotalRegistrations          int       `db:"total_registrations" json:"total_registrations"`
	TotalAttendance             int       `db:"total_attendance" json:"total_attendance"`
	AverageAttendancePercentage *float64  `db:"average_attendance_percentage" json:"average_attendance_percentage"`
}

// FeedbackReportFilter bounds the feedback report by average rating.
type FeedbackReportFilter struct {
	CollegeID string
	EventType EventType
	MinRating float64
	MaxRating float64
}

// FeedbackReportRow is one event in the feedback report.
type FeedbackReportRow struct {
	EventID       string    `db:"event_id" json:"event_id"`
	EventName     string    `db:"event_name" json:"event_name"`
	EventType     EventType `db:"event_type" json:"event_type"`
	EventDate     time.Time `db:"event_date" json:"event_date"`
	TotalFeedback int       `db:"total_feedback" json:"total_feedback"`
	AverageRating *float64  `db:"average_rating" json:"average_rating"`
	MinRating     *int      `db:"min_rating" json:"min_rating"`
	MaxRating     *int      `db:"max_rating" json:"max_rating"`
	Rating1Count  int       `db:"rating_1_count" json:"rating_1_count"`
	Rating2Count  int       `db:"rating_2_count" json:"rating_2_count"`
	Rating3Count  int       `db:"rating_3_count" json:"rating_3_count"`
	Rating4Count  int       `db:"rating_4_count" json:"rating_4_count"`
	Rating5Count  int       `db:"rating_5_count" json:"rating_5_count"`
}

// EventTypeRatingRow is the average rating for one event type.
type EventTypeRatingRow struct {
	EventType     EventType `db:"event_type" json:"event_type"`
	AverageRating float64   `db:"average_rating" json:"average_rating"`
	FeedbackCount int       `db:"feedback_count" json:"feedback_count"`
}
