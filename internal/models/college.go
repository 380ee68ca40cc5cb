package models

import "time"

// College is the tenant that owns students and events.
type College struct {
	ID           string    `db:"college_id" json:"college_id"`
	Name         string    `db:"college_name" json:"college_name"`
	Location     string    `db:"location" json:"location"`
	ContactEmail string    `db:"contact_email" json:"contact_email"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CollegeStats aggregates activity across a college.
type CollegeStats struct {
	TotalEvents        int `db:"total_events" json:"total_events"`
	TotalStudents      int `db:"total_students" json:"total_students"`
	TotalRegistrations int `db:"total_registrations" json:"total_registrations"`
	TotalAttendance    int `db:"total_attendance" json:"total_attendance"`
}

// CollegeDetail is a college together with its stats.
type CollegeDetail struct {
	College
	Stats CollegeStats `json:"stats"`
}
