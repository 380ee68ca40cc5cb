package models

import (
	"fmt"
	"time"
)

// Student is a person enrolled at a college.
type Student struct {
	ID          string    `db:"student_id" json:"student_id"`
	CollegeID   string    `db:"college_id" json:"college_id"`
	Name        string    `db:"student_name" json:"student_name"`
	Email       string    `db:"email" json:"email"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	YearOfStudy *int      `db:"year_of_study" json:"year_of_study,omitempty"`
	Department  *string   `db:"department" json:"department,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// StudentListItem adds the owning college name to list rows.
type StudentListItem struct {
	Student
	CollegeName string `db:"college_name" json:"college_name"`
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	CollegeID   string
	Department  string
	YearOfStudy *int
	Limit       int
}

// ParticipationStats summarises a student's lifecycle activity.
type ParticipationStats struct {
	TotalRegistrations int      `db:"total_registrations" json:"total_registrations"`
	TotalAttended      int      `db:"total_attended" json:"total_attended"`
	TotalFeedbackGiven int      `db:"total_feedback_given" json:"total_feedback_given"`
	AverageRatingGiven *float64 `db:"average_rating_given" json:"average_rating_given"`
}

// StudentDetail is a student together with participation stats.
type StudentDetail struct {
	Student
	ParticipationStats ParticipationStats `json:"participation_stats"`
}

// StudentID formats the per-college sequential student identifier.
func StudentID(collegeID string, seq int) string {
	return fmt.Sprintf("%s-STU%04d", collegeID, seq)
}
