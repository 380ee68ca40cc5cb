package models

import "time"

// Feedback is a post-event rating left by an attendee.
type Feedback struct {
	ID        string    `db:"feedback_id" json:"feedback_id"`
	StudentID string    `db:"student_id" json:"student_id"`
	EventID   string    `db:"event_id" json:"event_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comments  *string   `db:"comments" json:"comments,omitempty"`
	CreatedAt time.Time `db:"feedback_date" json:"feedback_date"`
}

// EventFeedback is a feedback row listed under an event.
type EventFeedback struct {
	Feedback
	StudentName string  `db:"student_name" json:"student_name"`
	Department  *string `db:"department" json:"department,omitempty"`
}

// StudentFeedback is a feedback row listed under a student.
type StudentFeedback struct {
	Feedback
	EventName string    `db:"event_name" json:"event_name"`
	EventDate time.Time `db:"event_date" json:"event_date"`
	EventType EventType `db:"event_type" json:"event_type"`
}

// RatingDistribution counts ratings 1 through 5.
type RatingDistribution struct {
	One   int `db:"rating_1" json:"1"`
	Two   int `db:"rating_2" json:"2"`
	Three int `db:"rating_3" json:"3"`
	Four  int `db:"rating_4" json:"4"`
	Five  int `db:"rating_5" json:"5"`
}

// FeedbackStats aggregates ratings for one event.
type FeedbackStats struct {
	TotalFeedback      int     `db:"total_feedback" json:"total_feedback"`
	AverageRating      float64 `db:"average_rating" json:"average_rating"`
	MinRating          int     `db:"min_rating" json:"min_rating"`
	MaxRating          int     `db:"max_rating" json:"max_rating"`
	RatingDistribution `json:"rating_distribution"`
}
