package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const feedbackColumns = "f.feedback_id, f.student_id, f.event_id, f.rating, f.comments, f.feedback_date"

// FeedbackRepository persists event feedback.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository constructs a FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// FindByID returns sql.ErrNoRows when the feedback does not exist.
func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*models.Feedback, error) {
	var fb models.Feedback
	if err := r.db.GetContext(ctx, &fb, "SELECT "+feedbackColumns+" FROM feedback f WHERE f.feedback_id = $1", id); err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return &fb, nil
}

// FindByPair returns sql.ErrNoRows when the student has not rated the event.
func (r *FeedbackRepository) FindByPair(ctx context.Context, studentID, eventID string) (*models.Feedback, error) {
	var fb models.Feedback
	query := "SELECT " + feedbackColumns + " FROM feedback f WHERE f.student_id = $1 AND f.event_id = $2"
	if err := r.db.GetContext(ctx, &fb, query, studentID, eventID); err != nil {
		return nil, fmt.Errorf("find feedback by pair: %w", err)
	}
	return &fb, nil
}

// Create inserts feedback. A unique violation yields ErrDuplicate.
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	const query = `INSERT INTO feedback (feedback_id, student_id, event_id, rating, comments, feedback_date)
VALUES (:feedback_id, :student_id, :event_id, :rating, :comments, :feedback_date)`
	if _, err := r.db.NamedExecContext(ctx, query, fb); err != nil {
		return wrapWrite("create feedback", err)
	}
	return nil
}

// Update overwrites rating, comments and feedback date.
func (r *FeedbackRepository) Update(ctx context.Context, fb *models.Feedback) error {
	const query = `UPDATE feedback SET rating = :rating, comments = :comments, feedback_date = :feedback_date WHERE feedback_id = :feedback_id`
	if _, err := r.db.NamedExecContext(ctx, query, fb); err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	return nil
}

// ListByEvent returns an event's feedback, newest first.
func (r *FeedbackRepository) ListByEvent(ctx context.Context, eventID string) ([]models.EventFeedback, error) {
	query := "SELECT " + feedbackColumns + `, s.student_name, s.department
FROM feedback f
JOIN students s ON s.student_id = f.student_id
WHERE f.event_id = $1
ORDER BY f.feedback_date DESC`
	var rows []models.EventFeedback
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("list event feedback: %w", err)
	}
	return rows, nil
}

// ListByStudent returns a student's feedback, newest first.
func (r *FeedbackRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudentFeedback, error) {
	query := "SELECT " + feedbackColumns + `, e.event_name, e.event_date, e.event_type
FROM feedback f
JOIN events e ON e.event_id = f.event_id
WHERE f.student_id = $1
ORDER BY f.feedback_date DESC`
	var rows []models.StudentFeedback
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student feedback: %w", err)
	}
	return rows, nil
}

// StatsByEvent aggregates an event's ratings. Empty events yield zeros.
func (r *FeedbackRepository) StatsByEvent(ctx context.Context, eventID string) (*models.FeedbackStats, error) {
	const query = `SELECT
	COUNT(*) AS total_feedback,
	COALESCE(ROUND(AVG(rating), 2), 0) AS average_rating,
	COALESCE(MIN(rating), 0) AS min_rating,
	COALESCE(MAX(rating), 0) AS max_rating,
	COUNT(*) FILTER (WHERE rating = 1) AS rating_1,
	COUNT(*) FILTER (WHERE rating = 2) AS rating_2,
	COUNT(*) FILTER (WHERE rating = 3) AS rating_3,
	COUNT(*) FILTER (WHERE rating = 4) AS rating_4,
	COUNT(*) FILTER (WHERE rating = 5) AS rating_5
FROM feedback
WHERE event_id = $1`
	var stats models.FeedbackStats
	if err := r.db.GetContext(ctx, &stats, query, eventID); err != nil {
		return nil, fmt.Errorf("feedback stats: %w", err)
	}
	return &stats, nil
}

