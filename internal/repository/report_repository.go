package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

// ReportRepository runs the read-only aggregate reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// participationCTE computes per-student counters without join fan-out.
const participationCTE = `WITH participation AS (
	SELECT s.student_id, s.college_id, s.student_name, s.department, s.year_of_study,
		(SELECT COUNT(*) FROM registrations r WHERE r.student_id = s.student_id AND r.status = 'confirmed') AS events_registered,
		(` + attendedByConfirmed + ` AND a.student_id = s.student_id) AS events_attended,
		(SELECT COUNT(*) FROM feedback f WHERE f.student_id = s.student_id) AS feedback_given,
		(SELECT ROUND(AVG(f.rating), 2) FROM feedback f WHERE f.student_id = s.student_id) AS average_rating_given
	FROM students s
)
`

const participationColumns = `student_id, student_name, department, year_of_study, events_registered, events_attended, feedback_given, average_rating_given,
	ROUND(events_attended * 100.0 / NULLIF(events_registered, 0), 2) AS attendance_percentage`

// EventPopularity ranks active events by confirmed registrations, then average rating.
func (r *ReportRepository) EventPopularity(ctx context.Context, filter models.ReportFilter) ([]models.EventPopularityRow, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT e.event_id, e.event_name, e.event_type, e.event_date, e.venue,
	(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.event_id AND r.status = 'confirmed') AS total_registrations,
	(` + attendedByConfirmed + ` AND a.event_id = e.event_id) AS total_attendance,
	(SELECT ROUND(AVG(f.rating), 2) FROM feedback f WHERE f.event_id = e.event_id) AS average_rating,
	(SELECT COUNT(*) FROM feedback f WHERE f.event_id = e.event_id) AS feedback_count
FROM events e
WHERE e.status = 'active'`)

	args := []interface{}{}
	if filter.CollegeID != "" {
		args = append(args, filter.CollegeID)
		fmt.Fprintf(&query, " AND e.college_id = $%d", len(args))
	}
	if filter.EventType != "" {
		args = append(args, filter.EventType)
		fmt.Fprintf(&query, " AND e.event_type = $%d", len(args))
	}
	args = append(args, filter.Limit)
	fmt.Fprintf(&query, "\nORDER BY total_registrations DESC, average_rating DESC NULLS LAST, e.event_id ASC\nLIMIT $%d", len(args))

	var rows []models.EventPopularityRow
	if err := r.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, fmt.Errorf("event popularity report: %w", err)
	}
	return rows, nil
}

// StudentParticipation returns the summary row for one student, or sql.ErrNoRows.
func (r *ReportRepository) StudentParticipation(ctx context.Context, studentID string) (*models.StudentParticipationRow, error) {
	query := participationCTE + "SELECT " + participationColumns + " FROM participation WHERE student_id = $1"
	var row models.StudentParticipationRow
	if err := r.db.GetContext(ctx, &row, query, studentID); err != nil {
		return nil, fmt.Errorf("student participation report: %w", err)
	}
	return &row, nil
}

// StudentParticipationEvents lists a student's confirmed registrations with attendance and rating.
func (r *ReportRepository) StudentParticipationEvents(ctx context.Context, studentID string) ([]models.ParticipationEvent, error) {
	const query = `SELECT e.event_name, e.event_date, e.event_type, r.registration_date,
	(a.attendance_id IS NOT NULL) AS attended,
	f.rating AS feedback_rating
FROM registrations r
JOIN events e ON e.event_id = r.event_id
LEFT JOIN attendance a ON a.student_id = r.student_id AND a.event_id = r.event_id AND a.status = 'present'
LEFT JOIN feedback f ON f.student_id = r.student_id AND f.event_id = r.event_id
WHERE r.student_id = $1 AND r.status = 'confirmed'
ORDER BY e.event_date DESC`
	var rows []models.ParticipationEvent
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("student participation events: %w", err)
	}
	return rows, nil
}

// StudentParticipationList lists students with at least one confirmed registration.
func (r *ReportRepository) StudentParticipationList(ctx context.Context, filter models.ReportFilter) ([]models.StudentParticipationRow, error) {
	query, args := participationQuery("SELECT "+participationColumns, filter,
		"ORDER BY events_attended DESC, events_registered DESC, student_id ASC")
	var rows []models.StudentParticipationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("student participation list: %w", err)
	}
	return rows, nil
}

// TopActiveStudents ranks students by 3*attended + 2*registered + feedback.
func (r *ReportRepository) TopActiveStudents(ctx context.Context, filter models.ReportFilter) ([]models.TopStudentRow, error) {
	query, args := participationQuery("SELECT "+participationColumns+",\n\tevents_attended * 3 + events_registered * 2 + feedback_given AS activity_score", filter,
		"ORDER BY activity_score DESC, attendance_percentage DESC NULLS LAST, student_id ASC")
	var rows []models.TopStudentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("top active students: %w", err)
	}
	return rows, nil
}

func participationQuery(selectClause string, filter models.ReportFilter, orderBy string) (string, []interface{}) {
	query := strings.Builder{}
	query.WriteString(participationCTE)
	query.WriteString(selectClause)
	query.WriteString("\nFROM participation\nWHERE events_registered > 0")
	args := []interface{}{}
	if filter.CollegeID != "" {
		args = append(args, filter.CollegeID)
		fmt.Fprintf(&query, " AND college_id = $%d", len(args))
	}
	args = append(args, filter.Limit)
	fmt.Fprintf(&query, "\n%s\nLIMIT $%d", orderBy, len(args))
	return query.String(), args
}

// EventAttendance reports registered, attended and remaining seats for one event, or sql.ErrNoRows.
func (r *ReportRepository) EventAttendance(ctx context.Context, eventID string) (*models.EventAttendanceRow, error) {
	const query = `SELECT e.event_id, e.event_name, e.event_date, e.event_type, e.max_capacity,
	c.registered AS total_registered,
	c.attended AS total_attended,
	e.max_capacity - c.registered AS remaining_capacity,
	ROUND(c.attended * 100.0 / NULLIF(c.registered, 0), 2) AS attendance_percentage
FROM events e
CROSS JOIN LATERAL (
	SELECT
		(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.event_id AND r.status = 'confirmed') AS registered,
		(` + attendedByConfirmed + ` AND a.event_id = e.event_id) AS attended
) c
WHERE e.event_id = $1`
	var row models.EventAttendanceRow
	if err := r.db.GetContext(ctx, &row, query, eventID); err != nil {
		return nil, fmt.Errorf("event attendance report: %w", err)
	}
	return &row, nil
}

// AttendanceByEventType aggregates active events per type.
func (r *ReportRepository) AttendanceByEventType(ctx context.Context, collegeID string) ([]models.EventTypeAttendanceRow, error) {
	query := strings.Builder{}
	query.WriteString(`WITH per_event AS (
	SELECT e.event_id, e.event_type,
		(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.event_id AND r.status = 'confirmed') AS registered,
		(` + attendedByConfirmed + ` AND a.event_id = e.event_id) AS attended
	FROM events e
	WHERE e.status = 'active'`)
	args := []interface{}{}
	if collegeID != "" {
		args = append(args, collegeID)
		fmt.Fprintf(&query, " AND e.college_id = $%d", len(args))
	}
	query.WriteString(`
)
SELECT event_type,
	COUNT(*) AS total_events,
	COALESCE(SUM(registered), 0) AS total_registrations,
	COALESCE(SUM(attended), 0) AS total_attendance,
	ROUND(AVG(attended * 100.0 / NULLIF(registered, 0)), 2) AS average_attendance_percentage
FROM per_event
GROUP BY event_type
ORDER BY average_attendance_percentage DESC NULLS LAST, event_type ASC`)

	var rows []models.EventTypeAttendanceRow
	if err := r.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, fmt.Errorf("attendance by event type: %w", err)
	}
	return rows, nil
}

// FeedbackReport lists active events whose average rating lies within the band.
func (r *ReportRepository) FeedbackReport(ctx context.Context, filter models.FeedbackReportFilter) ([]models.FeedbackReportRow, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT e.event_id, e.event_name, e.event_type, e.event_date,
	COUNT(f.feedback_id) AS total_feedback,
	ROUND(AVG(f.rating), 2) AS average_rating,
	MIN(f.rating) AS min_rating,
	MAX(f.rating) AS max_rating,
	COUNT(f.feedback_id) FILTER (WHERE f.rating = 1) AS rating_1_count,
	COUNT(f.feedback_id) FILTER (WHERE f.rating = 2) AS rating_2_count,
	COUNT(f.feedback_id) FILTER (WHERE f.rating = 3) AS rating_3_count,
	COUNT(f.feedback_id) FILTER (WHERE f.rating = 4) AS rating_4_count,
	COUNT(f.feedback_id) FILTER (WHERE f.rating = 5) AS rating_5_count
FROM events e
LEFT JOIN feedback f ON f.event_id = e.event_id
WHERE e.status = 'active'`)
	args := []interface{}{}
	if filter.CollegeID != "" {
		args = append(args, filter.CollegeID)
		fmt.Fprintf(&query, " AND e.college_id = $%d", len(args))
	}
	if filter.EventType != "" {
		args = append(args, filter.EventType)
		fmt.Fprintf(&query, " AND e.event_type = $%d", len(args))
	}
	args = append(args, filter.MinRating, filter.MaxRating)
	fmt.Fprintf(&query, "\nGROUP BY e.event_id\nHAVING AVG(f.rating) BETWEEN $%d AND $%d\nORDER BY average_rating DESC, total_feedback DESC", len(args)-1, len(args))

	var rows []models.FeedbackReportRow
	if err := r.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, fmt.Errorf("feedback report: %w", err)
	}
	return rows, nil
}

// RatingByEventType averages ratings per event type.
func (r *ReportRepository) RatingByEventType(ctx context.Context, collegeID string) ([]models.EventTypeRatingRow, error) {
	query := `SELECT e.event_type, ROUND(AVG(f.rating), 2) AS average_rating, COUNT(f.feedback_id) AS feedback_count
FROM feedback f
JOIN events e ON e.event_id = f.event_id`
	args := []interface{}{}
	if collegeID != "" {
		args = append(args, collegeID)
		query += " WHERE e.college_id = $1"
	}
	query += "\nGROUP BY e.event_type\nORDER BY average_rating DESC"

	var rows []models.EventTypeRatingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("rating by event type: %w", err)
	}
	return rows, nil
}
