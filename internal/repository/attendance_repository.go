package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const attendanceColumns = "a.attendance_id, a.student_id, a.event_id, a.check_in_time, a.status"

// AttendanceRepository persists check-ins.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// FindByID returns sql.ErrNoRows when the attendance row does not exist.
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.Attendance, error) {
	var att models.Attendance
	if err := r.db.GetContext(ctx, &att, "SELECT "+attendanceColumns+" FROM attendance a WHERE a.attendance_id = $1", id); err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return &att, nil
}

// FindByPair returns sql.ErrNoRows when no attendance exists for the pair.
func (r *AttendanceRepository) FindByPair(ctx context.Context, studentID, eventID string) (*models.Attendance, error) {
	var att models.Attendance
	query := "SELECT " + attendanceColumns + " FROM attendance a WHERE a.student_id = $1 AND a.event_id = $2"
	if err := r.db.GetContext(ctx, &att, query, studentID, eventID); err != nil {
		return nil, fmt.Errorf("find attendance by pair: %w", err)
	}
	return &att, nil
}

// Create inserts an attendance row. A unique violation yields ErrDuplicate.
func (r *AttendanceRepository) Create(ctx context.Context, att *models.Attendance) error {
	const query = `INSERT INTO attendance (attendance_id, student_id, event_id, check_in_time, status)
VALUES (:attendance_id, :student_id, :event_id, :check_in_time, :status)`
	if _, err := r.db.NamedExecContext(ctx, query, att); err != nil {
		return wrapWrite("create attendance", err)
	}
	return nil
}

// UpdateStatus overrides the status of a check-in.
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id string, status models.AttendanceStatus) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE attendance SET status = $1 WHERE attendance_id = $2", status, id); err != nil {
		return fmt.Errorf("update attendance status: %w", err)
	}
	return nil
}

// ListByEvent returns all check-ins for an event in check-in order.
func (r *AttendanceRepository) ListByEvent(ctx context.Context, eventID string) ([]models.EventAttendance, error) {
	query := "SELECT " + attendanceColumns + `, s.student_name, s.email, s.department
FROM attendance a
JOIN students s ON s.student_id = a.student_id
WHERE a.event_id = $1
ORDER BY a.check_in_time ASC`
	var rows []models.EventAttendance
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("list event attendance: %w", err)
	}
	return rows, nil
}

// ListByStudent returns the events a student was present at, most recent first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudentAttendance, error) {
	query := "SELECT " + attendanceColumns + `, e.event_name, e.event_date, e.event_time, e.venue, e.event_type
FROM attendance a
JOIN events e ON e.event_id = a.event_id
WHERE a.student_id = $1 AND a.status = 'present'
ORDER BY e.event_date DESC`
	var rows []models.StudentAttendance
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return rows, nil
}

// attendedByConfirmed counts present check-ins whose registration is still confirmed.
// Every attended figure derives from it so attendance never exceeds registrations.
const attendedByConfirmed = `SELECT COUNT(*) FROM attendance a
		JOIN registrations cr ON cr.student_id = a.student_id AND cr.event_id = a.event_id AND cr.status = 'confirmed'
		WHERE a.status = 'present'`

// Counts returns confirmed registrations and how many of them checked in present.
func (r *AttendanceRepository) Counts(ctx context.Context, eventID string) (registered, attended int, err error) {
	const query = `SELECT
	COUNT(DISTINCT r.student_id) AS total_registered,
	COUNT(DISTINCT a.student_id) AS total_attended
FROM registrations r
LEFT JOIN attendance a ON a.student_id = r.student_id AND a.event_id = r.event_id AND a.status = 'present'
WHERE r.event_id = $1 AND r.status = 'confirmed'`
	var row struct {
		Registered int `db:"total_registered"`
		Attended   int `db:"total_attended"`
	}
	if err := r.db.GetContext(ctx, &row, query, eventID); err != nil {
		return 0, 0, fmt.Errorf("attendance counts: %w", err)
	}
	return row.Registered, row.Attended, nil
}

// ListAbsentees returns confirmed registrants with no present check-in.
func (r *AttendanceRepository) ListAbsentees(ctx context.Context, eventID string) ([]models.Absentee, error) {
	const query = `SELECT r.student_id, s.student_name, s.email
FROM registrations r
JOIN students s ON s.student_id = r.student_id
LEFT JOIN attendance a ON a.student_id = r.student_id AND a.event_id = r.event_id AND a.status = 'present'
WHERE r.event_id = $1 AND r.status = 'confirmed' AND a.attendance_id IS NULL
ORDER BY s.student_name ASC`
	var rows []models.Absentee
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("list absentees: %w", err)
	}
	return rows, nil
}
