package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const registrationColumns = "r.registration_id, r.student_id, r.event_id, r.registration_date, r.status"

// RegistrationRepository persists registrations. Methods taking exec join the caller's transaction when it is non-nil.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// FindByID returns sql.ErrNoRows when the registration does not exist.
func (r *RegistrationRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Registration, error) {
	var reg models.Registration
	query := "SELECT " + registrationColumns + " FROM registrations r WHERE r.registration_id = $1"
	if err := sqlx.GetContext(ctx, use(r.db, exec), &reg, query, id); err != nil {
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

// FindByPair returns sql.ErrNoRows when the student has no registration for the event.
func (r *RegistrationRepository) FindByPair(ctx context.Context, exec sqlx.ExtContext, studentID, eventID string) (*models.Registration, error) {
	var reg models.Registration
	query := "SELECT " + registrationColumns + " FROM registrations r WHERE r.student_id = $1 AND r.event_id = $2"
	if err := sqlx.GetContext(ctx, use(r.db, exec), &reg, query, studentID, eventID); err != nil {
		return nil, fmt.Errorf("find registration by pair: %w", err)
	}
	return &reg, nil
}

// CountByStatus counts registrations of an event in the given status.
func (r *RegistrationRepository) CountByStatus(ctx context.Context, exec sqlx.ExtContext, eventID string, status models.RegistrationStatus) (int, error) {
	var count int
	const query = "SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = $2"
	if err := sqlx.GetContext(ctx, use(r.db, exec), &count, query, eventID, status); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

// Create inserts a registration. A unique violation on (student_id, event_id) yields ErrDuplicate.
func (r *RegistrationRepository) Create(ctx context.Context, exec sqlx.ExtContext, reg *models.Registration) error {
	const query = `INSERT INTO registrations (registration_id, student_id, event_id, registration_date, status) VALUES ($1, $2, $3, $4, $5)`
	if _, err := use(r.db, exec).ExecContext(ctx, query, reg.ID, reg.StudentID, reg.EventID, reg.CreatedAt, reg.Status); err != nil {
		return wrapWrite("create registration", err)
	}
	return nil
}

// UpdateStatus changes the status of one registration.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.RegistrationStatus) error {
	if _, err := use(r.db, exec).ExecContext(ctx, "UPDATE registrations SET status = $1 WHERE registration_id = $2", status, id); err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	return nil
}

// OldestWaitlisted locks and returns the first waitlisted registration of an event,
// or sql.ErrNoRows when the waitlist is empty.
func (r *RegistrationRepository) OldestWaitlisted(ctx context.Context, exec sqlx.ExtContext, eventID string) (*models.Registration, error) {
	var reg models.Registration
	query := "SELECT " + registrationColumns + ` FROM registrations r WHERE r.event_id = $1 AND r.status = $2
ORDER BY r.registration_date ASC, r.registration_id ASC LIMIT 1 FOR UPDATE`
	if err := sqlx.GetContext(ctx, use(r.db, exec), &reg, query, eventID, models.RegistrationStatusWaitlisted); err != nil {
		return nil, fmt.Errorf("find oldest waitlisted: %w", err)
	}
	return &reg, nil
}

// GetDetail returns a registration with student and event names.
func (r *RegistrationRepository) GetDetail(ctx context.Context, id string) (*models.RegistrationDetail, error) {
	query := "SELECT " + registrationColumns + `, s.student_name, s.email, e.event_name, e.event_date
FROM registrations r
JOIN students s ON s.student_id = r.student_id
JOIN events e ON e.event_id = r.event_id
WHERE r.registration_id = $1`
	var detail models.RegistrationDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, fmt.Errorf("get registration detail: %w", err)
	}
	return &detail, nil
}

// ListByEvent returns the registrations of an event in registration order.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string, status models.RegistrationStatus) ([]models.EventRegistration, error) {
	query := "SELECT " + registrationColumns + `, s.student_name, s.email, s.phone, s.department
FROM registrations r
JOIN students s ON s.student_id = r.student_id
WHERE r.event_id = $1`
	args := []interface{}{eventID}
	if status != "" {
		args = append(args, status)
		query += " AND r.status = $2"
	}
	query += " ORDER BY r.registration_date ASC, r.registration_id ASC"

	var rows []models.EventRegistration
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list event registrations: %w", err)
	}
	return rows, nil
}

// ListByStudent returns a student's registrations, most recent event first.
func (r *RegistrationRepository) ListByStudent(ctx context.Context, studentID string, status models.RegistrationStatus) ([]models.StudentRegistration, error) {
	query := "SELECT " + registrationColumns + `, e.event_name, e.event_date, e.event_time, e.venue, e.event_type
FROM registrations r
JOIN events e ON e.event_id = r.event_id
WHERE r.student_id = $1`
	args := []interface{}{studentID}
	if status != "" {
		args = append(args, status)
		query += " AND r.status = $2"
	}
	query += " ORDER BY e.event_date DESC"

	var rows []models.StudentRegistration
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list student registrations: %w", err)
	}
	return rows, nil
}

// StatsByEvent counts an event's registrations per status.
func (r *RegistrationRepository) StatsByEvent(ctx context.Context, eventID string) (*models.RegistrationStats, error) {
	var rows []struct {
		Status models.RegistrationStatus `db:"status"`
		Count  int                       `db:"count"`
	}
	const query = "SELECT status, COUNT(*) AS count FROM registrations WHERE event_id = $1 GROUP BY status"
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("registration stats: %w", err)
	}
	stats := &models.RegistrationStats{}
	for _, row := range rows {
		switch row.Status {
		case models.RegistrationStatusConfirmed:
			stats.Confirmed = row.Count
		case models.RegistrationStatusWaitlisted:
			stats.Waitlisted = row.Count
		case models.RegistrationStatusCancelled:
			stats.Cancelled = row.Count
		}
	}
	return stats, nil
}
