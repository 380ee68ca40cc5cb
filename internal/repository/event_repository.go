package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const eventColumns = "event_id, college_id, event_name, event_description, event_type, event_date, event_time, duration_hours, venue, max_capacity, created_by, created_at, status"

// EventRepository manages persistence for events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns active events matching the filter ordered by date, plus the unpaged total.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	conditions := []string{"status = $1"}
	args := []interface{}{models.EventStatusActive}
	if filter.CollegeID != "" {
		args = append(args, filter.CollegeID)
		conditions = append(conditions, fmt.Sprintf("college_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("event_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("event_date <= $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf("SELECT %s FROM events WHERE %s ORDER BY event_date ASC, event_time ASC%s", eventColumns, where, limitClause(filter.Limit))
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM events WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

// FindByID returns sql.ErrNoRows when the event does not exist.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.GetContext(ctx, &event, "SELECT "+eventColumns+" FROM events WHERE event_id = $1", id); err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &event, nil
}

// LockForUpdate row-locks the event inside exec. Enrolment and cancellation for
// the same event serialise on this lock.
func (r *EventRepository) LockForUpdate(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Event, error) {
	var event models.Event
	if err := sqlx.GetContext(ctx, use(r.db, exec), &event, "SELECT "+eventColumns+" FROM events WHERE event_id = $1 FOR UPDATE", id); err != nil {
		return nil, fmt.Errorf("lock event: %w", err)
	}
	return &event, nil
}

// CountByCollege returns how many events a college already has.
func (r *EventRepository) CountByCollege(ctx context.Context, exec sqlx.ExtContext, collegeID string) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, use(r.db, exec), &count, "SELECT COUNT(*) FROM events WHERE college_id = $1", collegeID); err != nil {
		return 0, fmt.Errorf("count college events: %w", err)
	}
	return count, nil
}

// Create inserts an event. The id must already be allocated.
func (r *EventRepository) Create(ctx context.Context, exec sqlx.ExtContext, event *models.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if event.Status == "" {
		event.Status = models.EventStatusActive
	}
	const query = `INSERT INTO events (event_id, college_id, event_name, event_description, event_type, event_date, event_time, duration_hours, venue, max_capacity, created_by, created_at, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := use(r.db, exec).ExecContext(ctx, query,
		event.ID, event.CollegeID, event.Name, event.Description, event.Type, event.Date, event.Time,
		event.DurationHours, event.Venue, event.MaxCapacity, event.CreatedBy, event.CreatedAt, event.Status)
	if err != nil {
		return wrapWrite("create event", err)
	}
	return nil
}

// Update overwrites the mutable event fields. Status changes go through UpdateStatus.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	const query = `UPDATE events SET event_name = :event_name, event_description = :event_description, event_type = :event_type,
event_date = :event_date, event_time = :event_time, duration_hours = :duration_hours, venue = :venue, max_capacity = :max_capacity
WHERE event_id = :event_id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// UpdateStatus sets the stored lifecycle status.
func (r *EventRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.EventStatus) error {
	if _, err := use(r.db, exec).ExecContext(ctx, "UPDATE events SET status = $1 WHERE event_id = $2", status, id); err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	return nil
}

// Stats returns confirmed registrations, present attendance and rating figures for an event.
func (r *EventRepository) Stats(ctx context.Context, id string) (*models.EventStats, error) {
	const query = `SELECT
	(SELECT COUNT(*) FROM registrations r WHERE r.event_id = $1 AND r.status = 'confirmed') AS registrations,
	(` + attendedByConfirmed + ` AND a.event_id = $1) AS attendance,
	(SELECT COALESCE(ROUND(AVG(f.rating), 2), 0) FROM feedback f WHERE f.event_id = $1) AS average_rating,
	(SELECT COUNT(*) FROM feedback f WHERE f.event_id = $1) AS feedback_count`
	var stats models.EventStats
	if err := r.db.GetContext(ctx, &stats, query, id); err != nil {
		return nil, fmt.Errorf("event stats: %w", err)
	}
	return &stats, nil
}
