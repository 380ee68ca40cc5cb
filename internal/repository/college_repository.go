package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const collegeColumns = "college_id, college_name, location, contact_email, created_at"

// CollegeRepository manages persistence for colleges.
type CollegeRepository struct {
	db *sqlx.DB
}

// NewCollegeRepository constructs a CollegeRepository.
func NewCollegeRepository(db *sqlx.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// Create inserts a college with a caller supplied id.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	if college.CreatedAt.IsZero() {
		college.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO colleges (college_id, college_name, location, contact_email, created_at)
VALUES (:college_id, :college_name, :location, :contact_email, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, college); err != nil {
		return wrapWrite("create college", err)
	}
	return nil
}

// List returns all colleges ordered by name.
func (r *CollegeRepository) List(ctx context.Context) ([]models.College, error) {
	query := "SELECT " + collegeColumns + " FROM colleges ORDER BY college_name ASC"
	var colleges []models.College
	if err := r.db.SelectContext(ctx, &colleges, query); err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}

// FindByID returns sql.ErrNoRows when the college does not exist.
func (r *CollegeRepository) FindByID(ctx context.Context, id string) (*models.College, error) {
	query := "SELECT " + collegeColumns + " FROM colleges WHERE college_id = $1"
	var college models.College
	if err := r.db.GetContext(ctx, &college, query, id); err != nil {
		return nil, fmt.Errorf("find college: %w", err)
	}
	return &college, nil
}

// LockForUpdate row-locks the college inside exec. Used to serialise id allocation for its students and events.
func (r *CollegeRepository) LockForUpdate(ctx context.Context, exec sqlx.ExtContext, id string) (*models.College, error) {
	query := "SELECT " + collegeColumns + " FROM colleges WHERE college_id = $1 FOR UPDATE"
	var college models.College
	if err := sqlx.GetContext(ctx, use(r.db, exec), &college, query, id); err != nil {
		return nil, fmt.Errorf("lock college: %w", err)
	}
	return &college, nil
}

// Update overwrites the mutable college fields.
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	const query = `UPDATE colleges SET college_name = :college_name, location = :location, contact_email = :contact_email WHERE college_id = :college_id`
	if _, err := r.db.NamedExecContext(ctx, query, college); err != nil {
		return wrapWrite("update college", err)
	}
	return nil
}

// Stats counts events, students, registrations and attendance for a college.
func (r *CollegeRepository) Stats(ctx context.Context, id string) (*models.CollegeStats, error) {
	const query = `SELECT
	(SELECT COUNT(*) FROM events e WHERE e.college_id = $1) AS total_events,
	(SELECT COUNT(*) FROM students s WHERE s.college_id = $1) AS total_students,
	(SELECT COUNT(*) FROM registrations r JOIN events e ON e.event_id = r.event_id WHERE e.college_id = $1) AS total_registrations,
	(SELECT COUNT(*) FROM attendance a JOIN events e ON e.event_id = a.event_id WHERE e.college_id = $1) AS total_attendance`
	var stats models.CollegeStats
	if err := r.db.GetContext(ctx, &stats, query, id); err != nil {
		return nil, fmt.Errorf("college stats: %w", err)
	}
	return &stats, nil
}
