package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

const studentColumns = "s.student_id, s.college_id, s.student_name, s.email, s.phone, s.year_of_study, s.department, s.created_at"

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students across colleges with the college name attached.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentListItem, error) {
	conditions, args := studentConditions(filter)
	query := fmt.Sprintf("SELECT %s, c.college_name FROM students s JOIN colleges c ON c.college_id = s.college_id WHERE %s ORDER BY s.student_name ASC%s",
		studentColumns, strings.Join(conditions, " AND "), limitClause(filter.Limit))

	var students []models.StudentListItem
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListByCollege returns the students of one college.
func (r *StudentRepository) ListByCollege(ctx context.Context, collegeID string, filter models.StudentFilter) ([]models.Student, error) {
	filter.CollegeID = collegeID
	conditions, args := studentConditions(filter)
	query := fmt.Sprintf("SELECT %s FROM students s WHERE %s ORDER BY s.student_name ASC%s",
		studentColumns, strings.Join(conditions, " AND "), limitClause(filter.Limit))

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list college students: %w", err)
	}
	return students, nil
}

func studentConditions(filter models.StudentFilter) ([]string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	if filter.CollegeID != "" {
		args = append(args, filter.CollegeID)
		conditions = append(conditions, fmt.Sprintf("s.college_id = $%d", len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, fmt.Sprintf("s.department = $%d", len(args)))
	}
	if filter.YearOfStudy != nil {
		args = append(args, *filter.YearOfStudy)
		conditions = append(conditions, fmt.Sprintf("s.year_of_study = $%d", len(args)))
	}
	return conditions, args
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

// FindByID returns sql.ErrNoRows when the student does not exist.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students s WHERE s.student_id = $1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// Exists reports whether a student row is present.
func (r *StudentRepository) Exists(ctx context.Context, exec sqlx.ExtContext, id string) (bool, error) {
	var found int
	err := sqlx.GetContext(ctx, use(r.db, exec), &found, "SELECT 1 FROM students WHERE student_id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check student: %w", err)
	}
	return true, nil
}

// EmailTaken checks the unique email optionally excluding a student.
func (r *StudentRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	query := "SELECT 1 FROM students WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND student_id <> $2"
		args = append(args, excludeID)
	}
	var found int
	if err := r.db.GetContext(ctx, &found, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check student email: %w", err)
	}
	return true, nil
}

// CountByCollege returns how many students a college already has.
func (r *StudentRepository) CountByCollege(ctx context.Context, exec sqlx.ExtContext, collegeID string) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, use(r.db, exec), &count, "SELECT COUNT(*) FROM students WHERE college_id = $1", collegeID); err != nil {
		return 0, fmt.Errorf("count college students: %w", err)
	}
	return count, nil
}

// Create inserts a student. The id must already be allocated.
func (r *StudentRepository) Create(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error {
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO students (student_id, college_id, student_name, email, phone, year_of_study, department, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := use(r.db, exec).ExecContext(ctx, query,
		student.ID, student.CollegeID, student.Name, student.Email, student.Phone, student.YearOfStudy, student.Department, student.CreatedAt)
	if err != nil {
		return wrapWrite("create student", err)
	}
	return nil
}

// Update overwrites the mutable student fields.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET student_name = :student_name, email = :email, phone = :phone, year_of_study = :year_of_study, department = :department WHERE student_id = :student_id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return wrapWrite("update student", err)
	}
	return nil
}

// ParticipationStats summarises confirmed registrations, present check-ins and feedback for a student.
func (r *StudentRepository) ParticipationStats(ctx context.Context, id string) (*models.ParticipationStats, error) {
	const query = `SELECT
	(SELECT COUNT(*) FROM registrations r WHERE r.student_id = $1 AND r.status = 'confirmed') AS total_registrations,
	(` + attendedByConfirmed + ` AND a.student_id = $1) AS total_attended,
	(SELECT COUNT(*) FROM feedback f WHERE f.student_id = $1) AS total_feedback_given,
	(SELECT ROUND(AVG(f.rating), 2) FROM feedback f WHERE f.student_id = $1) AS average_rating_given`
	var stats models.ParticipationStats
	if err := r.db.GetContext(ctx, &stats, query, id); err != nil {
		return nil, fmt.Errorf("student participation stats: %w", err)
	}
	return &stats, nil
}
