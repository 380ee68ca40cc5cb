package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
)

func TestCollegeRepositoryStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollegeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("AS total_events")).
		WithArgs("C1").
		WillReturnRows(sqlmock.NewRows([]string{"total_events", "total_students", "total_registrations", "total_attendance"}).AddRow(4, 20, 35, 18))

	stats, err := repo.Stats(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, models.CollegeStats{TotalEvents: 4, TotalStudents: 20, TotalRegistrations: 35, TotalAttendance: 18}, *stats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryCreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollegeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO colleges")).WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.College{ID: "C1", Name: "North Campus"})
	assert.True(t, errors.Is(err, ErrDuplicate))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryListOrdersByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollegeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM colleges ORDER BY college_name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"college_id", "college_name", "location", "contact_email", "created_at"}))

	colleges, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, colleges)
	require.NoError(t, mock.ExpectationsWereMet())
}
