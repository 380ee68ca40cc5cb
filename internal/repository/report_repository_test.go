package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
)

func TestReportRepositoryEventPopularityArgs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	cols := []string{"event_id", "event_name", "event_type", "event_date", "venue", "total_registrations", "total_attendance", "average_rating", "feedback_count"}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.status = 'active' AND e.college_id = $1 AND e.event_type = $2\nORDER BY total_registrations DESC, average_rating DESC NULLS LAST, e.event_id ASC\nLIMIT $3")).
		WithArgs("C1", models.EventTypeHackathon, 5).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("C1-EVT002", "Hack Night", "Hackathon", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "Hall", 40, 31, nil, 0))

	rows, err := repo.EventPopularity(context.Background(), models.ReportFilter{CollegeID: "C1", EventType: models.EventTypeHackathon, Limit: 5})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 40, rows[0].TotalRegistrations)
	assert.Nil(t, rows[0].AverageRating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryTopActiveStudents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	cols := []string{"student_id", "student_name", "department", "year_of_study", "events_registered", "events_attended", "feedback_given", "average_rating_given", "attendance_percentage", "activity_score"}
	mock.ExpectQuery(regexp.QuoteMeta("events_attended * 3 + events_registered * 2 + feedback_given AS activity_score")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("C1-STU0001", "Asha", "CSE", 2, 4, 3, 2, []byte("4.50"), []byte("75.00"), 19))

	rows, err := repo.TopActiveStudents(context.Background(), models.ReportFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 19, rows[0].ActivityScore)
	require.NotNil(t, rows[0].AttendancePercentage)
	assert.Equal(t, 75.0, *rows[0].AttendancePercentage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryFeedbackBand(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("HAVING AVG(f.rating) BETWEEN $1 AND $2")).
		WithArgs(3.0, 5.0).
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}))

	_, err := repo.FeedbackReport(context.Background(), models.FeedbackReportFilter{MinRating: 3, MaxRating: 5})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryRatingByEventTypeCollegeFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.college_id = $1\nGROUP BY e.event_type")).
		WithArgs("C1").
		WillReturnRows(sqlmock.NewRows([]string{"event_type", "average_rating", "feedback_count"}).AddRow("Workshop", []byte("4.20"), 5))

	rows, err := repo.RatingByEventType(context.Background(), "C1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.EventTypeWorkshop, rows[0].EventType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryAttendanceCountsConfirmedRegistrantsOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)
	confirmedJoin := regexp.QuoteMeta("JOIN registrations cr ON cr.student_id = a.student_id AND cr.event_id = a.event_id AND cr.status = 'confirmed'")

	mock.ExpectQuery(confirmedJoin + "(.|\n)*WHERE e.event_id = \\$1").
		WithArgs("C1-EVT001").
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "event_name", "event_date", "event_type", "max_capacity", "total_registered", "total_attended", "remaining_capacity", "attendance_percentage"}).
			AddRow("C1-EVT001", "Go Workshop", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "Workshop", 10, 4, 3, 6, []byte("75.00")))
	mock.ExpectQuery(confirmedJoin + "(.|\n)*GROUP BY event_type").
		WillReturnRows(sqlmock.NewRows([]string{"event_type", "total_events", "total_registrations", "total_attendance", "average_attendance_percentage"}).
			AddRow("Workshop", 2, 4, 3, []byte("75.00")))

	row, err := repo.EventAttendance(context.Background(), "C1-EVT001")
	require.NoError(t, err)
	assert.LessOrEqual(t, row.TotalAttended, row.TotalRegistered)

	byType, err := repo.AttendanceByEventType(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, 3, byType[0].TotalAttendance)
	require.NoError(t, mock.ExpectationsWereMet())
}
