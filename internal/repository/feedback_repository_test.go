package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
)

func TestFeedbackRepositoryStatsByEvent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	cols := []string{"total_feedback", "average_rating", "min_rating", "max_rating", "rating_1", "rating_2", "rating_3", "rating_4", "rating_5"}
	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(ROUND(AVG(rating), 2), 0) AS average_rating")).
		WithArgs("C1-EVT001").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(3, []byte("4.33"), 3, 5, 0, 0, 1, 0, 2))

	stats, err := repo.StatsByEvent(context.Background(), "C1-EVT001")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalFeedback)
	assert.Equal(t, 4.33, stats.AverageRating)
	assert.Equal(t, models.RatingDistribution{Three: 1, Five: 2}, stats.RatingDistribution)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepositoryUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE feedback SET rating = ?, comments = ?, feedback_date = ? WHERE feedback_id = ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), &models.Feedback{ID: "fb-1", Rating: 4}))
	require.NoError(t, mock.ExpectationsWereMet())
}
