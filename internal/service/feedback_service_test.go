package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

func attendedLifecycle(t *testing.T) *lifecycle {
	t.Helper()
	lc := newLifecycle()
	lc.store.addEvent("E1", 5, fixedNow)
	lc.store.addStudent("S1", "S2")
	ctx := context.Background()
	for _, s := range []string{"S1", "S2"} {
		_, err := lc.registrations.Enroll(ctx, s, "E1")
		require.NoError(t, err)
	}
	_, err := lc.attendance.CheckIn(ctx, "S1", "E1")
	require.NoError(t, err)
	return lc
}

func TestSubmitThenDuplicateThenRevise(t *testing.T) {
	lc := attendedLifecycle(t)
	ctx := context.Background()

	fb, err := lc.feedback.Submit(ctx, "S1", "E1", 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, fb.Rating)

	_, err = lc.feedback.Submit(ctx, "S1", "E1", 4, nil)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	later := fixedNow.Add(time.Hour)
	lc.feedback.now = func() time.Time { return later }
	comment := "better second look"
	revised, err := lc.feedback.Revise(ctx, fb.ID, 4, &comment)
	require.NoError(t, err)
	assert.Equal(t, 4, revised.Rating)
	assert.Equal(t, later, revised.CreatedAt)

	stored, err := fakeFeedback{lc.store}.FindByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)
	require.NotNil(t, stored.Comments)
	assert.Equal(t, comment, *stored.Comments)
}

func TestSubmitRequiresPresentAttendance(t *testing.T) {
	lc := attendedLifecycle(t)
	ctx := context.Background()

	// S2 is confirmed but never checked in.
	_, err := lc.feedback.Submit(ctx, "S2", "E1", 4, nil)
	assert.ErrorIs(t, err, appErrors.ErrAttendanceRequired)

	att, err := fakeAttendance{lc.store}.FindByPair(ctx, "S1", "E1")
	require.NoError(t, err)
	_, err = lc.attendance.UpdateStatus(ctx, att.ID, string(models.AttendanceStatusAbsent))
	require.NoError(t, err)
	_, err = lc.feedback.Submit(ctx, "S1", "E1", 4, nil)
	assert.ErrorIs(t, err, appErrors.ErrAttendanceRequired)
}

func TestAttendanceGateRunsBeforeRatingCheck(t *testing.T) {
	lc := attendedLifecycle(t)
	_, err := lc.feedback.Submit(context.Background(), "S2", "E1", 9, nil)
	assert.ErrorIs(t, err, appErrors.ErrAttendanceRequired)
}

func TestRatingBounds(t *testing.T) {
	tests := []struct {
		rating float64
		ok     bool
	}{
		{rating: 0},
		{rating: 6},
		{rating: 3.5},
		{rating: -1},
		{rating: math.NaN()},
		{rating: 1, ok: true},
		{rating: 5, ok: true},
	}
	for _, tc := range tests {
		lc := attendedLifecycle(t)
		_, err := lc.feedback.Submit(context.Background(), "S1", "E1", tc.rating, nil)
		if tc.ok {
			assert.NoError(t, err, "rating %v", tc.rating)
			continue
		}
		assert.ErrorIs(t, err, appErrors.ErrInvalidRating, "rating %v", tc.rating)
	}
}

func TestReviseValidatesRatingAndExistence(t *testing.T) {
	lc := attendedLifecycle(t)
	ctx := context.Background()
	fb, err := lc.feedback.Submit(ctx, "S1", "E1", 3, nil)
	require.NoError(t, err)

	_, err = lc.feedback.Revise(ctx, fb.ID, 0, nil)
	assert.ErrorIs(t, err, appErrors.ErrInvalidRating)
	_, err = lc.feedback.Revise(ctx, "missing", 4, nil)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestFeedbackStats(t *testing.T) {
	lc := attendedLifecycle(t)
	ctx := context.Background()
	lc.store.addStudent("S3")
	_, err := lc.registrations.Enroll(ctx, "S3", "E1")
	require.NoError(t, err)
	_, err = lc.attendance.CheckIn(ctx, "S3", "E1")
	require.NoError(t, err)

	_, err = lc.feedback.Submit(ctx, "S1", "E1", 5, nil)
	require.NoError(t, err)
	_, err = lc.feedback.Submit(ctx, "S3", "E1", 2, nil)
	require.NoError(t, err)

	stats, err := lc.feedback.StatsByEvent(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalFeedback)
	assert.Equal(t, 3.5, stats.AverageRating)
	assert.Equal(t, 2, stats.MinRating)
	assert.Equal(t, 5, stats.MaxRating)

	rows, err := lc.feedback.ListByStudent(ctx, "S2")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
