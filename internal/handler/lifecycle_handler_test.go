package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type registrationServiceMock struct {
	enrollResp *models.Registration
	enrollErr  error
	cancelResp *models.CancelResult
	cancelErr  error
	eventRows  []models.EventRegistration
	stats      *models.RegistrationStats
	lastStatus string
	lastEnroll [2]string
}

func (m *registrationServiceMock) Enroll(_ context.Context, studentID, eventID string) (*models.Registration, error) {
	m.lastEnroll = [2]string{studentID, eventID}
	return m.enrollResp, m.enrollErr
}

func (m *registrationServiceMock) Cancel(context.Context, string) (*models.CancelResult, error) {
	return m.cancelResp, m.cancelErr
}

func (m *registrationServiceMock) Get(_ context.Context, id string) (*models.RegistrationDetail, error) {
	if id != "r1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
	}
	return &models.RegistrationDetail{}, nil
}

func (m *registrationServiceMock) ListByEvent(_ context.Context, _ string, status string) ([]models.EventRegistration, error) {
	m.lastStatus = status
	return m.eventRows, nil
}

func (m *registrationServiceMock) ListByStudent(context.Context, string, string) ([]models.StudentRegistration, error) {
	return []models.StudentRegistration{}, nil
}

func (m *registrationServiceMock) EventStats(context.Context, string) (*models.RegistrationStats, error) {
	return m.stats, nil
}

func TestRegistrationHandlerEnrollCreated(t *testing.T) {
	svc := &registrationServiceMock{enrollResp: &models.Registration{ID: "r1", Status: models.RegistrationStatusWaitlisted}}
	h := NewRegistrationHandler(svc)

	c, w := newGinContext(http.MethodPost, "/students/register", mustJSON(t, map[string]string{"student_id": "S1", "event_id": "E1"}))
	h.Enroll(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, [2]string{"S1", "E1"}, svc.lastEnroll)
	var reg models.Registration
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &reg))
	assert.Equal(t, models.RegistrationStatusWaitlisted, reg.Status)
}

func TestRegistrationHandlerGet(t *testing.T) {
	h := NewRegistrationHandler(&registrationServiceMock{})

	c, w := newGinContext(http.MethodGet, "/students/registrations/r1", nil)
	c.Params = gin.Params{{Key: "registration_id", Value: "r1"}}
	h.Get(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newGinContext(http.MethodGet, "/students/registrations/r9", nil)
	c.Params = gin.Params{{Key: "registration_id", Value: "r9"}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistrationHandlerEnrollInvalidPayload(t *testing.T) {
	h := NewRegistrationHandler(&registrationServiceMock{})

	c, w := newGinContext(http.MethodPost, "/students/register", []byte("{bad"))
	h.Enroll(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decodeEnvelope(t, w).Error.Code)
}

func TestRegistrationHandlerEnrollConflict(t *testing.T) {
	h := NewRegistrationHandler(&registrationServiceMock{enrollErr: appErrors.Clone(appErrors.ErrConflict, "already registered")})

	c, w := newGinContext(http.MethodPost, "/students/register", mustJSON(t, map[string]string{"student_id": "S1", "event_id": "E1"}))
	h.Enroll(c)

	require.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, appErrors.ErrConflict.Code, env.Error.Code)
	assert.Equal(t, "already registered", env.Error.Message)
}

func TestRegistrationHandlerCancelReportsPromotion(t *testing.T) {
	promoted := "r2"
	h := NewRegistrationHandler(&registrationServiceMock{cancelResp: &models.CancelResult{CancelledID: "r1", PromotedID: &promoted}})

	c, w := newGinContext(http.MethodDelete, "/students/registrations/r1", nil)
	c.Params = gin.Params{{Key: "registration_id", Value: "r1"}}
	h.Cancel(c)

	require.Equal(t, http.StatusOK, w.Code)
	var result map[string]string
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	assert.Equal(t, "r1", result["cancelled"])
	assert.Equal(t, "r2", result["promoted"])
}

func TestRegistrationHandlerListByEventIncludesStats(t *testing.T) {
	svc := &registrationServiceMock{
		eventRows: []models.EventRegistration{{Registration: models.Registration{ID: "r1"}}},
		stats:     &models.RegistrationStats{Confirmed: 1, Waitlisted: 2},
	}
	h := NewRegistrationHandler(svc)

	c, w := newGinContext(http.MethodGet, "/events/E1/registrations?status=waitlisted", nil)
	c.Params = gin.Params{{Key: "event_id", Value: "E1"}}
	h.ListByEvent(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "waitlisted", svc.lastStatus)
	stats, ok := decodeEnvelope(t, w).Meta["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, stats["waitlisted"])
}

type attendanceServiceMock struct {
	checkInResp *models.Attendance
	checkInErr  error
	updateResp  *models.Attendance
	lastStatus  string
	stats       *models.AttendanceStats
	absentees   []models.Absentee
}

func (m *attendanceServiceMock) CheckIn(context.Context, string, string) (*models.Attendance, error) {
	return m.checkInResp, m.checkInErr
}

func (m *attendanceServiceMock) UpdateStatus(_ context.Context, _ string, status string) (*models.Attendance, error) {
	m.lastStatus = status
	return m.updateResp, nil
}

func (m *attendanceServiceMock) ListByEvent(context.Context, string) ([]models.EventAttendance, error) {
	return []models.EventAttendance{}, nil
}

func (m *attendanceServiceMock) ListByStudent(context.Context, string) ([]models.StudentAttendance, error) {
	return []models.StudentAttendance{}, nil
}

func (m *attendanceServiceMock) Stats(context.Context, string) (*models.AttendanceStats, error) {
	return m.stats, nil
}

func (m *attendanceServiceMock) ListAbsentees(context.Context, string) ([]models.Absentee, error) {
	return m.absentees, nil
}

func TestAttendanceHandlerCheckInErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not registered", appErrors.ErrNotRegistered, appErrors.ErrNotRegistered.Status},
		{"already marked", appErrors.ErrAlreadyMarked, http.StatusConflict},
		{"future event", appErrors.ErrFutureEvent, appErrors.ErrFutureEvent.Status},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAttendanceHandler(&attendanceServiceMock{checkInErr: tc.err})
			c, w := newGinContext(http.MethodPost, "/students/attendance", mustJSON(t, map[string]string{"student_id": "S1", "event_id": "E1"}))
			h.CheckIn(c)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestAttendanceHandlerUpdateStatus(t *testing.T) {
	svc := &attendanceServiceMock{updateResp: &models.Attendance{ID: "a1", Status: models.AttendanceStatusAbsent}}
	h := NewAttendanceHandler(svc)

	c, w := newGinContext(http.MethodPatch, "/students/attendance/a1", mustJSON(t, map[string]string{"status": "absent"}))
	c.Params = gin.Params{{Key: "attendance_id", Value: "a1"}}
	h.UpdateStatus(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "absent", svc.lastStatus)
}

func TestAttendanceHandlerListByEventStatsAndAbsentees(t *testing.T) {
	svc := &attendanceServiceMock{
		stats:     &models.AttendanceStats{TotalRegistered: 3, TotalAttended: 1, AttendancePercentage: 33.33},
		absentees: []models.Absentee{{StudentID: "S2"}, {StudentID: "S3"}},
	}
	h := NewAttendanceHandler(svc)

	c, w := newGinContext(http.MethodGet, "/events/E1/attendance", nil)
	c.Params = gin.Params{{Key: "event_id", Value: "E1"}}
	h.ListByEvent(c)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeEnvelope(t, w).Meta["stats"].(map[string]interface{})
	assert.InDelta(t, 33.33, stats["attendance_percentage"], 0.001)

	c, w = newGinContext(http.MethodGet, "/events/E1/absentees", nil)
	c.Params = gin.Params{{Key: "event_id", Value: "E1"}}
	h.Absentees(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeEnvelope(t, w).Meta["count"])
}

type feedbackServiceMock struct {
	submitErr  error
	lastRating float64
	revised    string
}

func (m *feedbackServiceMock) Submit(_ context.Context, studentID, eventID string, rating float64, comments *string) (*models.Feedback, error) {
	m.lastRating = rating
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return &models.Feedback{ID: "f1", StudentID: studentID, EventID: eventID, Rating: int(rating), Comments: comments}, nil
}

func (m *feedbackServiceMock) Revise(_ context.Context, id string, rating float64, _ *string) (*models.Feedback, error) {
	m.revised = id
	m.lastRating = rating
	return &models.Feedback{ID: id, Rating: int(rating)}, nil
}

func (m *feedbackServiceMock) ListByEvent(context.Context, string) ([]models.EventFeedback, error) {
	return []models.EventFeedback{}, nil
}

func (m *feedbackServiceMock) ListByStudent(context.Context, string) ([]models.StudentFeedback, error) {
	return []models.StudentFeedback{}, nil
}

func (m *feedbackServiceMock) StatsByEvent(context.Context, string) (*models.FeedbackStats, error) {
	return &models.FeedbackStats{TotalFeedback: 1, AverageRating: 5}, nil
}

func TestFeedbackHandlerSubmit(t *testing.T) {
	svc := &feedbackServiceMock{}
	h := NewFeedbackHandler(svc)

	c, w := newGinContext(http.MethodPost, "/students/feedback", []byte(`{"student_id":"S1","event_id":"E1","rating":5,"comments":"great"}`))
	h.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 5.0, svc.lastRating)
}

func TestFeedbackHandlerSubmitPassesFractionalRating(t *testing.T) {
	svc := &feedbackServiceMock{submitErr: appErrors.ErrInvalidRating}
	h := NewFeedbackHandler(svc)

	c, w := newGinContext(http.MethodPost, "/students/feedback", []byte(`{"student_id":"S1","event_id":"E1","rating":3.5}`))
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 3.5, svc.lastRating)
	assert.Equal(t, appErrors.ErrInvalidRating.Code, decodeEnvelope(t, w).Error.Code)
}

func TestFeedbackHandlerSubmitMissingRating(t *testing.T) {
	h := NewFeedbackHandler(&feedbackServiceMock{})

	c, w := newGinContext(http.MethodPost, "/students/feedback", []byte(`{"student_id":"S1","event_id":"E1"}`))
	h.Submit(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrInvalidRating.Code, decodeEnvelope(t, w).Error.Code)
}

func TestFeedbackHandlerSubmitAttendanceRequired(t *testing.T) {
	h := NewFeedbackHandler(&feedbackServiceMock{submitErr: appErrors.ErrAttendanceRequired})

	c, w := newGinContext(http.MethodPost, "/students/feedback", []byte(`{"student_id":"S1","event_id":"E1","rating":4}`))
	h.Submit(c)

	assert.Equal(t, appErrors.ErrAttendanceRequired.Status, w.Code)
}

func TestFeedbackHandlerRevise(t *testing.T) {
	svc := &feedbackServiceMock{}
	h := NewFeedbackHandler(svc)

	c, w := newGinContext(http.MethodPut, "/students/feedback/f1", []byte(`{"rating":4}`))
	c.Params = gin.Params{{Key: "feedback_id", Value: "f1"}}
	h.Revise(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "f1", svc.revised)
	assert.Equal(t, 4.0, svc.lastRating)
}

func TestFeedbackHandlerListByEventIncludesStats(t *testing.T) {
	h := NewFeedbackHandler(&feedbackServiceMock{})

	c, w := newGinContext(http.MethodGet, "/events/E1/feedback", nil)
	c.Params = gin.Params{{Key: "event_id", Value: "E1"}}
	h.ListByEvent(c)

	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeEnvelope(t, w).Meta["stats"].(map[string]interface{})
	assert.EqualValues(t, 5, stats["average_rating"])
}
