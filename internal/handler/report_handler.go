package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/pkg/response"
)

type reportService interface {
	EventPopularity(ctx context.Context, filter models.ReportFilter) ([]models.EventPopularityRow, error)
	StudentParticipation(ctx context.Context, studentID string) (*models.StudentParticipationReport, error)
	StudentParticipationList(ctx context.Context, filter models.ReportFilter) ([]models.StudentParticipationRow, error)
	TopActiveStudents(ctx context.Context, filter models.ReportFilter) ([]models.TopStudentRow, error)
	EventAttendance(ctx context.Context, eventID string) (*models.EventAttendanceRow, error)
	AttendanceByEventType(ctx context.Context, collegeID string) ([]models.EventTypeAttendanceRow, error)
	FeedbackReport(ctx context.Context, filter models.FeedbackReportFilter) ([]models.FeedbackReportRow, error)
	RatingByEventType(ctx context.Context, collegeID string) ([]models.EventTypeRatingRow, error)
}

// ReportHandler exposes the read-only aggregate reports.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// EventPopularity godoc
// @Summary Rank active events by confirmed registrations
// @Tags Reports
// @Produce json
// @Param college_id query string false "College ID"
// @Param event_type query string false "Event type"
// @Param limit query int false "Maximum rows (default 10)"
// @Success 200 {object} response.Envelope
// @Router /reports/event-popularity [get]
func (h *ReportHandler) EventPopularity(c *gin.Context) {
	filter, err := reportFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.reports.EventPopularity(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"count": len(rows)})
}

// StudentParticipation godoc
// @Summary Student participation report
// @Description With student_id returns that student's per-event breakdown, otherwise ranks students.
// @Tags Reports
// @Produce json
// @Param student_id query string false "Student ID"
// @Param college_id query string false "College ID"
// @Param limit query int false "Maximum rows (default 10)"
// @Success 200 {object} response.Envelope
// @Router /reports/student-participation [get]
func (h *ReportHandler) StudentParticipation(c *gin.Context) {
	ctx := c.Request.Context()
	if studentID := strings.TrimSpace(c.Query("student_id")); studentID != "" {
		report, err := h.reports.StudentParticipation(ctx, studentID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, report, nil)
		return
	}

	filter, err := reportFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.reports.StudentParticipationList(ctx, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"count": len(rows)})
}

// TopStudents godoc
// @Summary Most active students by attended events
// @Tags Reports
// @Produce json
// @Param college_id query string false "College ID"
// @Param limit query int false "Maximum rows (default 3)"
// @Success 200 {object} response.Envelope
// @Router /reports/top-students [get]
func (h *ReportHandler) TopStudents(c *gin.Context) {
	filter, err := reportFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.reports.TopActiveStudents(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"count": len(rows)})
}

// AttendanceStats godoc
// @Summary Attendance statistics
// @Description With event_id reports that event, otherwise summarises per event type.
// @Tags Reports
// @Produce json
// @Param event_id query string false "Event ID"
// @Param college_id query string false "College ID"
// @Success 200 {object} response.Envelope
// @Router /reports/attendance-stats [get]
func (h *ReportHandler) AttendanceStats(c *gin.Context) {
	ctx := c.Request.Context()
	if eventID := strings.TrimSpace(c.Query("event_id")); eventID != "" {
		row, err := h.reports.EventAttendance(ctx, eventID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, row, nil)
		return
	}
	rows, err := h.reports.AttendanceByEventType(ctx, c.Query("college_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Feedback godoc
// @Summary Per-event rating stats within a rating band
// @Tags Reports
// @Produce json
// @Param college_id query string false "College ID"
// @Param event_type query string false "Event type"
// @Param min_rating query number false "Lower bound (default 1)"
// @Param max_rating query number false "Upper bound (default 5)"
// @Success 200 {object} response.Envelope
// @Router /reports/feedback [get]
func (h *ReportHandler) Feedback(c *gin.Context) {
	filter := models.FeedbackReportFilter{
		CollegeID: c.Query("college_id"),
		EventType: models.EventType(c.Query("event_type")),
	}
	var err error
	if filter.MinRating, err = queryFloat(c, "min_rating"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.MaxRating, err = queryFloat(c, "max_rating"); err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.reports.FeedbackReport(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"count": len(rows)})
}

// RatingByType godoc
// @Summary Average rating per event type
// @Tags Reports
// @Produce json
// @Param college_id query string false "College ID"
// @Success 200 {object} response.Envelope
// @Router /reports/rating-by-type [get]
func (h *ReportHandler) RatingByType(c *gin.Context) {
	rows, err := h.reports.RatingByEventType(c.Request.Context(), c.Query("college_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
