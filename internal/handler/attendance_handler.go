package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/service"
	"github.com/noah-isme/campus-events-api/pkg/response"
)

type attendanceService interface {
	CheckIn(ctx context.Context, studentID, eventID string) (*models.Attendance, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Attendance, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.EventAttendance, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.StudentAttendance, error)
	Stats(ctx context.Context, eventID string) (*models.AttendanceStats, error)
	ListAbsentees(ctx context.Context, eventID string) ([]models.Absentee, error)
}

// AttendanceHandler exposes check-in endpoints.
type AttendanceHandler struct {
	attendance attendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// CheckIn godoc
// @Summary Mark a student present
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.CheckInRequest true "Check-in payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /students/attendance [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req service.CheckInRequest
	if !bindJSON(c, &req) {
		return
	}
	att, err := h.attendance.CheckIn(c.Request.Context(), req.StudentID, req.EventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, att)
}

// UpdateStatus godoc
// @Summary Override an attendance status
// @Tags Attendance
// @Accept json
// @Produce json
// @Param attendance_id path string true "Attendance ID"
// @Param payload body service.UpdateAttendanceRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /students/attendance/{attendance_id} [patch]
func (h *AttendanceHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	att, err := h.attendance.UpdateStatus(c.Request.Context(), c.Param("attendance_id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, att, nil)
}

// ListByEvent godoc
// @Summary List an event's check-ins with stats
// @Tags Attendance
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{event_id}/attendance [get]
func (h *AttendanceHandler) ListByEvent(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("event_id")
	rows, err := h.attendance.ListByEvent(ctx, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.attendance.Stats(ctx, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"stats": stats})
}

// Absentees godoc
// @Summary List confirmed registrants without a present check-in
// @Tags Attendance
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{event_id}/absentees [get]
func (h *AttendanceHandler) Absentees(c *gin.Context) {
	rows, err := h.attendance.ListAbsentees(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"count": len(rows)})
}

// ListByStudent godoc
// @Summary List a student's attendance
// @Tags Attendance
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{student_id}/attendance [get]
func (h *AttendanceHandler) ListByStudent(c *gin.Context) {
	rows, err := h.attendance.ListByStudent(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"count": len(rows)})
}
