package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/service"
	"github.com/noah-isme/campus-events-api/pkg/response"
)

type registrationService interface {
	Enroll(ctx context.Context, studentID, eventID string) (*models.Registration, error)
	Cancel(ctx context.Context, id string) (*models.CancelResult, error)
	Get(ctx context.Context, id string) (*models.RegistrationDetail, error)
	ListByEvent(ctx context.Context, eventID, status string) ([]models.EventRegistration, error)
	ListByStudent(ctx context.Context, studentID, status string) ([]models.StudentRegistration, error)
	EventStats(ctx context.Context, eventID string) (*models.RegistrationStats, error)
}

// RegistrationHandler exposes enrollment endpoints.
type RegistrationHandler struct {
	registrations registrationService
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(registrations registrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Enroll godoc
// @Summary Register a student for an event
// @Description Confirmed while seats remain, waitlisted once the event is full.
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body service.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/register [post]
func (h *RegistrationHandler) Enroll(c *gin.Context) {
	var req service.EnrollRequest
	if !bindJSON(c, &req) {
		return
	}
	reg, err := h.registrations.Enroll(c.Request.Context(), req.StudentID, req.EventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reg)
}

// Cancel godoc
// @Summary Cancel a registration
// @Description Cancelling a confirmed seat promotes the oldest waitlisted registration.
// @Tags Registrations
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Success 200 {object} response.Envelope
// @Router /students/registrations/{registration_id} [delete]
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	result, err := h.registrations.Cancel(c.Request.Context(), c.Param("registration_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Get a registration
// @Tags Registrations
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/registrations/{registration_id} [get]
func (h *RegistrationHandler) Get(c *gin.Context) {
	reg, err := h.registrations.Get(c.Request.Context(), c.Param("registration_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reg, nil)
}

// ListByEvent godoc
// @Summary List an event's registrations
// @Tags Registrations
// @Produce json
// @Param event_id path string true "Event ID"
// @Param status query string false "confirmed, waitlisted or cancelled"
// @Success 200 {object} response.Envelope
// @Router /events/{event_id}/registrations [get]
func (h *RegistrationHandler) ListByEvent(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("event_id")
	rows, err := h.registrations.ListByEvent(ctx, eventID, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.registrations.EventStats(ctx, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"stats": stats})
}

// ListByStudent godoc
// @Summary List a student's registrations
// @Tags Registrations
// @Produce json
// @Param student_id path string true "Student ID"
// @Param status query string false "confirmed, waitlisted or cancelled"
// @Success 200 {object} response.Envelope
// @Router /students/{student_id}/registrations [get]
func (h *RegistrationHandler) ListByStudent(c *gin.Context) {
	rows, err := h.registrations.ListByStudent(c.Request.Context(), c.Param("student_id"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"count": len(rows)})
}
